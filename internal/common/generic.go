package common

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// IsInRange reports whether lo <= value <= hi.
func IsInRange[T number](lo, value, hi T) bool {
	return lo <= value && value <= hi
}

// First returns the first element of s; ok is false when s is empty.
func First[S ~[]E, E any](s S) (first E, ok bool) {
	if len(s) == 0 {
		return first, false
	}

	return s[0], true
}

// Second drops the first of two results: Second(path.Split(p)).
func Second[T any](_ any, t T) T { return t }

// Unpack2 returns the first two elements of s, zero values standing in
// for missing ones.
func Unpack2[S ~[]T, T any](s S) (first, second T) {
	switch len(s) {
	case 0:
	case 1:
		first = s[0]
	default:
		first, second = s[0], s[1]
	}

	return first, second
}
