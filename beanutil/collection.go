package beanutil

import (
	"cmp"
	"reflect"
	"time"
)

// Comparator returns a comparison function ordering beans by the value at
// expression, suitable for slices.SortFunc. Values compare with compare,
// or CompareValues when compare is nil. Unreadable values count as nil,
// and nil orders first.
func Comparator[T any](c *Context, expression string, compare func(a, b any) int) func(a, b T) int {
	if compare == nil {
		compare = CompareValues
	}

	return func(a, b T) int {
		va, _ := c.GetProperty(a, expression)
		vb, _ := c.GetProperty(b, expression)

		return compare(va, vb)
	}
}

// CompareValues orders numbers, strings, booleans, times and durations of
// matching kinds; anything else compares by its string form.
func CompareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)

	switch {
	case ra.CanInt() && rb.CanInt():
		return cmp.Compare(ra.Int(), rb.Int())
	case ra.CanUint() && rb.CanUint():
		return cmp.Compare(ra.Uint(), rb.Uint())
	case isNumber(ra) && isNumber(rb):
		return cmp.Compare(toFloat(ra), toFloat(rb))
	case ra.Kind() == reflect.String && rb.Kind() == reflect.String:
		return cmp.Compare(ra.String(), rb.String())
	case ra.Kind() == reflect.Bool && rb.Kind() == reflect.Bool:
		return cmp.Compare(boolRank(ra.Bool()), boolRank(rb.Bool()))
	default:
		return cmp.Compare(Default().registry.ToString(a), Default().registry.ToString(b))
	}
}

// Predicate returns a filter testing the value at expression. Beans whose
// value cannot be read fail the filter.
func Predicate[T any](c *Context, expression string, test func(any) bool) func(T) bool {
	return func(bean T) bool {
		v, err := c.GetProperty(bean, expression)
		if err != nil {
			return false
		}

		return test(v)
	}
}

// Equals returns a filter matching beans whose value at expression equals
// want. A string want is compared with the value's string form, so "3"
// matches the int 3.
func Equals[T any](c *Context, expression string, want any) func(T) bool {
	return Predicate[T](c, expression, func(v any) bool {
		if s, ok := want.(string); ok && v != nil {
			return c.registry.ToString(v) == s
		}

		return reflect.DeepEqual(v, want)
	})
}

// Transformer returns a function extracting the value at expression.
func Transformer[T any](c *Context, expression string) func(T) (any, error) {
	return func(bean T) (any, error) {
		return c.GetProperty(bean, expression)
	}
}

// Collect extracts the value at expression from every bean, stopping at
// the first failure.
func Collect[T any](c *Context, beans []T, expression string) ([]any, error) {
	get := Transformer[T](c, expression)
	out := make([]any, 0, len(beans))

	for _, b := range beans {
		v, err := get(b)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

func isNumber(v reflect.Value) bool {
	return v.CanInt() || v.CanUint() || v.CanFloat()
}

func toFloat(v reflect.Value) float64 {
	switch {
	case v.CanInt():
		return float64(v.Int())
	case v.CanUint():
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}

	return 0
}
