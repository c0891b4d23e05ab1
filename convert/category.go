package convert

// Category is a bit set of conversion families a Registry may perform.
type Category int

// ConversionPair is a source and destination kind.
type ConversionPair struct {
	From, To Kind
}

const (
	CategorySafeNumber   Category = 1 << iota // int, uint, float without precision loss
	CategoryUnsafeNumber                      // int, uint, float with possible precision loss; overflow still fails
	CategoryTextNumber                        // int, uint, float <-> string: textual number representation
	CategoryNumericBool                       // int <-> bool: 0, 1 representation of boolean values
	CategoryTextualBool                       // string <-> bool: true/false, yes/no, on/off, y/n, 1/0
	CategoryDatetime                          // string <-> time.Time through the configured layouts
	CategoryTimestamp                         // int(Unix seconds) <-> time.Time
	CategoryDuration                          // string(2h45m) <-> time.Duration
	CategoryNanoseconds                       // int(nanoseconds) <-> time.Duration
	CategorySeconds                           // float(seconds) <-> time.Duration
	CategoryEnumString                        // string <-> named basic types, validated by IsValid() bool when present
	CategorySafeArray                         // slice -> array: the slice fits into the array
	CategoryUnsafeArray                       // slice -> array: the slice is cut to the array length

	CategoryAll  = (1 << iota) - 1 // all categories combined
	CategoryNone = 0               // no categories selected
)

var pairCategory map[ConversionPair]Category

func init() {
	pairCategory = make(map[ConversionPair]Category)

	add := func(c Category, pairs ...ConversionPair) {
		for _, p := range pairs {
			if _, ok := pairCategory[p]; !ok {
				pairCategory[p] = c
			}
		}
	}

	for pair := range safeNumberConversionPairs() {
		add(CategorySafeNumber, pair)
	}

	for from := Kind(1); int(from) < KindTotal; from++ {
		if !from.IsNumber() {
			continue
		}

		for to := Kind(1); int(to) < KindTotal; to++ {
			if to.IsNumber() {
				add(CategoryUnsafeNumber, ConversionPair{from, to})
			}
		}

		add(CategoryTextNumber, ConversionPair{from, KindString}, ConversionPair{KindString, from})

		if from.IsInteger() {
			add(CategoryNumericBool, ConversionPair{from, KindBool}, ConversionPair{KindBool, from})
			add(CategoryTimestamp, ConversionPair{from, KindTime}, ConversionPair{KindTime, from})
		}

		if from.IsInteger() && from != KindUint64 {
			add(CategoryNanoseconds, ConversionPair{from, KindDuration}, ConversionPair{KindDuration, from})
		}

		if from.IsFloat() {
			add(CategorySeconds, ConversionPair{from, KindDuration}, ConversionPair{KindDuration, from})
		}
	}

	add(CategoryTextualBool, ConversionPair{KindString, KindBool}, ConversionPair{KindBool, KindString})
	add(CategoryDatetime, ConversionPair{KindString, KindTime}, ConversionPair{KindTime, KindString})
	add(CategoryDuration, ConversionPair{KindString, KindDuration}, ConversionPair{KindDuration, KindString})
	add(CategoryEnumString,
		ConversionPair{KindString, KindPrimitiveEnum},
		ConversionPair{KindPrimitiveEnum, KindString},
		ConversionPair{KindPrimitiveEnum, KindPrimitiveEnum},
	)
}

// CategoryOf returns the category a pair belongs to; ok is false for pairs
// no built-in converter supports.
func CategoryOf(pair ConversionPair) (Category, bool) {
	c, ok := pairCategory[pair]
	return c, ok
}

func safeNumberConversionPairs() map[ConversionPair]struct{} {
	return map[ConversionPair]struct{}{
		{KindInt, KindInt}:   {}, // int can be any wide from 32 upto 64
		{KindInt, KindInt64}: {},

		{KindInt8, KindInt}:     {}, // int8 can be safely converted to any signed int
		{KindInt8, KindInt8}:    {},
		{KindInt8, KindInt16}:   {},
		{KindInt8, KindInt32}:   {},
		{KindInt8, KindInt64}:   {},
		{KindInt8, KindFloat32}: {},
		{KindInt8, KindFloat64}: {},

		{KindInt16, KindInt}:     {},
		{KindInt16, KindInt16}:   {}, // int16 omitting narrowing to int8
		{KindInt16, KindInt32}:   {},
		{KindInt16, KindInt64}:   {},
		{KindInt16, KindFloat32}: {},
		{KindInt16, KindFloat64}: {},

		{KindInt32, KindInt}:     {},
		{KindInt32, KindInt32}:   {}, // int32 omitting narrowing to int8/16
		{KindInt32, KindInt64}:   {},
		{KindInt32, KindFloat64}: {}, // int32 is wider than float32 mantissa

		{KindInt64, KindInt64}: {}, // int64 is the widest signed integer type

		{KindUint, KindUint}:   {}, // uint can be any wide from 32 upto 64
		{KindUint, KindUint64}: {},

		{KindUint8, KindUint}:    {}, // uint8 can be safely converted to any unsigned int
		{KindUint8, KindUint8}:   {},
		{KindUint8, KindUint16}:  {},
		{KindUint8, KindUint32}:  {},
		{KindUint8, KindUint64}:  {},
		{KindUint8, KindInt}:     {}, // also uint8 can be converted to any wider signed int
		{KindUint8, KindInt16}:   {},
		{KindUint8, KindInt32}:   {},
		{KindUint8, KindInt64}:   {},
		{KindUint8, KindFloat32}: {},
		{KindUint8, KindFloat64}: {},

		{KindUint16, KindUint}:    {},
		{KindUint16, KindUint16}:  {}, // uint16 omitting narrowing to uint8
		{KindUint16, KindUint32}:  {},
		{KindUint16, KindUint64}:  {},
		{KindUint16, KindInt}:     {}, // also uint16 can be converted to any wider signed int
		{KindUint16, KindInt32}:   {},
		{KindUint16, KindInt64}:   {},
		{KindUint16, KindFloat32}: {},
		{KindUint16, KindFloat64}: {},

		{KindUint32, KindUint32}:  {},
		{KindUint32, KindUint64}:  {}, // uint32 omitting narrowing to uint8/16
		{KindUint32, KindInt64}:   {}, // also only int64 is wide enough to hold uint32
		{KindUint32, KindFloat64}: {}, // uint32 is wider than float32 mantissa

		{KindUint64, KindUint64}: {}, // uint64 is the widest unsigned integer type

		{KindFloat32, KindFloat32}: {},
		{KindFloat32, KindFloat64}: {},

		{KindFloat64, KindFloat64}: {},
	}
}
