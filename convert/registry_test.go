package convert_test

import (
	"fmt"
	"math"
	"math/big"
	"net/netip"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beankit/convert"
	"beankit/errs"
)

var (
	intType      = reflect.TypeFor[int]()
	intSliceType = reflect.TypeFor[[]int]()
)

type level int

func (l level) IsValid() bool { return l >= 0 && l <= 2 }

type color string

func TestConvertStrictAndLenient(t *testing.T) {
	t.Parallel()

	strict := convert.NewRegistry()

	_, err := strict.Convert("abc", intType)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConversion)

	var ce *errs.ConversionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "abc", ce.Value)
	assert.Equal(t, intType, ce.To)

	lenient := convert.NewRegistry(convert.WithMode(convert.ModeLenient))

	v, err := lenient.Convert("abc", intType)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestConvertNumbers(t *testing.T) {
	t.Parallel()

	r := convert.NewRegistry()

	v, err := r.Convert(" 42 ", reflect.TypeFor[int64]())
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = r.Convert(int8(7), reflect.TypeFor[float64]())
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	v, err = r.Convert(1.9, intType)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = r.Convert(int64(300), reflect.TypeFor[int8]())
	assert.ErrorIs(t, err, errs.ErrConversion)

	_, err = r.Convert(-1, reflect.TypeFor[uint]())
	assert.ErrorIs(t, err, errs.ErrConversion)

	_, err = r.Convert("3.5", intType)
	assert.ErrorIs(t, err, errs.ErrConversion)
}

func TestConvertCategories(t *testing.T) {
	t.Parallel()

	r := convert.NewRegistry(convert.WithCategories(convert.CategorySafeNumber))

	v, err := r.Convert(int16(3), reflect.TypeFor[int64]())
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	_, err = r.Convert(1.5, intType)
	assert.ErrorIs(t, err, errs.ErrConversion)

	_, err = r.Convert("12", intType)
	assert.ErrorIs(t, err, errs.ErrConversion)

	// formatting is never restricted
	assert.Equal(t, "12", r.ToString(12))
}

func TestConvertBool(t *testing.T) {
	t.Parallel()

	r := convert.NewRegistry()
	boolType := reflect.TypeFor[bool]()

	for in, want := range map[any]bool{"yes": true, "OFF": false, "y": true, "0": false, 1: true, uint8(0): false} {
		v, err := r.Convert(in, boolType)
		require.NoError(t, err, in)
		assert.Equal(t, want, v, in)
	}

	_, err := r.Convert(2, boolType)
	assert.Error(t, err)

	_, err = r.Convert("maybe", boolType)
	assert.Error(t, err)

	v, err := r.Convert(true, intType)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestConvertTime(t *testing.T) {
	t.Parallel()

	r := convert.NewRegistry()
	timeType := reflect.TypeFor[time.Time]()

	v, err := r.Convert("2024-01-02", timeType)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).Equal(v.(time.Time)))

	v, err = r.Convert(int64(86400), timeType)
	require.NoError(t, err)
	assert.True(t, time.Unix(86400, 0).Equal(v.(time.Time)))

	v, err = r.Convert(time.Unix(60, 0), reflect.TypeFor[int64]())
	require.NoError(t, err)
	assert.Equal(t, int64(60), v)

	stamp := time.Date(2025, 3, 4, 5, 6, 7, 8, time.UTC)
	s := r.ToString(stamp)
	assert.Equal(t, "2025-03-04T05:06:07.000000008Z", s)

	back, err := r.Convert(s, timeType)
	require.NoError(t, err)
	assert.True(t, stamp.Equal(back.(time.Time)))

	_, err = r.Convert("yesterday", timeType)
	assert.Error(t, err)
}

func TestConvertDuration(t *testing.T) {
	t.Parallel()

	r := convert.NewRegistry()
	durationType := reflect.TypeFor[time.Duration]()

	for in, want := range map[any]time.Duration{
		"1h30m":  90 * time.Minute,
		int64(5): 5,
		1.5:      1500 * time.Millisecond,
	} {
		v, err := r.Convert(in, durationType)
		require.NoError(t, err, in)
		assert.Equal(t, want, v, in)
	}

	assert.Equal(t, "1h30m0s", r.ToString(90*time.Minute))

	v, err := r.Convert(2*time.Second, reflect.TypeFor[float64]())
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

// TestStringRoundTrip converts every default scalar to text and back.
// time.Time is left out: the text keeps the instant but drops the monotonic
// reading and may carry another location, so values are only Equal, not ==.
// Floats hold for finite values; NaN never compares equal.
func TestStringRoundTrip(t *testing.T) {
	t.Parallel()

	r := convert.NewRegistry()

	for _, v := range []any{
		true, false,
		int(math.MinInt), int8(math.MinInt8), int16(math.MaxInt16), int32(math.MinInt32), int64(math.MaxInt64),
		uint(math.MaxUint), uint8(math.MaxUint8), uint16(7), uint32(math.MaxUint32), uint64(math.MaxUint64),
		float32(0.1), float32(-3.5e10), 0.1, math.MaxFloat64, -1e-300,
		90*time.Minute + 250*time.Millisecond, time.Duration(0),
		uuid.New(), ulid.Make(),
		"plain",
	} {
		typ := reflect.TypeOf(v)
		t.Run(typ.String()+"/"+fmt.Sprint(v), func(t *testing.T) {
			back, err := r.Convert(r.ToString(v), typ)
			require.NoError(t, err)
			assert.Equal(t, v, back)
		})
	}

	n, ok := new(big.Int).SetString("-123456789012345678901234567890", 10)
	require.True(t, ok)

	back, err := r.Convert(r.ToString(n), reflect.TypeFor[*big.Int]())
	require.NoError(t, err)
	assert.Zero(t, n.Cmp(back.(*big.Int)), spew.Sdump(back))
}

func TestConvertScalars(t *testing.T) {
	t.Parallel()

	r := convert.NewRegistry()

	id := uuid.New()
	v, err := r.Convert(id.String(), reflect.TypeFor[uuid.UUID]())
	require.NoError(t, err)
	assert.Equal(t, id, v)
	assert.Equal(t, id.String(), r.ToString(id))

	key := ulid.Make()
	v, err = r.Convert(key.String(), reflect.TypeFor[ulid.ULID]())
	require.NoError(t, err)
	assert.Equal(t, key, v)
	assert.Equal(t, key.String(), r.ToString(key))

	v, err = r.Convert("123456789012345678901234567890", reflect.TypeFor[*big.Int]())
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", v.(*big.Int).String())

	v, err = r.Convert(42, reflect.TypeFor[*big.Int]())
	require.NoError(t, err)
	assert.Equal(t, int64(42), v.(*big.Int).Int64())

	v, err = r.Convert("1/3", reflect.TypeFor[*big.Rat]())
	require.NoError(t, err)
	assert.Equal(t, "1/3", r.ToString(v))

	v, err = r.Convert("https://example.com/a?b=c", reflect.TypeFor[*url.URL]())
	require.NoError(t, err)
	assert.Equal(t, "example.com", v.(*url.URL).Host)

	v, err = r.Convert("hello", reflect.TypeFor[[]byte]())
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), v)
	assert.Equal(t, "hello", r.ToString([]byte("hello")))

	v, err = r.Convert("map[string][]int", reflect.TypeFor[reflect.Type]())
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[map[string][]int](), v)

	_, err = r.Convert("not-a-uuid", reflect.TypeFor[uuid.UUID]())
	assert.ErrorIs(t, err, errs.ErrConversion)
}

func TestConvertArrays(t *testing.T) {
	t.Parallel()

	r := convert.NewRegistry()

	v, err := r.Convert("{1, 2, 3}", intSliceType)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, v)

	v, err = r.Convert([]string{"1", "2"}, reflect.TypeFor[[2]int]())
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 2}, v)

	v, err = r.Convert("1,2,3", reflect.TypeFor[[2]int]())
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 2}, v)

	v, err = r.Convert(7, intSliceType)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, v)

	v, err = r.Convert("", intSliceType)
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = r.Convert("1,x", intSliceType)
	assert.ErrorIs(t, err, errs.ErrConversion)

	assert.Equal(t, "1,2", r.ToString([]int{1, 2}))

	safe := convert.NewRegistry(convert.WithCategories(convert.CategorySafeArray | convert.CategoryTextNumber))
	_, err = safe.Convert("1,2,3", reflect.TypeFor[[2]int]())
	assert.ErrorIs(t, err, errs.ErrConversion)

	semi := convert.NewRegistry(convert.WithArrayDelimiter(";"))
	v, err = semi.Convert("[a; b]", reflect.TypeFor[[]string]())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)
	assert.Equal(t, "a;b", semi.ToString([]string{"a", "b"}))
}

func TestConvertDerived(t *testing.T) {
	t.Parallel()

	r := convert.NewRegistry()

	v, err := r.Convert("7", reflect.TypeFor[*int]())
	require.NoError(t, err)
	assert.Equal(t, 7, *v.(*int))
	assert.Equal(t, "7", r.ToString(v))

	v, err = r.Convert(nil, reflect.TypeFor[*int]())
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = r.Convert(nil, intType)
	assert.ErrorIs(t, err, errs.ErrConversion)

	v, err = r.Convert("2", reflect.TypeFor[level]())
	require.NoError(t, err)
	assert.Equal(t, level(2), v)

	_, err = r.Convert("5", reflect.TypeFor[level]())
	assert.ErrorIs(t, err, errs.ErrConversion)

	v, err = r.Convert("red", reflect.TypeFor[color]())
	require.NoError(t, err)
	assert.Equal(t, color("red"), v)
	assert.Equal(t, "red", r.ToString(color("red")))

	v, err = r.Convert("10.0.0.1", reflect.TypeFor[netip.Addr]())
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("10.0.0.1"), v)
	assert.Equal(t, "10.0.0.1", r.ToString(v))
}

func TestConvertStrings(t *testing.T) {
	t.Parallel()

	r := convert.NewRegistry()

	v, err := r.ConvertStrings([]string{"4", "5"}, intType)
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	v, err = r.ConvertStrings(nil, intType)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	v, err = r.ConvertStrings([]string{"4", "5"}, intSliceType)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, v)

	v, err = r.ConvertString("true", reflect.TypeFor[bool]())
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestToString(t *testing.T) {
	t.Parallel()

	r := convert.NewRegistry()

	assert.Equal(t, "", r.ToString(nil))
	assert.Equal(t, "", r.ToString((*int)(nil)))
	assert.Equal(t, "0.1", r.ToString(float32(0.1)))
	assert.Equal(t, "true", r.ToString(true))
	assert.Equal(t, "map[a:1]", r.ToString(map[string]int{"a": 1}))
	assert.Equal(t, "{1 2}", r.ToString(struct{ A, B int }{1, 2}))
}

func TestPolicies(t *testing.T) {
	t.Parallel()

	r := convert.NewRegistry()
	r.Configure(intType, convert.Policy{Mode: convert.ModeLenient, Default: -1})

	v, err := r.Convert("x", intType)
	require.NoError(t, err)
	assert.Equal(t, -1, v)

	_, err = r.Convert("x", reflect.TypeFor[int64]())
	assert.Error(t, err)

	sized := convert.NewRegistry(convert.WithMode(convert.ModeLenient), convert.WithDefaultArraySize(2))
	v, err = sized.Convert("a,b", intSliceType)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, v)

	none := convert.NewRegistry(convert.WithMode(convert.ModeLenient), convert.WithDefaultArraySize(-1))
	v, err = none.Convert("a,b", intSliceType)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRegisterAndDeregister(t *testing.T) {
	t.Parallel()

	r := convert.NewRegistry()

	r.Register(intType, convert.ConverterFunc(func(reflect.Type, any) (any, error) {
		return 99, nil
	}))

	v, err := r.Convert("1", intType)
	require.NoError(t, err)
	assert.Equal(t, 99, v)

	r.Deregister(intType)
	assert.Nil(t, r.Lookup(intType))

	_, err = r.Convert("1", intType)
	assert.ErrorIs(t, err, errs.ErrConversion)

	r.DeregisterAll()
	v, err = r.Convert("1", intType)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestLookupPair(t *testing.T) {
	t.Parallel()

	r := convert.NewRegistry()
	stringType := reflect.TypeFor[string]()

	assert.IsType(t, convert.ArrayConverter{}, r.LookupPair(intSliceType, stringType))
	assert.IsType(t, convert.ArrayConverter{}, r.LookupPair(stringType, intSliceType))
	assert.NotNil(t, r.LookupPair(reflect.TypeFor[struct{}](), stringType))
	assert.Nil(t, r.Lookup(reflect.TypeFor[struct{}]()))
}

func TestRegisterFunc(t *testing.T) {
	t.Parallel()

	type celsius struct{ Degrees float64 }

	r := convert.NewRegistry()
	require.NoError(t, r.RegisterFunc(func(f float64) celsius { return celsius{f} }))

	v, err := r.Convert("21.5", reflect.TypeFor[celsius]())
	require.NoError(t, err)
	assert.Equal(t, celsius{21.5}, v)

	assert.ErrorIs(t, r.RegisterFunc(42), convert.ErrCasterIsNotAFunction)

	require.NoError(t, r.RegisterFunc(func(s string) (celsius, bool) { return celsius{}, false }))
	_, err = r.Convert("x", reflect.TypeFor[celsius]())
	assert.ErrorIs(t, err, errs.ErrConversion)
}

func ExampleRegistry_RegisterFunc() {
	type point struct{ X, Y int }

	r := convert.NewRegistry()

	err := r.RegisterFunc(func(s string) (point, error) {
		var p point
		_, err := fmt.Sscanf(s, "%d:%d", &p.X, &p.Y)

		return p, err
	})
	fmt.Println(err)

	v, err := r.Convert("3:4", reflect.TypeFor[point]())
	fmt.Println(v, err)

	// Output:
	// <nil>
	// {3 4} <nil>
}
