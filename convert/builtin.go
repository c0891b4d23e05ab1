package convert

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"beankit/internal/common"
)

var (
	errCategoryDisabled = errors.New("conversion category is disabled")
	errUnsupportedPair  = errors.New("unsupported conversion")
)

// basicConverter converts between the built-in kinds following the category
// table; formatting to string is always allowed.
type basicConverter struct {
	r  *Registry
	to Kind
}

// Convert implements Converter.
func (c basicConverter) Convert(target reflect.Type, value any) (any, error) {
	if target == stringType {
		return c.r.format(value)
	}

	rv, from, err := c.r.source(value)
	if err != nil {
		return nil, err
	}

	if from == KindString {
		return c.parse(target, strings.TrimSpace(rv.String()))
	}

	if err := c.r.allowed(ConversionPair{from, c.to}); err != nil {
		return nil, err
	}

	out := reflect.New(target).Elem()

	switch {
	case from.IsNumber() && c.to.IsNumber():
		err = setNumber(out, rv)
	case from.IsInteger() && c.to == KindBool:
		switch n := intOf(rv); n {
		case 0, 1:
			out.SetBool(n == 1)
		default:
			err = fmt.Errorf("only numbers 0 and 1 are allowed for bool, got: %d", n)
		}
	case from == KindBool && c.to.IsInteger():
		if rv.Bool() {
			err = setNumber(out, reflect.ValueOf(1))
		} else {
			err = setNumber(out, reflect.ValueOf(0))
		}
	case from.IsInteger() && c.to == KindTime:
		out.Set(reflect.ValueOf(time.Unix(intOf(rv), 0).In(c.r.cfg.Location)))
	case from == KindTime && c.to.IsInteger():
		err = setNumber(out, reflect.ValueOf(rv.Interface().(time.Time).Unix()))
	case from.IsInteger() && c.to == KindDuration:
		out.SetInt(intOf(rv))
	case from.IsFloat() && c.to == KindDuration:
		secs := rv.Float() * float64(time.Second)
		if !common.IsInRange(math.MinInt64, secs, math.MaxInt64) {
			return nil, errOverflow(rv, target)
		}

		out.SetInt(int64(secs))
	case from == KindDuration && c.to.IsInteger():
		err = setNumber(out, reflect.ValueOf(rv.Int()))
	case from == KindDuration && c.to.IsFloat():
		err = setNumber(out, reflect.ValueOf(time.Duration(rv.Int()).Seconds()))
	default:
		err = errUnsupportedPair
	}

	if err != nil {
		return nil, err
	}

	return out.Interface(), nil
}

func (c basicConverter) parse(target reflect.Type, s string) (any, error) {
	if err := c.r.allowed(ConversionPair{KindString, c.to}); err != nil {
		return nil, err
	}

	out := reflect.New(target).Elem()

	switch {
	case c.to.IsSigned():
		n, err := strconv.ParseInt(s, 10, c.to.Bits())
		if err != nil {
			return nil, err
		}

		out.SetInt(n)
	case c.to.IsUnsigned():
		n, err := strconv.ParseUint(s, 10, c.to.Bits())
		if err != nil {
			return nil, err
		}

		out.SetUint(n)
	case c.to.IsFloat():
		f, err := strconv.ParseFloat(s, c.to.Bits())
		if err != nil {
			return nil, err
		}

		out.SetFloat(f)
	case c.to == KindBool:
		b, err := parseBool(s)
		if err != nil {
			return nil, err
		}

		out.SetBool(b)
	case c.to == KindTime:
		t, err := c.r.parseTime(s)
		if err != nil {
			return nil, err
		}

		out.Set(reflect.ValueOf(t))
	case c.to == KindDuration:
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, err
		}

		out.SetInt(int64(d))
	default:
		return nil, errUnsupportedPair
	}

	return out.Interface(), nil
}

// source unwraps value to a built-in kind: named basic types become their
// underlying type, slices yield their first element, and text marshalers
// and stringers become strings.
func (r *Registry) source(value any) (reflect.Value, Kind, error) {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, 0, errors.New("nil value")
		}

		rv = rv.Elem()
	}

	switch k := FromType(rv.Type()); k {
	case KindPrimitiveEnum:
		base := basicOf(rv.Kind())
		return rv.Convert(base.Type()), base, nil
	case 0:
	default:
		return rv, k, nil
	}

	if s, ok := textOf(rv); ok {
		return reflect.ValueOf(s), KindString, nil
	}

	if k := rv.Kind(); (k == reflect.Slice || k == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		if rv.Len() == 0 {
			return reflect.Value{}, 0, errors.New("empty list")
		}

		return r.source(rv.Index(0).Interface())
	}

	return reflect.Value{}, 0, errUnsupportedPair
}

func (r *Registry) allowed(pair ConversionPair) error {
	cat, ok := CategoryOf(pair)
	if !ok {
		return errUnsupportedPair
	}

	if r.cfg.Categories&cat == 0 {
		return errCategoryDisabled
	}

	return nil
}

// format renders a built-in, named basic, text marshaling or stringer value.
func (r *Registry) format(value any) (any, error) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return "", nil
	}

	if s, ok := textOf(rv); ok {
		return s, nil
	}

	kind := FromType(rv.Type())
	if kind == KindPrimitiveEnum {
		kind = basicOf(rv.Kind())
	}

	switch {
	case kind.IsSigned():
		return strconv.FormatInt(rv.Int(), 10), nil
	case kind.IsUnsigned():
		return strconv.FormatUint(rv.Uint(), 10), nil
	case kind.IsFloat():
		return strconv.FormatFloat(rv.Float(), 'f', -1, kind.Bits()), nil
	case kind == KindBool:
		return strconv.FormatBool(rv.Bool()), nil
	case kind == KindString:
		return rv.String(), nil
	case kind == KindTime:
		return rv.Interface().(time.Time).Format(r.cfg.TimeLayouts[0]), nil
	case kind == KindDuration:
		return time.Duration(rv.Int()).String(), nil
	default:
		return nil, errUnsupportedPair
	}
}

func (r *Registry) parseTime(s string) (time.Time, error) {
	var first error

	for _, layout := range r.cfg.TimeLayouts {
		t, err := time.ParseInLocation(layout, s, r.cfg.Location)
		if err == nil {
			return t, nil
		}

		if first == nil {
			first = err
		}
	}

	return time.Time{}, first
}

// textOf renders values that describe themselves as text. Types whose
// String method only comes from time.Time or time.Duration are skipped so
// the layouts apply.
func textOf(rv reflect.Value) (string, bool) {
	if !rv.IsValid() || !rv.CanInterface() {
		return "", false
	}

	switch rv.Type() {
	case kindTypes[KindTime], kindTypes[KindDuration]:
		return "", false
	}

	switch v := rv.Interface().(type) {
	case string:
		return v, true
	case encoding.TextMarshaler:
		b, err := v.MarshalText()
		if err != nil {
			return "", false
		}

		return string(b), true
	case fmt.Stringer:
		return v.String(), true
	case error:
		return v.Error(), true
	default:
		return "", false
	}
}

var boolWords = map[string]bool{
	"true": true, "yes": true, "on": true, "y": true, "1": true,
	"false": false, "no": false, "off": false, "n": false, "0": false,
}

func parseBool(s string) (bool, error) {
	b, ok := boolWords[strings.ToLower(s)]
	if !ok {
		return false, fmt.Errorf("only strings true/false, yes/no, on/off, y/n, 1/0 are allowed for bool, got: %s", s)
	}

	return b, nil
}

// setNumber stores the number held by src into dst, failing on overflow and
// on fractions that do not fit an integer.
func setNumber(dst, src reflect.Value) error {
	switch {
	case src.CanInt():
		n := src.Int()

		switch {
		case dst.CanInt():
			if dst.OverflowInt(n) {
				return errOverflow(src, dst.Type())
			}

			dst.SetInt(n)
		case dst.CanUint():
			if n < 0 || dst.OverflowUint(uint64(n)) {
				return errOverflow(src, dst.Type())
			}

			dst.SetUint(uint64(n))
		case dst.CanFloat():
			dst.SetFloat(float64(n))
		}
	case src.CanUint():
		n := src.Uint()

		switch {
		case dst.CanInt():
			if n > math.MaxInt64 || dst.OverflowInt(int64(n)) {
				return errOverflow(src, dst.Type())
			}

			dst.SetInt(int64(n))
		case dst.CanUint():
			if dst.OverflowUint(n) {
				return errOverflow(src, dst.Type())
			}

			dst.SetUint(n)
		case dst.CanFloat():
			dst.SetFloat(float64(n))
		}
	case src.CanFloat():
		f := src.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return errOverflow(src, dst.Type())
		}

		switch {
		case dst.CanInt():
			if !common.IsInRange(math.MinInt64, f, math.MaxInt64) || dst.OverflowInt(int64(f)) {
				return errOverflow(src, dst.Type())
			}

			dst.SetInt(int64(f))
		case dst.CanUint():
			if !common.IsInRange(0, f, math.MaxUint64) || dst.OverflowUint(uint64(f)) {
				return errOverflow(src, dst.Type())
			}

			dst.SetUint(uint64(f))
		case dst.CanFloat():
			if dst.OverflowFloat(f) {
				return errOverflow(src, dst.Type())
			}

			dst.SetFloat(f)
		}
	default:
		return errUnsupportedPair
	}

	return nil
}

func intOf(rv reflect.Value) int64 {
	if rv.CanUint() {
		return int64(rv.Uint())
	}

	return rv.Int()
}

func errOverflow(src reflect.Value, to reflect.Type) error {
	return fmt.Errorf("%v overflows %s", src.Interface(), to)
}
