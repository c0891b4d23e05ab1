package convert

import (
	"errors"
	"math/big"
	"net/url"
	"reflect"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// defaults builds the converters every registry starts with.
func (r *Registry) defaults() map[reflect.Type]Converter {
	m := make(map[reflect.Type]Converter, KindTotal+8)

	for k := KindInt; k < KindPrimitiveEnum; k++ {
		if k == KindString {
			continue
		}

		m[k.Type()] = basicConverter{r: r, to: k}
	}

	m[stringType] = ConverterFunc(func(_ reflect.Type, value any) (any, error) {
		return r.format(value)
	})

	m[reflect.TypeFor[*big.Int]()] = scalar(r, parseBigInt, (*big.Int).String)
	m[reflect.TypeFor[*big.Float]()] = scalar(r, parseBigFloat, func(f *big.Float) string { return f.Text('g', -1) })
	m[reflect.TypeFor[*big.Rat]()] = scalar(r, parseBigRat, (*big.Rat).RatString)
	m[reflect.TypeFor[*url.URL]()] = scalar(r, url.Parse, (*url.URL).String)
	m[reflect.TypeFor[uuid.UUID]()] = scalar(r, uuid.Parse, uuid.UUID.String)
	m[reflect.TypeFor[ulid.ULID]()] = scalar(r, ulid.ParseStrict, ulid.ULID.String)
	m[reflect.TypeFor[[]byte]()] = ConverterFunc(r.convertBytes)
	m[reflect.TypeFor[reflect.Type]()] = scalar(r, Resolve, TypeName)

	return m
}

// scalar builds a converter for a type with a textual form. Non-string
// sources are rendered with ToString first, so 42 becomes a *big.Int.
func scalar[T any](r *Registry, parse func(string) (T, error), format func(T) string) Converter {
	return ConverterFunc(func(target reflect.Type, value any) (any, error) {
		if target == stringType {
			v, ok := value.(T)
			if !ok {
				return nil, errNoConverter
			}

			return format(v), nil
		}

		s, ok := value.(string)
		if !ok {
			rv, _, err := r.source(value)
			if err != nil {
				s = r.ToString(value)
			} else {
				s = r.ToString(rv.Interface())
			}
		}

		return parse(s)
	})
}

func parseBigInt(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, errors.New("invalid integer " + s)
	}

	return n, nil
}

func parseBigFloat(s string) (*big.Float, error) {
	f, ok := new(big.Float).SetString(s)
	if !ok {
		return nil, errors.New("invalid decimal " + s)
	}

	return f, nil
}

func parseBigRat(s string) (*big.Rat, error) {
	q, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, errors.New("invalid rational " + s)
	}

	return q, nil
}

// convertBytes maps strings to their bytes and back.
func (r *Registry) convertBytes(target reflect.Type, value any) (any, error) {
	if target == stringType {
		b, ok := value.([]byte)
		if !ok {
			return nil, errNoConverter
		}

		return string(b), nil
	}

	if s, ok := value.(string); ok {
		return []byte(s), nil
	}

	return []byte(r.ToString(value)), nil
}
