package convert

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"beankit/introspect"
)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// derive builds a converter for a type without a registration.
func (r *Registry) derive(t reflect.Type) Converter {
	if t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return textConverter{r}
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return ArrayConverter{r}
	case reflect.Pointer:
		if r.Lookup(t.Elem()) != nil {
			return pointerConverter{r}
		}

		return nil
	}

	if FromType(t) == KindPrimitiveEnum {
		return enumConverter{r}
	}

	return nil
}

// ArrayConverter converts lists to slices and arrays element by element.
// A string source is split on the configured delimiter, optionally wrapped
// in {} or []; a single non-list value becomes a one-element list. Slices
// format as their elements joined with the delimiter.
type ArrayConverter struct {
	r *Registry
}

// Convert implements Converter.
func (c ArrayConverter) Convert(target reflect.Type, value any) (any, error) {
	if target == stringType {
		return c.join(value)
	}

	items := c.split(value)

	var out reflect.Value

	switch target.Kind() {
	case reflect.Slice:
		out = reflect.MakeSlice(target, len(items), len(items))
	case reflect.Array:
		switch {
		case len(items) <= target.Len():
			if c.r.cfg.Categories&CategorySafeArray == 0 {
				return nil, errCategoryDisabled
			}
		default:
			if c.r.cfg.Categories&CategoryUnsafeArray == 0 {
				return nil, fmt.Errorf("%d elements do not fit %s", len(items), target)
			}

			items = items[:target.Len()]
		}

		out = reflect.New(target).Elem()
	default:
		return nil, errUnsupportedPair
	}

	for i, item := range items {
		v, err := c.r.strict(item, target.Elem())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		fit, ok := introspect.Fit(v, target.Elem())
		if !ok {
			return nil, fmt.Errorf("element %d: %T does not fit %s", i, v, target.Elem())
		}

		out.Index(i).Set(fit)
	}

	return out.Interface(), nil
}

func (c ArrayConverter) split(value any) []any {
	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}

		return items
	case reflect.String:
	default:
		return []any{value}
	}

	s := strings.TrimSpace(rv.String())
	if len(s) >= 2 && (s[0] == '{' && s[len(s)-1] == '}' || s[0] == '[' && s[len(s)-1] == ']') {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	if s == "" {
		return nil
	}

	parts := strings.Split(s, c.r.cfg.ArrayDelimiter)
	items := make([]any, len(parts))

	for i, p := range parts {
		items[i] = strings.TrimSpace(p)
	}

	return items
}

func (c ArrayConverter) join(value any) (any, error) {
	rv := reflect.ValueOf(value)
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return nil, errNoConverter
	}

	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = c.r.ToString(rv.Index(i).Interface())
	}

	return strings.Join(parts, c.r.cfg.ArrayDelimiter), nil
}

// pointerConverter allocates a new value for pointer targets from the
// conversion of its element type.
type pointerConverter struct {
	r *Registry
}

// Convert implements Converter.
func (c pointerConverter) Convert(target reflect.Type, value any) (any, error) {
	if target == stringType {
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Pointer {
			return nil, errNoConverter
		}

		if rv.IsNil() {
			return "", nil
		}

		return c.r.ToString(rv.Elem().Interface()), nil
	}

	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && !rv.IsNil() {
		value = rv.Elem().Interface()
	}

	v, err := c.r.strict(value, target.Elem())
	if err != nil {
		return nil, err
	}

	fit, ok := introspect.Fit(v, target.Elem())
	if !ok {
		return nil, errUnsupportedPair
	}

	p := reflect.New(target.Elem())
	p.Elem().Set(fit)

	return p.Interface(), nil
}

type validator interface {
	IsValid() bool
}

// enumConverter converts to named basic types through their underlying type
// and rejects values whose IsValid method reports false.
type enumConverter struct {
	r *Registry
}

// Convert implements Converter.
func (c enumConverter) Convert(target reflect.Type, value any) (any, error) {
	if target == stringType {
		return c.r.format(value)
	}

	if FromType(reflect.TypeOf(value)) == KindPrimitiveEnum || reflect.TypeOf(value) == stringType {
		if c.r.cfg.Categories&CategoryEnumString == 0 {
			return nil, errCategoryDisabled
		}
	}

	base := basicOf(target.Kind()).Type()

	v, err := c.r.strict(value, base)
	if err != nil {
		return nil, err
	}

	out := reflect.ValueOf(v).Convert(target)

	if val, ok := out.Interface().(validator); ok && !val.IsValid() {
		return nil, fmt.Errorf("%v is not a valid %s", v, target)
	}

	return out.Interface(), nil
}

// textConverter handles encoding.TextUnmarshaler implementations.
type textConverter struct {
	r *Registry
}

// Convert implements Converter.
func (c textConverter) Convert(target reflect.Type, value any) (any, error) {
	if target == stringType {
		if s, ok := textOf(reflect.ValueOf(value)); ok {
			return s, nil
		}

		return nil, errNoConverter
	}

	s, ok := value.(string)
	if !ok {
		s = c.r.ToString(value)
	}

	p := reflect.New(target)

	u, ok := p.Interface().(encoding.TextUnmarshaler)
	if !ok {
		return nil, errors.New("not a text unmarshaler")
	}

	if err := u.UnmarshalText([]byte(s)); err != nil {
		return nil, err
	}

	return p.Elem().Interface(), nil
}
