package beanutil

import (
	"log/slog"
	"maps"
	"reflect"
	"slices"

	"beankit/diagnostic"
	"beankit/dyna"
	"beankit/errs"
	"beankit/expr"
)

// GetString reads expression and renders the value with the registry.
// Slices render as their elements joined by the array delimiter.
func (c *Context) GetString(bean any, expression string) (string, error) {
	v, err := c.GetProperty(bean, expression)
	if err != nil {
		return "", err
	}

	return c.registry.ToString(v), nil
}

// GetStrings reads expression as a list of strings: every element of a
// slice or array, or the single rendered value otherwise. Nil yields nil.
func (c *Context) GetStrings(bean any, expression string) ([]string, error) {
	v, err := c.GetProperty(bean, expression)
	if err != nil || v == nil {
		return nil, err
	}

	rv := reflect.ValueOf(v)
	if k := rv.Kind(); (k != reflect.Slice && k != reflect.Array) || rv.Type().Elem().Kind() == reflect.Uint8 {
		return []string{c.registry.ToString(v)}, nil
	}

	out := make([]string, rv.Len())
	for i := range out {
		out[i] = c.registry.ToString(rv.Index(i).Interface())
	}

	return out, nil
}

// SetFromString converts s to the declared type of the addressed slot and
// writes it.
func (c *Context) SetFromString(bean any, expression, s string) error {
	return c.SetConverted(bean, expression, s)
}

// SetConverted converts value to the declared type of the addressed slot
// and writes it. A []string feeds scalar slots from its first element.
// Untyped slots receive value unchanged, and so do mapped slots whose map
// accepts value as is. Unknown or read-only properties
// fail; a nil intermediate value makes the write a silent no-op.
func (c *Context) SetConverted(bean any, expression string, value any) error {
	return c.quiet(c.setConverted(bean, expression, value), expression)
}

func (c *Context) setConverted(bean any, expression string, value any) error {
	t, err := c.resolve(bean, expression)
	if err != nil {
		return err
	}

	typ, err := t.slotType()
	if err != nil {
		return withExpr(err, expression)
	}

	switch p, ok := t.property(); {
	case ok && t.seg.Kind == expr.KindSimple && !p.Writable():
		return errs.New(errs.ErrAccess, className(t.bean), t.seg.Name, "property is read-only").WithExpr(expression)
	case t.seg.Kind == expr.KindMapped:
		typ = t.mappedType(value)
	}

	if typ != nil {
		if value, err = c.convertTo(value, typ); err != nil {
			return errs.Wrap(errs.ErrConversion, className(t.bean), t.seg.Name, err).WithExpr(expression)
		}
	}

	return withExpr(t.set(value), expression)
}

// convertTo converts value to typ; string lists go through ConvertStrings.
func (c *Context) convertTo(value any, typ reflect.Type) (any, error) {
	if strs, ok := value.([]string); ok {
		return c.registry.ConvertStrings(strs, typ)
	}

	return c.registry.Convert(value, typ)
}

// CopyProperty converts value to the type of dest's property and writes
// it, skipping unknown and unwritable properties and nil links.
func (c *Context) CopyProperty(dest any, expression string, value any) error {
	err := c.setConverted(dest, expression, value)
	if err != nil && skippable(err) {
		c.logger.Debug("property not copied", slog.String("property", expression), slog.Any("error", err))
		return nil
	}

	return err
}

// CopyConverted copies every property readable on src to dest, converting
// each value to the destination type.
func (c *Context) CopyConverted(dest, src any) error {
	return c.copyEach(dest, src, func(d dyna.Bean, name string, value any) error {
		return c.setConverted(d, name, value)
	})
}

// Populate sets the properties of bean from values, converting each to the
// declared type. Keys are property expressions and are applied in sorted
// order. Unknown and read-only keys and nil links are skipped; conversion
// and type failures stop the population.
func (c *Context) Populate(bean any, values map[string]any) error {
	_, err := c.PopulateReport(bean, values)
	return err
}

// PopulateStrings is Populate for form-style values such as url.Values.
func (c *Context) PopulateStrings(bean any, values map[string][]string) error {
	converted := make(map[string]any, len(values))
	for k, v := range values {
		converted[k] = v
	}

	return c.Populate(bean, converted)
}

// PopulateReport is Populate that also reports every skipped key.
func (c *Context) PopulateReport(bean any, values map[string]any) (diagnostic.Diagnostics, error) {
	var report diagnostic.Diagnostics

	if isNil(bean) {
		return report, nil
	}

	for _, key := range slices.Sorted(maps.Keys(values)) {
		err := c.setConverted(bean, key, values[key])
		if err == nil {
			continue
		}

		if !skippable(err) {
			report.AddError(diagnostic.Code(err), err.Error(), "", key)
			return report, err
		}

		c.logger.Debug("populate skipped key", slog.String("key", key), slog.Any("error", err))
		report.AddSkipped(key, err)
	}

	return report, nil
}

// DescribeStrings returns every readable property of bean rendered as a
// string.
func (c *Context) DescribeStrings(bean any) (map[string]string, error) {
	values, err := c.Describe(bean)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = c.registry.ToString(v)
	}

	return out, nil
}

// CloneBean returns a shallow copy of bean: a new instance of its class
// filled by CopyProperties. Structs are cloned through a new pointer and
// returned in the same shape as given.
func (c *Context) CloneBean(bean any) (any, error) {
	if b, ok := bean.(dyna.Bean); ok {
		clone, err := b.Class().NewInstance()
		if err != nil {
			return nil, err
		}

		return clone, c.CopyProperties(clone, b)
	}

	rv := reflect.ValueOf(bean)
	if isNil(bean) {
		return nil, errs.New(errs.ErrUnsupported, "", "", "nil bean")
	}

	switch {
	case rv.Kind() == reflect.Map:
		clone := reflect.MakeMapWithSize(rv.Type(), rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			clone.SetMapIndex(iter.Key(), iter.Value())
		}

		return clone.Interface(), nil
	case rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Struct:
		clone := reflect.New(rv.Elem().Type())
		return clone.Interface(), c.CopyProperties(clone.Interface(), bean)
	case rv.Kind() == reflect.Struct:
		clone := reflect.New(rv.Type())
		if err := c.CopyProperties(clone.Interface(), bean); err != nil {
			return nil, err
		}

		return clone.Elem().Interface(), nil
	default:
		return nil, errs.New(errs.ErrUnsupported, rv.Type().String(), "", "not a bean")
	}
}
