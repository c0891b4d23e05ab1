package beanutil

import (
	"errors"
	"log/slog"
	"reflect"

	"beankit/dyna"
	"beankit/errs"
	"beankit/expr"
)

// GetProperty reads the value addressed by expression, which may be nested
// and end in an index or key: "customer.addresses[0].lines(street)".
// A nil intermediate value fails with errs.ErrNestedNull.
func (c *Context) GetProperty(bean any, expression string) (any, error) {
	t, err := c.resolve(bean, expression)
	if err != nil {
		return nil, err
	}

	v, err := t.get()

	return v, withExpr(err, expression)
}

// GetSimpleProperty reads a plain property name, rejecting nested or
// subscripted expressions.
func (c *Context) GetSimpleProperty(bean any, name string) (any, error) {
	b, err := c.simple(bean, name)
	if err != nil {
		return nil, err
	}

	return b.Get(name)
}

// GetIndexedProperty reads element index of the property addressed by
// expression.
func (c *Context) GetIndexedProperty(bean any, expression string, index int) (any, error) {
	t, err := c.plainTarget(bean, expression)
	if err != nil {
		return nil, err
	}

	v, err := t.bean.GetIndexed(t.seg.Name, index)

	return v, withExpr(err, expression)
}

// GetMappedProperty reads entry key of the property addressed by
// expression.
func (c *Context) GetMappedProperty(bean any, expression, key string) (any, error) {
	t, err := c.plainTarget(bean, expression)
	if err != nil {
		return nil, err
	}

	v, err := t.bean.GetMapped(t.seg.Name, key)

	return v, withExpr(err, expression)
}

// SetProperty writes value, unconverted, to the slot addressed by
// expression. A nil intermediate value makes the write a silent no-op.
func (c *Context) SetProperty(bean any, expression string, value any) error {
	return c.quiet(c.setProperty(bean, expression, value), expression)
}

func (c *Context) setProperty(bean any, expression string, value any) error {
	t, err := c.resolve(bean, expression)
	if err != nil {
		return err
	}

	return withExpr(t.set(value), expression)
}

// SetSimpleProperty writes a plain property name.
func (c *Context) SetSimpleProperty(bean any, name string, value any) error {
	b, err := c.simple(bean, name)
	if err != nil {
		return err
	}

	return b.Set(name, value)
}

// SetIndexedProperty writes element index of the property addressed by
// expression.
func (c *Context) SetIndexedProperty(bean any, expression string, index int, value any) error {
	t, err := c.plainTarget(bean, expression)
	if err != nil {
		return c.quiet(err, expression)
	}

	return withExpr(t.bean.SetIndexed(t.seg.Name, index, value), expression)
}

// SetMappedProperty writes entry key of the property addressed by
// expression.
func (c *Context) SetMappedProperty(bean any, expression, key string, value any) error {
	t, err := c.plainTarget(bean, expression)
	if err != nil {
		return c.quiet(err, expression)
	}

	return withExpr(t.bean.SetMapped(t.seg.Name, key, value), expression)
}

// IsReadable reports whether expression can be read on bean. Unresolvable
// paths are not readable.
func (c *Context) IsReadable(bean any, expression string) bool {
	t, err := c.resolve(bean, expression)
	if err != nil {
		return false
	}

	p, ok := t.property()
	if !ok {
		return extensible(t.bean)
	}

	return p.Readable() || (t.seg.Kind != expr.KindSimple && (p.IsIndexed() || p.IsMapped()))
}

// IsWritable reports whether expression can be written on bean.
func (c *Context) IsWritable(bean any, expression string) bool {
	t, err := c.resolve(bean, expression)
	if err != nil {
		return false
	}

	p, ok := t.property()
	if !ok {
		return extensible(t.bean)
	}

	if t.seg.Kind != expr.KindSimple {
		return p.IsIndexed() || p.IsMapped() || p.Type == nil
	}

	return p.Writable()
}

// PropertyType returns the declared type of the slot addressed by
// expression: the property type, or its element type when the expression
// ends in a subscript. It is nil for untyped slots.
func (c *Context) PropertyType(bean any, expression string) (reflect.Type, error) {
	t, err := c.resolve(bean, expression)
	if err != nil {
		return nil, err
	}

	typ, err := t.slotType()

	return typ, withExpr(err, expression)
}

// Size returns the length of the slice, array, map or string addressed by
// expression; nil counts as empty.
func (c *Context) Size(bean any, expression string) (int, error) {
	v, err := c.GetProperty(bean, expression)
	if err != nil {
		return 0, err
	}

	if v == nil {
		return 0, nil
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len(), nil
	default:
		return 0, errs.New(errs.ErrKindMismatch, "", expression, "value has no size")
	}
}

// Describe returns every readable property of bean by name.
func (c *Context) Describe(bean any) (map[string]any, error) {
	b, err := c.Bean(bean)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any)

	for _, p := range b.Class().Properties() {
		if !p.Readable() {
			continue
		}

		v, err := b.Get(p.Name)
		if err != nil {
			return nil, err
		}

		out[p.Name] = v
	}

	return out, nil
}

// CopyProperties copies every property readable on src to the same-named
// property of dest, unconverted. Names dest lacks or cannot write are
// skipped before src is read; values of the wrong type fail.
func (c *Context) CopyProperties(dest, src any) error {
	return c.copyEach(dest, src, func(d dyna.Bean, name string, value any) error {
		return d.Set(name, value)
	})
}

// copyEach reads every readable property of src and hands it to write.
// Skippable failures of write are logged and ignored.
func (c *Context) copyEach(dest, src any, write func(d dyna.Bean, name string, value any) error) error {
	from, err := c.Bean(src)
	if err != nil {
		return err
	}

	to, err := c.Bean(dest)
	if err != nil {
		return err
	}

	for _, p := range from.Class().Properties() {
		if !p.Readable() {
			continue
		}

		dp, ok := to.Class().Property(p.Name)
		if (ok && !dp.Writable()) || (!ok && !extensible(to)) {
			continue
		}

		v, err := from.Get(p.Name)
		if err != nil {
			return err
		}

		if err := write(to, p.Name, v); err != nil {
			if !skippable(err) {
				return err
			}

			c.logger.Debug("property not copied", slog.String("property", p.Name), slog.Any("error", err))
		}
	}

	return nil
}

// simple wraps bean for a plain, unsubscripted name.
func (c *Context) simple(bean any, name string) (dyna.Bean, error) {
	seg, err := expr.ParseWith(c.resolver, name)
	if err != nil {
		return nil, err
	}

	if !seg.IsLast() || seg.Kind != expr.KindSimple {
		return nil, errs.New(errs.ErrParse, "", name, "nested or subscripted expression where a plain name is required")
	}

	return c.Bean(bean)
}

// plainTarget resolves an expression whose last segment carries no
// subscript of its own.
func (c *Context) plainTarget(bean any, expression string) (target, error) {
	t, err := c.resolve(bean, expression)
	if err != nil {
		return target{}, err
	}

	if t.seg.Kind != expr.KindSimple {
		return target{}, errs.New(errs.ErrParse, className(t.bean), t.seg.Raw, "subscript given twice").WithExpr(expression)
	}

	return t, nil
}

// quiet swallows the nested-null failure of a write.
func (c *Context) quiet(err error, expression string) error {
	if errors.Is(err, errs.ErrNestedNull) {
		c.logger.Debug("write skipped at nil link", slog.String("expression", expression))
		return nil
	}

	return err
}

// skippable reports the failures bulk operations step over: unknown
// properties, nil links and unwritable slots.
func skippable(err error) bool {
	return errs.IsBenign(err) || errors.Is(err, errs.ErrAccess)
}
