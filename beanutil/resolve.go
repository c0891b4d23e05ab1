package beanutil

import (
	"errors"
	"reflect"

	"beankit/dyna"
	"beankit/errs"
	"beankit/expr"
	"beankit/introspect"
)

// target is the bean holding the last segment of an expression.
type target struct {
	bean dyna.Bean
	seg  expr.Segment
}

// resolve walks every segment but the last. Intermediate segments are read
// in full, subscripts included; struct-valued slots are followed by address
// so writes reach the original value.
func (c *Context) resolve(root any, expression string) (target, error) {
	bean, err := c.wrap(root, "", expression)
	if err != nil {
		return target{}, err
	}

	seg, err := expr.ParseWith(c.resolver, expression)
	if err != nil {
		return target{}, err
	}

	for !seg.IsLast() {
		next, err := c.step(bean, seg)
		if err != nil {
			return target{}, withExpr(err, expression)
		}

		if isNil(next) {
			return target{}, errs.New(errs.ErrNestedNull, className(bean), seg.Raw, "").WithExpr(expression)
		}

		if bean, err = c.wrap(next, seg.Raw, expression); err != nil {
			return target{}, err
		}

		if seg, err = expr.ParseWith(c.resolver, seg.Rest); err != nil {
			return target{}, withExpr(err, expression)
		}
	}

	return target{bean: bean, seg: seg}, nil
}

func (c *Context) step(bean dyna.Bean, seg expr.Segment) (any, error) {
	addr, canAddr := bean.(dyna.Addresser)

	switch seg.Kind {
	case expr.KindIndexed:
		if canAddr {
			if p, ok := addr.AddrIndexed(seg.Name, seg.Index); ok {
				return p, nil
			}
		}

		return bean.GetIndexed(seg.Name, seg.Index)
	case expr.KindMapped:
		return bean.GetMapped(seg.Name, seg.Key)
	default:
		if canAddr {
			if p, ok := addr.Addr(seg.Name); ok {
				return p, nil
			}
		}

		return bean.Get(seg.Name)
	}
}

func (c *Context) wrap(v any, property, expression string) (dyna.Bean, error) {
	if isNil(v) {
		return nil, errs.New(errs.ErrUnsupported, "", property, "nil bean").WithExpr(expression)
	}

	b, err := c.Bean(v)
	if err != nil {
		return nil, withExpr(err, expression)
	}

	return b, nil
}

// get reads the last segment.
func (t target) get() (any, error) {
	switch t.seg.Kind {
	case expr.KindIndexed:
		return t.bean.GetIndexed(t.seg.Name, t.seg.Index)
	case expr.KindMapped:
		return t.bean.GetMapped(t.seg.Name, t.seg.Key)
	default:
		return t.bean.Get(t.seg.Name)
	}
}

// set writes the last segment.
func (t target) set(value any) error {
	switch t.seg.Kind {
	case expr.KindIndexed:
		return t.bean.SetIndexed(t.seg.Name, t.seg.Index, value)
	case expr.KindMapped:
		return t.bean.SetMapped(t.seg.Name, t.seg.Key, value)
	default:
		return t.bean.Set(t.seg.Name, value)
	}
}

// property returns the declaration of the last segment's name.
func (t target) property() (*dyna.Property, bool) {
	return t.bean.Class().Property(t.seg.Name)
}

// slotType returns the type a write to the last segment must produce: the
// property type for simple segments, the element type otherwise. It is nil
// when unknown.
func (t target) slotType() (reflect.Type, error) {
	p, ok := t.property()
	if !ok {
		if extensible(t.bean) {
			return nil, nil
		}

		return nil, errs.New(errs.ErrNoSuchProperty, className(t.bean), t.seg.Name, "")
	}

	if t.seg.Kind == expr.KindSimple {
		return p.Type, nil
	}

	return p.Elem(), nil
}

// mappedType returns the element type a mapped write must be converted to.
// It is nil when the map takes value unchanged, which keeps weakly typed
// lazy maps weak.
func (t target) mappedType(value any) reflect.Type {
	p, ok := t.property()
	if !ok || !p.IsMapped() {
		return nil
	}

	elem := p.Type.Elem()
	if _, ok := introspect.Fit(value, elem); ok {
		return nil
	}

	return elem
}

func extensible(b dyna.Bean) bool {
	e, ok := b.(dyna.Extensible)
	return ok && e.Extensible()
}

func className(b dyna.Bean) string {
	if b == nil || b.Class() == nil {
		return ""
	}

	return b.Class().Name()
}

func withExpr(err error, expression string) error {
	var pe *errs.PropertyError
	if errors.As(err, &pe) && pe.Expr == "" {
		pe.WithExpr(expression)
	}

	return err
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
