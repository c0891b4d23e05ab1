package dyna

import (
	"fmt"
	"reflect"

	"beankit/errs"
	"beankit/introspect"
)

// WrapClass describes a Go struct type through an introspection cache.
type WrapClass struct {
	typ   reflect.Type
	cache *introspect.Cache
}

// NewWrapClass returns the class of t (a struct or pointer to struct).
func NewWrapClass(cache *introspect.Cache, t reflect.Type) *WrapClass {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return &WrapClass{typ: t, cache: cache}
}

// Name returns the Go type name.
func (c *WrapClass) Name() string { return c.typ.String() }

// Type returns the described struct type.
func (c *WrapClass) Type() reflect.Type { return c.typ }

// Property returns the property called name.
func (c *WrapClass) Property(name string) (*Property, bool) {
	d, ok := c.cache.Descriptor(c.typ, name)
	if !ok {
		return nil, false
	}

	return fromDescriptor(d), true
}

// Properties returns the properties in discovery order.
func (c *WrapClass) Properties() []*Property {
	ds := c.cache.Descriptors(c.typ)

	out := make([]*Property, len(ds))
	for i, d := range ds {
		out[i] = fromDescriptor(d)
	}

	return out
}

// NewInstance wraps a pointer to a new zero struct.
func (c *WrapClass) NewInstance() (Bean, error) {
	return &WrapBean{class: c, value: reflect.New(c.typ)}, nil
}

// fromDescriptor renders d as a Property. Properties reachable only through
// indexed or mapped accessors get a synthetic slice or map type and are
// neither readable nor writable as a whole.
func fromDescriptor(d *introspect.Descriptor) *Property {
	p := &Property{
		Name:      d.Name,
		Type:      d.Type,
		ReadOnly:  !d.Writable(),
		WriteOnly: !d.Readable(),
	}

	if p.Type == nil && d.ElemType != nil {
		if d.IndexedGetter != "" || d.IndexedSetter != "" {
			p.Type = reflect.SliceOf(d.ElemType)
		} else {
			p.Type = reflect.MapOf(reflect.TypeFor[string](), d.ElemType)
		}
	}

	if d.ElemType != nil {
		p.ContentType = d.ElemType
	}

	return p
}

// WrapBean adapts a Go struct to the Bean interface. Writes need a pointer;
// a wrapped struct value is read-only.
type WrapBean struct {
	class *WrapClass
	value reflect.Value
}

// NewWrapBean wraps v, a struct or pointer to struct.
func NewWrapBean(cache *introspect.Cache, v any) (*WrapBean, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, errs.New(errs.ErrUnsupported, "", "", "nil bean")
	}

	for rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Pointer {
		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, errs.New(errs.ErrUnsupported, rv.Type().String(), "", "nil pointer")
	}

	if t := rv.Type(); t.Kind() != reflect.Struct && (t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct) {
		return nil, errs.New(errs.ErrUnsupported, t.String(), "", "not a struct")
	}

	return &WrapBean{class: NewWrapClass(cache, rv.Type()), value: rv}, nil
}

// Class returns the bean's class.
func (b *WrapBean) Class() Class { return b.class }

// Value returns the wrapped value.
func (b *WrapBean) Value() any { return b.value.Interface() }

func (b *WrapBean) descriptor(name string) (*introspect.Descriptor, error) {
	d, ok := b.class.cache.Descriptor(b.class.typ, name)
	if !ok {
		return nil, noSuchProperty(b.class, name)
	}

	return d, nil
}

// Get reads name through its getter or field.
func (b *WrapBean) Get(name string) (any, error) {
	d, err := b.descriptor(name)
	if err != nil {
		return nil, err
	}

	if !d.Readable() {
		return nil, errs.New(errs.ErrAccess, b.class.Name(), name, "no read method")
	}

	v, err := d.Get(b.value)
	if err != nil {
		return nil, err
	}

	return introspect.Interface(v), nil
}

// Set writes name through its setter or field.
func (b *WrapBean) Set(name string, value any) error {
	d, err := b.descriptor(name)
	if err != nil {
		return err
	}

	if !d.Writable() {
		return errs.New(errs.ErrAccess, b.class.Name(), name, "no write method")
	}

	v, ok := introspect.Fit(value, d.Type)
	if !ok {
		return typeMismatch(b.class.Name(), name, value, d.Type)
	}

	return d.Set(b.value, v)
}

func (b *WrapBean) indexed(name string) (*introspect.Descriptor, error) {
	d, err := b.descriptor(name)
	if err != nil {
		return nil, err
	}

	if !d.IsIndexed() {
		return nil, errs.New(errs.ErrKindMismatch, b.class.Name(), name, "not an indexed property")
	}

	return d, nil
}

// GetIndexed reads element index through an indexed getter or from the
// slice or array value.
func (b *WrapBean) GetIndexed(name string, index int) (any, error) {
	d, err := b.indexed(name)
	if err != nil {
		return nil, err
	}

	v, err := d.GetIndexed(b.value, index)
	if err != nil {
		return nil, err
	}

	return introspect.Interface(v), nil
}

// SetIndexed writes element index through an indexed setter or into the
// slice or array value.
func (b *WrapBean) SetIndexed(name string, index int, value any) error {
	d, err := b.indexed(name)
	if err != nil {
		return err
	}

	v, ok := introspect.Fit(value, d.Elem())
	if !ok {
		return typeMismatch(b.class.Name(), fmt.Sprintf("%s[%d]", name, index), value, d.Elem())
	}

	return d.SetIndexed(b.value, index, v)
}

func (b *WrapBean) mapped(name string) (*introspect.Descriptor, error) {
	d, err := b.descriptor(name)
	if err != nil {
		return nil, err
	}

	if !d.IsMapped() {
		return nil, errs.New(errs.ErrKindMismatch, b.class.Name(), name, "not a mapped property")
	}

	return d, nil
}

// GetMapped reads entry key through a mapped getter or from the map value.
func (b *WrapBean) GetMapped(name, key string) (any, error) {
	d, err := b.mapped(name)
	if err != nil {
		return nil, err
	}

	v, err := d.GetMapped(b.value, key)
	if err != nil {
		return nil, err
	}

	return introspect.Interface(v), nil
}

// SetMapped writes entry key through a mapped setter or into the map value.
func (b *WrapBean) SetMapped(name, key string, value any) error {
	d, err := b.mapped(name)
	if err != nil {
		return err
	}

	v, ok := introspect.Fit(value, d.Elem())
	if !ok {
		return typeMismatch(b.class.Name(), fmt.Sprintf("%s(%s)", name, key), value, d.Elem())
	}

	return d.SetMapped(b.value, key, v)
}

// mapSlot returns the map behind name; accessor-only mapped properties have
// none and report errs.ErrUnsupported.
func (b *WrapBean) mapSlot(name string) (any, error) {
	d, err := b.mapped(name)
	if err != nil {
		return nil, err
	}

	if !d.Readable() || d.Type == nil || d.Type.Kind() != reflect.Map {
		return nil, errs.New(errs.ErrUnsupported, b.class.Name(), name, "no map behind mapped accessors")
	}

	v, err := d.Get(b.value)
	if err != nil {
		return nil, err
	}

	return v.Interface(), nil
}

// Contains reports whether the map behind name holds key.
func (b *WrapBean) Contains(name, key string) (bool, error) {
	m, err := b.mapSlot(name)
	if err != nil {
		return false, err
	}

	return mapContains(b.class.Name(), name, m, key)
}

// Remove deletes key from the map behind name.
func (b *WrapBean) Remove(name, key string) error {
	m, err := b.mapSlot(name)
	if err != nil {
		return err
	}

	return mapRemove(b.class.Name(), name, m, key)
}

// Addr returns a pointer to the struct held in field name.
func (b *WrapBean) Addr(name string) (any, bool) {
	d, ok := b.class.cache.Descriptor(b.class.typ, name)
	if !ok || d.Field == nil || d.Getter != "" {
		return nil, false
	}

	v, err := d.Get(b.value)
	if err != nil || v.Kind() != reflect.Struct || !v.CanAddr() {
		return nil, false
	}

	return v.Addr().Interface(), true
}

// AddrIndexed returns a pointer to the struct held at index of slice or
// array field name.
func (b *WrapBean) AddrIndexed(name string, index int) (any, bool) {
	d, ok := b.class.cache.Descriptor(b.class.typ, name)
	if !ok || d.IndexedGetter != "" || !d.Readable() {
		return nil, false
	}

	v, err := d.GetIndexed(b.value, index)
	if err != nil || v.Kind() != reflect.Struct || !v.CanAddr() {
		return nil, false
	}

	return v.Addr().Interface(), true
}

var (
	_ Bean      = (*WrapBean)(nil)
	_ Addresser = (*WrapBean)(nil)
)
