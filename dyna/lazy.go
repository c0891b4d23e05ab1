package dyna

import (
	"reflect"

	"beankit/errs"
	"beankit/introspect"
)

var (
	untypedList = reflect.TypeFor[[]any]()
	untypedMap  = reflect.TypeFor[map[string]any]()
)

// LazyBean stores values in a map and grows its class on demand.
//
// Writing an undeclared name declares it, typed after the value (untyped for
// nil). Indexed and mapped access creates missing properties and containers
// and grows slices to reach the requested index. A restricted class turns
// every such declaration into errs.ErrRestricted.
type LazyBean struct {
	class  MutableClass
	values map[string]any
}

// NewLazy returns a bean with a fresh, unrestricted class.
func NewLazy() *LazyBean {
	c, _ := NewLazyClass("lazy")
	return NewLazyBean(c)
}

// NewLazyBean returns an empty bean of class c.
func NewLazyBean(c MutableClass) *LazyBean {
	return &LazyBean{class: c, values: make(map[string]any)}
}

// Class returns the bean's class.
func (b *LazyBean) Class() Class { return b.class }

// Extensible reports whether undeclared names are accepted.
func (b *LazyBean) Extensible() bool { return !b.class.IsRestricted() }

// Get returns the value of name. An undeclared name reads as nil; a declared
// but unset one is initialized with NewValue of its type.
func (b *LazyBean) Get(name string) (any, error) {
	p, ok := b.class.Property(name)
	if !ok {
		return nil, nil
	}

	if !p.Readable() {
		return nil, errs.New(errs.ErrAccess, b.class.Name(), name, "property is write-only")
	}

	if v, ok := b.values[name]; ok && v != nil {
		return v, nil
	}

	v := introspect.Interface(NewValue(p.Type))
	if v != nil {
		b.values[name] = v
	}

	return v, nil
}

// Set replaces the value of name, declaring it first if needed.
func (b *LazyBean) Set(name string, value any) error {
	p, err := b.declare(name, reflect.TypeOf(value))
	if err != nil {
		return err
	}

	if !p.Writable() {
		return errs.New(errs.ErrAccess, b.class.Name(), name, "property is read-only")
	}

	v, err := fit(b.class.Name(), name, value, p.Type)
	if err != nil {
		return err
	}

	b.values[name] = v

	return nil
}

// GetIndexed returns element index of name, growing the container as needed.
func (b *LazyBean) GetIndexed(name string, index int) (any, error) {
	container, err := b.growIndexed(name, untypedList, index)
	if err != nil {
		return nil, err
	}

	return introspect.Interface(container.Index(index)), nil
}

// SetIndexed replaces element index of name, growing the container as
// needed. An undeclared name becomes a slice of the value's type.
func (b *LazyBean) SetIndexed(name string, index int, value any) error {
	t := untypedList
	if value != nil {
		t = reflect.SliceOf(reflect.TypeOf(value))
	}

	container, err := b.growIndexed(name, t, index)
	if err != nil {
		return err
	}

	updated, err := indexSet(b.class.Name(), name, container.Interface(), index, value)
	if err != nil {
		return err
	}

	b.values[name] = updated

	return nil
}

// growIndexed walks the lazy indexed state machine: declare the property,
// create its container, grow it to hold index.
func (b *LazyBean) growIndexed(name string, declare reflect.Type, index int) (reflect.Value, error) {
	p, err := b.declare(name, declare)
	if err != nil {
		return reflect.Value{}, err
	}

	container, err := b.container(p, untypedList)
	if err != nil {
		return reflect.Value{}, err
	}

	if k := container.Kind(); k != reflect.Slice && k != reflect.Array {
		return reflect.Value{}, errs.New(errs.ErrKindMismatch, b.class.Name(), name, "not an indexed property")
	}

	grown, err := EnsureCapacity(container, index)
	if err != nil {
		return reflect.Value{}, errs.Wrap(errs.ErrIndexOutOfRange, b.class.Name(), name, err)
	}

	b.values[name] = grown.Interface()

	return grown, nil
}

// GetMapped returns entry key of name, nil when absent.
func (b *LazyBean) GetMapped(name, key string) (any, error) {
	p, err := b.declare(name, untypedMap)
	if err != nil {
		return nil, err
	}

	m, err := b.container(p, untypedMap)
	if err != nil {
		return nil, err
	}

	return mapGet(b.class.Name(), name, m.Interface(), key)
}

// SetMapped stores entry key of name. The first value written into an
// untyped mapped property narrows its content type.
func (b *LazyBean) SetMapped(name, key string, value any) error {
	p, err := b.declare(name, untypedMap)
	if err != nil {
		return err
	}

	m, err := b.container(p, untypedMap)
	if err != nil {
		return err
	}

	if m, err = mapValue(b.class.Name(), name, m.Interface()); err != nil {
		return err
	}

	if err := mapSet(b.class.Name(), name, m, key, value); err != nil {
		return err
	}

	if lc, ok := b.class.(*LazyClass); ok {
		lc.narrow(name, reflect.TypeOf(value))
	}

	return nil
}

// Contains reports whether mapped property name holds key. Undeclared and
// unset properties hold nothing.
func (b *LazyBean) Contains(name, key string) (bool, error) {
	if _, ok := b.class.Property(name); !ok {
		return false, nil
	}

	return mapContains(b.class.Name(), name, b.values[name], key)
}

// Remove deletes key from mapped property name.
func (b *LazyBean) Remove(name, key string) error {
	if _, ok := b.class.Property(name); !ok {
		return nil
	}

	return mapRemove(b.class.Name(), name, b.values[name], key)
}

// declare returns the property called name, adding it with type t when
// undeclared.
func (b *LazyBean) declare(name string, t reflect.Type) (*Property, error) {
	if p, ok := b.class.Property(name); ok {
		return p, nil
	}

	if b.class.IsRestricted() {
		return nil, errs.New(errs.ErrRestricted, b.class.Name(), name, "cannot add property")
	}

	if err := b.class.Add(name, t); err != nil {
		return nil, err
	}

	p, ok := b.class.Property(name)
	if !ok {
		return nil, noSuchProperty(b.class, name)
	}

	return p, nil
}

// container returns the current value of p, creating the default container
// when unset. fallback types untyped properties.
func (b *LazyBean) container(p *Property, fallback reflect.Type) (reflect.Value, error) {
	if v, ok := b.values[p.Name]; ok && v != nil {
		return reflect.ValueOf(v), nil
	}

	t := p.Type
	if t == nil {
		t = fallback
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
	default:
		return reflect.Value{}, errs.New(errs.ErrKindMismatch, b.class.Name(), p.Name, "not an indexed or mapped property")
	}

	v := NewValue(t)
	b.values[p.Name] = v.Interface()

	return v, nil
}

var (
	_ Bean       = (*LazyBean)(nil)
	_ Extensible = (*LazyBean)(nil)
)
