package dyna

import (
	"reflect"

	"beankit/errs"
)

// BasicBean stores values in a map and accepts only the properties of its
// class.
type BasicBean struct {
	class  Class
	values map[string]any
}

// NewBasicBean returns an empty bean of class c.
func NewBasicBean(c Class) *BasicBean {
	return &BasicBean{class: c, values: make(map[string]any)}
}

// Class returns the bean's class.
func (b *BasicBean) Class() Class { return b.class }

func (b *BasicBean) property(name string) (*Property, error) {
	p, ok := b.class.Property(name)
	if !ok {
		return nil, noSuchProperty(b.class, name)
	}

	return p, nil
}

// Get returns the value of name, or the zero value of its type when unset.
func (b *BasicBean) Get(name string) (any, error) {
	p, err := b.property(name)
	if err != nil {
		return nil, err
	}

	if !p.Readable() {
		return nil, errs.New(errs.ErrAccess, b.class.Name(), name, "property is write-only")
	}

	if v, ok := b.values[name]; ok && v != nil {
		return v, nil
	}

	return zeroOf(p.Type), nil
}

// Set replaces the value of name.
func (b *BasicBean) Set(name string, value any) error {
	p, err := b.property(name)
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

func (b *BasicBean) indexed(name string) (*Property, error) {
	p, err := b.property(name)
	if err != nil {
		return nil, err
	}

	if !p.IsIndexed() && p.Type != nil {
		return nil, errs.New(errs.ErrKindMismatch, b.class.Name(), name, "not an indexed property")
	}

	return p, nil
}

// GetIndexed returns element index of name.
func (b *BasicBean) GetIndexed(name string, index int) (any, error) {
	if _, err := b.indexed(name); err != nil {
		return nil, err
	}

	return indexGet(b.class.Name(), name, b.values[name], index)
}

// SetIndexed replaces element index of name. Containers are not grown.
func (b *BasicBean) SetIndexed(name string, index int, value any) error {
	if _, err := b.indexed(name); err != nil {
		return err
	}

	updated, err := indexSet(b.class.Name(), name, b.values[name], index, value)
	if err != nil {
		return err
	}

	b.values[name] = updated

	return nil
}

func (b *BasicBean) mapped(name string) (*Property, error) {
	p, err := b.property(name)
	if err != nil {
		return nil, err
	}

	if !p.IsMapped() && p.Type != nil {
		return nil, errs.New(errs.ErrKindMismatch, b.class.Name(), name, "not a mapped property")
	}

	return p, nil
}

// GetMapped returns entry key of name, nil when absent.
func (b *BasicBean) GetMapped(name, key string) (any, error) {
	if _, err := b.mapped(name); err != nil {
		return nil, err
	}

	return mapGet(b.class.Name(), name, b.values[name], key)
}

// SetMapped stores entry key of name, allocating the map on first use.
func (b *BasicBean) SetMapped(name, key string, value any) error {
	p, err := b.mapped(name)
	if err != nil {
		return err
	}

	m, err := mapValue(b.class.Name(), name, b.values[name])
	if err != nil {
		return err
	}

	if !m.IsValid() || m.IsNil() {
		t := p.Type
		if t == nil {
			t = reflect.TypeFor[map[string]any]()
		}

		m = reflect.MakeMap(t)
		b.values[name] = m.Interface()
	}

	return mapSet(b.class.Name(), name, m, key, value)
}

// Contains reports whether mapped property name holds key.
func (b *BasicBean) Contains(name, key string) (bool, error) {
	if _, err := b.mapped(name); err != nil {
		return false, err
	}

	return mapContains(b.class.Name(), name, b.values[name], key)
}

// Remove deletes key from mapped property name.
func (b *BasicBean) Remove(name, key string) error {
	if _, err := b.mapped(name); err != nil {
		return err
	}

	return mapRemove(b.class.Name(), name, b.values[name], key)
}

var _ Bean = (*BasicBean)(nil)
