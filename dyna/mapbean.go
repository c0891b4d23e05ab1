package dyna

import (
	"reflect"
	"slices"

	"beankit/errs"
	"beankit/introspect"
)

// MapBean treats a map with string keys as a bean: keys are property names.
// Absent keys read as nil and writes add keys, so the class is a snapshot
// of the keys present when it is asked for.
type MapBean struct {
	value reflect.Value // the map, or a pointer to it
}

// NewMapBean wraps m, a map with string-kind keys or a pointer to one.
func NewMapBean(m any) (*MapBean, error) {
	rv := reflect.ValueOf(m)
	if !rv.IsValid() {
		return nil, errs.New(errs.ErrUnsupported, "", "", "nil bean")
	}

	t := rv.Type()

	if t.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, errs.New(errs.ErrUnsupported, t.String(), "", "nil pointer")
		}

		t = t.Elem()
	}

	if t.Kind() != reflect.Map || t.Key().Kind() != reflect.String {
		return nil, errs.New(errs.ErrUnsupported, t.String(), "", "not a map with string keys")
	}

	return &MapBean{value: rv}, nil
}

// Map returns the wrapped map.
func (b *MapBean) Map() any { return b.value.Interface() }

func (b *MapBean) m() reflect.Value {
	if b.value.Kind() == reflect.Pointer {
		return b.value.Elem()
	}

	return b.value
}

func (b *MapBean) name() string { return b.m().Type().String() }

// Class returns a snapshot class listing the current keys in sorted order.
func (b *MapBean) Class() Class {
	m := b.m()

	keys := make([]string, 0, m.Len())
	for _, k := range m.MapKeys() {
		keys = append(keys, k.String())
	}

	slices.Sort(keys)

	props := make([]*Property, len(keys))
	for i, k := range keys {
		t := m.Type().Elem()
		if v := m.MapIndex(mapKey(m, k)); t.Kind() == reflect.Interface && !v.IsNil() {
			t = v.Elem().Type()
		}

		props[i] = NewProperty(k, t)
	}

	c, _ := NewBasicClass(b.name(), props...)

	return &mapClass{BasicClass: c, typ: m.Type()}
}

type mapClass struct {
	*BasicClass
	typ reflect.Type
}

// NewInstance wraps a new empty map of the same type.
func (c *mapClass) NewInstance() (Bean, error) {
	return NewMapBean(reflect.MakeMap(c.typ).Interface())
}

// Extensible reports true: writes add keys.
func (b *MapBean) Extensible() bool { return true }

// Get returns the value stored under name, nil when absent.
func (b *MapBean) Get(name string) (any, error) {
	m := b.m()
	if m.IsNil() {
		return nil, nil
	}

	return introspect.Interface(m.MapIndex(mapKey(m, name))), nil
}

// Set stores value under name. A nil map is allocated when held through a
// pointer.
func (b *MapBean) Set(name string, value any) error {
	m := b.m()
	if m.IsNil() {
		if !m.CanSet() {
			return errs.New(errs.ErrAccess, b.name(), name, "nil map")
		}

		m.Set(reflect.MakeMap(m.Type()))
	}

	return mapSet(b.name(), name, m, name, value)
}

// GetIndexed indexes the slice or array stored under name.
func (b *MapBean) GetIndexed(name string, index int) (any, error) {
	v, err := b.Get(name)
	if err != nil {
		return nil, err
	}

	return indexGet(b.name(), name, v, index)
}

// SetIndexed replaces an element of the slice or array stored under name.
func (b *MapBean) SetIndexed(name string, index int, value any) error {
	v, err := b.Get(name)
	if err != nil {
		return err
	}

	updated, err := indexSet(b.name(), name, v, index, value)
	if err != nil {
		return err
	}

	if reflect.TypeOf(updated).Kind() == reflect.Array {
		return b.Set(name, updated)
	}

	return nil
}

// GetMapped reads key from the map stored under name.
func (b *MapBean) GetMapped(name, key string) (any, error) {
	v, err := b.Get(name)
	if err != nil {
		return nil, err
	}

	return mapGet(b.name(), name, v, key)
}

// SetMapped writes key into the map stored under name, creating a
// map[string]any when the entry is absent.
func (b *MapBean) SetMapped(name, key string, value any) error {
	v, err := b.Get(name)
	if err != nil {
		return err
	}

	if v == nil {
		v = map[string]any{}
		if err := b.Set(name, v); err != nil {
			return err
		}
	}

	inner, err := mapValue(b.name(), name, v)
	if err != nil {
		return err
	}

	return mapSet(b.name(), name, inner, key, value)
}

// Contains reports whether the map stored under name holds key.
func (b *MapBean) Contains(name, key string) (bool, error) {
	v, err := b.Get(name)
	if err != nil {
		return false, err
	}

	return mapContains(b.name(), name, v, key)
}

// Remove deletes key from the map stored under name.
func (b *MapBean) Remove(name, key string) error {
	v, err := b.Get(name)
	if err != nil {
		return err
	}

	return mapRemove(b.name(), name, v, key)
}

var (
	_ Bean       = (*MapBean)(nil)
	_ Extensible = (*MapBean)(nil)
)
