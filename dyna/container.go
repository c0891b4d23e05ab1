package dyna

import (
	"fmt"
	"reflect"

	"beankit/errs"
	"beankit/introspect"
)

var beanType = reflect.TypeFor[Bean]()

// EnsureCapacity returns container grown so that index is addressable.
// Slices grow to index+1 with new slots filled by NewValue of the element
// type; they never shrink. Arrays cannot grow and report
// errs.ErrIndexOutOfRange. Both the read and the write path of LazyBean go
// through here.
func EnsureCapacity(container reflect.Value, index int) (reflect.Value, error) {
	if index < 0 {
		return container, fmt.Errorf("%w: negative index %d", errs.ErrIndexOutOfRange, index)
	}

	switch container.Kind() {
	case reflect.Slice:
		n := container.Len()
		if index < n {
			return container, nil
		}

		grown := reflect.MakeSlice(container.Type(), index+1, index+1)
		reflect.Copy(grown, container)

		elem := container.Type().Elem()
		for i := n; i <= index; i++ {
			if v := NewValue(elem); v.IsValid() {
				grown.Index(i).Set(v)
			}
		}

		return grown, nil
	case reflect.Array:
		if index >= container.Len() {
			return container, fmt.Errorf("%w: index %d, array length %d", errs.ErrIndexOutOfRange, index, container.Len())
		}

		return container, nil
	default:
		return container, fmt.Errorf("%w: %s is not indexed", errs.ErrKindMismatch, container.Type())
	}
}

// NewValue returns the default a lazy bean creates for a slot of type t:
// empty slices and maps, a new LazyBean for Bean slots, a pointer to a new
// struct for pointer-to-struct slots and the zero value otherwise. It
// returns the invalid Value for a nil t.
func NewValue(t reflect.Type) reflect.Value {
	if t == nil {
		return reflect.Value{}
	}

	switch {
	case t == beanType:
		v := reflect.New(beanType).Elem()
		v.Set(reflect.ValueOf(NewLazy()))

		return v
	case t.Kind() == reflect.Slice:
		return reflect.MakeSlice(t, 0, 0)
	case t.Kind() == reflect.Map:
		return reflect.MakeMap(t)
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		return reflect.New(t.Elem())
	default:
		return reflect.Zero(t)
	}
}

func indexGet(bean, name string, container any, index int) (any, error) {
	rv := reflect.ValueOf(container)
	if err := checkIndex(bean, name, rv, index); err != nil {
		return nil, err
	}

	return introspect.Interface(rv.Index(index)), nil
}

// indexSet stores value at index and returns the container to keep: the
// same slice, or a modified copy of an array.
func indexSet(bean, name string, container any, index int, value any) (any, error) {
	rv := reflect.ValueOf(container)
	if err := checkIndex(bean, name, rv, index); err != nil {
		return nil, err
	}

	elem, ok := introspect.Fit(value, rv.Type().Elem())
	if !ok {
		return nil, typeMismatch(bean, fmt.Sprintf("%s[%d]", name, index), value, rv.Type().Elem())
	}

	if rv.Kind() == reflect.Array {
		cp := reflect.New(rv.Type()).Elem()
		cp.Set(rv)
		rv = cp
	}

	rv.Index(index).Set(elem)

	return rv.Interface(), nil
}

func checkIndex(bean, name string, rv reflect.Value, index int) error {
	if !rv.IsValid() {
		return errs.New(errs.ErrIndexOutOfRange, bean, name, "no indexed value")
	}

	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return errs.New(errs.ErrKindMismatch, bean, name, "not an indexed property")
	}

	if index < 0 || index >= rv.Len() {
		return errs.New(errs.ErrIndexOutOfRange, bean, name, fmt.Sprintf("index %d, length %d", index, rv.Len()))
	}

	return nil
}

func mapValue(bean, name string, container any) (reflect.Value, error) {
	rv := reflect.ValueOf(container)
	if !rv.IsValid() {
		return rv, nil
	}

	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return reflect.Value{}, errs.New(errs.ErrKindMismatch, bean, name, "not a mapped property")
	}

	return rv, nil
}

func mapKey(m reflect.Value, key string) reflect.Value {
	return reflect.ValueOf(key).Convert(m.Type().Key())
}

func mapGet(bean, name string, container any, key string) (any, error) {
	m, err := mapValue(bean, name, container)
	if err != nil || !m.IsValid() || m.IsNil() {
		return nil, err
	}

	return introspect.Interface(m.MapIndex(mapKey(m, key))), nil
}

func mapSet(bean, name string, m reflect.Value, key string, value any) error {
	v, ok := introspect.Fit(value, m.Type().Elem())
	if !ok {
		return typeMismatch(bean, fmt.Sprintf("%s(%s)", name, key), value, m.Type().Elem())
	}

	m.SetMapIndex(mapKey(m, key), v)

	return nil
}

func mapContains(bean, name string, container any, key string) (bool, error) {
	m, err := mapValue(bean, name, container)
	if err != nil || !m.IsValid() || m.IsNil() {
		return false, err
	}

	return m.MapIndex(mapKey(m, key)).IsValid(), nil
}

func mapRemove(bean, name string, container any, key string) error {
	m, err := mapValue(bean, name, container)
	if err != nil || !m.IsValid() || m.IsNil() {
		return err
	}

	m.SetMapIndex(mapKey(m, key), reflect.Value{})

	return nil
}
