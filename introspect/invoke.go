package introspect

import (
	"fmt"
	"reflect"

	"beankit/errs"
)

// Get reads the whole property value from bean, a struct or pointer to struct.
func (d *Descriptor) Get(bean reflect.Value) (reflect.Value, error) {
	v, err := d.target(bean)
	if err != nil {
		return reflect.Value{}, err
	}

	if d.Getter != "" {
		return d.call(v, d.Getter, false)
	}

	if d.Field == nil {
		return reflect.Value{}, d.err(errs.ErrAccess, v, "no read method")
	}

	f, err := v.FieldByIndexErr(d.Field)
	if err != nil {
		return reflect.Value{}, d.wrap(errs.ErrAccess, v, err)
	}

	return f, nil
}

// Set replaces the property value on bean. value must already fit d.Type
// (see Fit).
func (d *Descriptor) Set(bean, value reflect.Value) error {
	v, err := d.target(bean)
	if err != nil {
		return err
	}

	if d.Setter != "" {
		_, err = d.call(v, d.Setter, true, value)
		return err
	}

	if d.Field == nil || d.ReadOnly {
		return d.err(errs.ErrAccess, v, "no write method")
	}

	f, err := d.settableField(v)
	if err != nil {
		return err
	}

	f.Set(value)

	return nil
}

// GetIndexed reads element i of an indexed property.
func (d *Descriptor) GetIndexed(bean reflect.Value, i int) (reflect.Value, error) {
	v, err := d.target(bean)
	if err != nil {
		return reflect.Value{}, err
	}

	if d.IndexedGetter != "" {
		return d.call(v, d.IndexedGetter, false, reflect.ValueOf(i))
	}

	whole, err := d.indexable(v)
	if err != nil {
		return reflect.Value{}, err
	}

	if i < 0 || i >= whole.Len() {
		return reflect.Value{}, d.err(errs.ErrIndexOutOfRange, v, fmt.Sprintf("index %d, length %d", i, whole.Len()))
	}

	return whole.Index(i), nil
}

// SetIndexed writes element i of an indexed property. Slices and arrays are
// never grown.
func (d *Descriptor) SetIndexed(bean reflect.Value, i int, value reflect.Value) error {
	v, err := d.target(bean)
	if err != nil {
		return err
	}

	if d.IndexedSetter != "" {
		_, err = d.call(v, d.IndexedSetter, true, reflect.ValueOf(i), value)
		return err
	}

	whole, err := d.indexable(v)
	if err != nil {
		return err
	}

	if i < 0 || i >= whole.Len() {
		return d.err(errs.ErrIndexOutOfRange, v, fmt.Sprintf("index %d, length %d", i, whole.Len()))
	}

	elem := whole.Index(i)
	if !elem.CanSet() {
		return d.err(errs.ErrAccess, v, "array element is not addressable")
	}

	elem.Set(value)

	return nil
}

// GetMapped reads entry key of a mapped property. A missing entry yields an
// invalid Value.
func (d *Descriptor) GetMapped(bean reflect.Value, key string) (reflect.Value, error) {
	v, err := d.target(bean)
	if err != nil {
		return reflect.Value{}, err
	}

	if d.MappedGetter != "" {
		return d.call(v, d.MappedGetter, false, d.keyValue(d.MappedGetter, v, key))
	}

	m, err := d.mappable(v)
	if err != nil {
		return reflect.Value{}, err
	}

	if m.IsNil() {
		return reflect.Value{}, nil
	}

	return m.MapIndex(reflect.ValueOf(key).Convert(m.Type().Key())), nil
}

// SetMapped writes entry key of a mapped property, allocating a nil map
// held in a settable field.
func (d *Descriptor) SetMapped(bean reflect.Value, key string, value reflect.Value) error {
	v, err := d.target(bean)
	if err != nil {
		return err
	}

	if d.MappedSetter != "" {
		_, err = d.call(v, d.MappedSetter, true, d.keyValue(d.MappedSetter, v, key), value)
		return err
	}

	m, err := d.mappable(v)
	if err != nil {
		return err
	}

	if m.IsNil() {
		if d.Field == nil || d.Getter != "" {
			return d.err(errs.ErrAccess, v, "nil map")
		}

		f, err := d.settableField(v)
		if err != nil {
			return err
		}

		f.Set(reflect.MakeMap(f.Type()))
		m = f
	}

	m.SetMapIndex(reflect.ValueOf(key).Convert(m.Type().Key()), value)

	return nil
}

// Fit adapts value to t: values assignable to t pass unchanged, values of the
// same kind are converted (named and underlying types), nil fits nilable
// types only. A nil t accepts anything.
func Fit(value any, t reflect.Type) (reflect.Value, bool) {
	if t == nil {
		return reflect.ValueOf(value), true
	}

	if value == nil {
		if !Nilable(t) {
			return reflect.Value{}, false
		}

		return reflect.Zero(t), true
	}

	rv := reflect.ValueOf(value)

	switch {
	case rv.Type().AssignableTo(t):
		if t.Kind() == reflect.Interface {
			out := reflect.New(t).Elem()
			out.Set(rv)

			return out, true
		}

		return rv, true
	case rv.Kind() == t.Kind() && rv.Type().ConvertibleTo(t):
		return rv.Convert(t), true
	default:
		return reflect.Value{}, false
	}
}

// Nilable reports whether nil is a valid value of t.
func Nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

// Interface returns v as an untyped value; invalid values and nil references
// become nil.
func Interface(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}

	if Nilable(v.Type()) && v.IsNil() {
		return nil
	}

	return v.Interface()
}

func (d *Descriptor) target(bean reflect.Value) (reflect.Value, error) {
	for bean.Kind() == reflect.Pointer || bean.Kind() == reflect.Interface {
		if bean.IsNil() {
			return reflect.Value{}, errs.New(errs.ErrAccess, "", d.Name, "nil bean")
		}

		bean = bean.Elem()
	}

	return bean, nil
}

func (d *Descriptor) settableField(v reflect.Value) (reflect.Value, error) {
	if !v.CanAddr() {
		return reflect.Value{}, d.err(errs.ErrAccess, v, "bean is not addressable")
	}

	f, err := v.FieldByIndexErr(d.Field)
	if err != nil {
		return reflect.Value{}, d.wrap(errs.ErrAccess, v, err)
	}

	if !f.CanSet() {
		return reflect.Value{}, d.err(errs.ErrAccess, v, "field is not settable")
	}

	return f, nil
}

func (d *Descriptor) indexable(v reflect.Value) (reflect.Value, error) {
	if !d.Readable() || d.Type == nil {
		return reflect.Value{}, d.err(errs.ErrKindMismatch, v, "not an indexed property")
	}

	switch d.Type.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return reflect.Value{}, d.err(errs.ErrKindMismatch, v, "not an indexed property")
	}

	return d.Get(v)
}

func (d *Descriptor) mappable(v reflect.Value) (reflect.Value, error) {
	if !d.Readable() || d.Type == nil || d.Type.Kind() != reflect.Map || d.Type.Key().Kind() != reflect.String {
		return reflect.Value{}, d.err(errs.ErrKindMismatch, v, "not a mapped property")
	}

	return d.Get(v)
}

// keyValue converts key to the declared parameter type of a mapped accessor.
func (d *Descriptor) keyValue(method string, v reflect.Value, key string) reflect.Value {
	m := d.method(v, method, false)

	if !m.IsValid() {
		return reflect.ValueOf(key)
	}

	return reflect.ValueOf(key).Convert(m.Type().In(0))
}

// call invokes an accessor. Pointer-receiver methods on a non-addressable
// bean are read from a copy; writes through such a copy are refused.
func (d *Descriptor) call(v reflect.Value, name string, write bool, args ...reflect.Value) (reflect.Value, error) {
	m := d.method(v, name, write)
	if !m.IsValid() {
		return reflect.Value{}, d.err(errs.ErrAccess, v, "method "+name+" not callable")
	}

	out := m.Call(args)

	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if err, _ := out[n-1].Interface().(error); err != nil {
			return reflect.Value{}, d.wrap(errs.ErrInvocation, v, err)
		}

		out = out[:n-1]
	}

	if len(out) == 0 {
		return reflect.Value{}, nil
	}

	return out[0], nil
}

func (d *Descriptor) method(v reflect.Value, name string, write bool) reflect.Value {
	if v.CanAddr() {
		return v.Addr().MethodByName(name)
	}

	if m := v.MethodByName(name); m.IsValid() {
		return m
	}

	if write {
		return reflect.Value{}
	}

	cp := reflect.New(v.Type()).Elem()
	cp.Set(v)

	return cp.Addr().MethodByName(name)
}

func (d *Descriptor) err(kind error, v reflect.Value, msg string) error {
	return errs.New(kind, beanName(v), d.Name, msg)
}

func (d *Descriptor) wrap(kind error, v reflect.Value, cause error) error {
	return errs.Wrap(kind, beanName(v), d.Name, cause)
}

func beanName(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}

	return v.Type().String()
}
