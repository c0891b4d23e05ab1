package dyna

import (
	"fmt"
	"reflect"

	"beankit/errs"
	"beankit/internal/match"
	"beankit/introspect"
)

// Bean holds the property values of one instance.
//
// Reads of a declared but unset property return the zero value of its type,
// or nil for nilable and untyped properties. Writes are checked against the
// declared type (see introspect.Fit).
type Bean interface {
	Class() Class

	Get(name string) (any, error)
	GetIndexed(name string, index int) (any, error)
	GetMapped(name, key string) (any, error)

	Set(name string, value any) error
	SetIndexed(name string, index int, value any) error
	SetMapped(name, key string, value any) error

	// Contains reports whether mapped property name holds key.
	Contains(name, key string) (bool, error)
	// Remove deletes key from mapped property name.
	Remove(name, key string) error
}

// Extensible is implemented by beans that accept writes to undeclared names.
type Extensible interface {
	Extensible() bool
}

// Addresser is implemented by beans that can return pointers to their
// struct-valued slots, so nested writes land in the original value rather
// than a copy.
type Addresser interface {
	Addr(name string) (any, bool)
	AddrIndexed(name string, index int) (any, bool)
}

// Wrap returns v as a Bean: beans unchanged, maps with string keys as a
// MapBean, structs and pointers to structs as a WrapBean backed by a shared
// introspection cache.
func Wrap(v any) (Bean, error) {
	return WrapWith(sharedCache, v)
}

var sharedCache = introspect.NewCache()

// WrapWith is Wrap with an explicit introspection cache.
func WrapWith(cache *introspect.Cache, v any) (Bean, error) {
	if b, ok := v.(Bean); ok {
		return b, nil
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, errs.New(errs.ErrUnsupported, "", "", "nil bean")
	}

	t := rv.Type()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch {
	case t.Kind() == reflect.Map && t.Key().Kind() == reflect.String:
		return NewMapBean(v)
	case t.Kind() == reflect.Struct:
		return NewWrapBean(cache, v)
	default:
		return nil, errs.New(errs.ErrUnsupported, rv.Type().String(), "", "not a bean")
	}
}

func className(b Bean) string {
	if c := b.Class(); c != nil {
		return c.Name()
	}

	return ""
}

func propertyNames(c Class) []string {
	props := c.Properties()

	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.Name
	}

	return names
}

func noSuchProperty(c Class, name string) error {
	e := errs.New(errs.ErrNoSuchProperty, c.Name(), name, "")
	e.Suggestions = match.Suggest(name, propertyNames(c))

	return e
}

func typeMismatch(bean, name string, value any, t reflect.Type) error {
	return errs.New(errs.ErrTypeMismatch, bean, name, fmt.Sprintf("%T is not assignable to %s", value, t))
}

// zeroOf returns the value read from an unset slot of type t.
func zeroOf(t reflect.Type) any {
	if t == nil || introspect.Nilable(t) {
		return nil
	}

	return reflect.Zero(t).Interface()
}

// fit checks value against t and returns it as t.
func fit(bean, name string, value any, t reflect.Type) (any, error) {
	rv, ok := introspect.Fit(value, t)
	if !ok {
		return nil, typeMismatch(bean, name, value, t)
	}

	return introspect.Interface(rv), nil
}
