package introspect

import (
	"reflect"
)

// Descriptor describes one property of a reflected type.
//
// Accessor methods are recorded by name rather than as reflect.Method values
// and are resolved against the live receiver on every call, so a descriptor
// stays valid for any value of its type.
type Descriptor struct {
	// Name is the property name used in expressions.
	Name string
	// Type is the declared type; nil when only indexed or mapped accessors exist.
	Type reflect.Type
	// ElemType is the component type for indexed and mapped access.
	ElemType reflect.Type
	// Field is the index path of the backing exported field (nil if none).
	Field []int
	// ReadOnly disables writes through Field (tag option "readonly").
	ReadOnly bool

	Getter        string // GetX() T  or  IsX() bool
	Setter        string // SetX(T)
	IndexedGetter string // GetX(int) T
	IndexedSetter string // SetX(int, T)
	MappedGetter  string // GetX(string) T
	MappedSetter  string // SetX(string, T)
}

// Readable reports whether the whole property value can be read.
func (d *Descriptor) Readable() bool {
	return d.Getter != "" || d.Field != nil
}

// Writable reports whether the whole property value can be replaced.
func (d *Descriptor) Writable() bool {
	return d.Setter != "" || (d.Field != nil && !d.ReadOnly)
}

// IsIndexed reports whether the property supports name[i] access.
func (d *Descriptor) IsIndexed() bool {
	if d.IndexedGetter != "" || d.IndexedSetter != "" {
		return true
	}

	return d.Type != nil && (d.Type.Kind() == reflect.Slice || d.Type.Kind() == reflect.Array)
}

// IsMapped reports whether the property supports name(key) access.
func (d *Descriptor) IsMapped() bool {
	if d.MappedGetter != "" || d.MappedSetter != "" {
		return true
	}

	return d.Type != nil && d.Type.Kind() == reflect.Map && d.Type.Key().Kind() == reflect.String
}

// Elem returns the component type used by indexed and mapped access.
func (d *Descriptor) Elem() reflect.Type {
	if d.ElemType != nil {
		return d.ElemType
	}

	if d.Type == nil {
		return nil
	}

	switch d.Type.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return d.Type.Elem()
	default:
		return nil
	}
}

func (d *Descriptor) clone() *Descriptor {
	c := *d
	if d.Field != nil {
		c.Field = append([]int(nil), d.Field...)
	}

	return &c
}
