package dyna

import (
	"reflect"
)

// Property describes one slot of a Class.
type Property struct {
	// Name is unique within its class.
	Name string
	// Type is the declared type; nil means untyped.
	Type reflect.Type
	// ContentType is the element type of indexed and mapped properties when
	// it is narrower than Type.Elem(), nil when unknown.
	ContentType reflect.Type
	// ReadOnly forbids replacing the whole value.
	ReadOnly bool
	// WriteOnly forbids reading the whole value.
	WriteOnly bool
}

// NewProperty returns a readable and writable property.
func NewProperty(name string, t reflect.Type) *Property {
	return &Property{Name: name, Type: t}
}

// Readable reports whether Get may read the whole value.
func (p *Property) Readable() bool {
	return !p.WriteOnly
}

// Writable reports whether Set may replace the whole value.
func (p *Property) Writable() bool {
	return !p.ReadOnly
}

// IsIndexed reports whether the property holds a slice or array.
func (p *Property) IsIndexed() bool {
	if p.Type == nil {
		return false
	}

	k := p.Type.Kind()

	return k == reflect.Slice || k == reflect.Array
}

// IsMapped reports whether the property holds a map with string keys.
func (p *Property) IsMapped() bool {
	return p.Type != nil && p.Type.Kind() == reflect.Map && p.Type.Key().Kind() == reflect.String
}

// Elem returns the element type of an indexed or mapped property, or nil
// when unknown.
func (p *Property) Elem() reflect.Type {
	if p.ContentType != nil {
		return p.ContentType
	}

	if !p.IsIndexed() && !p.IsMapped() {
		return nil
	}

	if e := p.Type.Elem(); e.Kind() != reflect.Interface || e.NumMethod() > 0 {
		return e
	}

	return nil
}

func (p *Property) clone() *Property {
	c := *p
	return &c
}
