package dyna

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"beankit/errs"
)

// ErrDuplicateProperty reports two properties of the same name in one class.
var ErrDuplicateProperty = errors.New("duplicate property")

// Class describes the properties available on a family of beans.
type Class interface {
	Name() string
	// Property returns the property called name.
	Property(name string) (*Property, bool)
	// Properties returns every property in declaration order.
	Properties() []*Property
	NewInstance() (Bean, error)
}

// MutableClass is a Class whose property set can change until it is
// restricted.
type MutableClass interface {
	Class
	Add(name string, t reflect.Type) error
	AddProperty(p *Property) error
	Remove(name string) error
	IsRestricted() bool
	SetRestricted(restricted bool)
}

// propertySet keeps properties by name in declaration order.
type propertySet struct {
	order  []string
	byName map[string]*Property
}

func newPropertySet(props []*Property) (propertySet, error) {
	s := propertySet{byName: make(map[string]*Property, len(props))}

	for _, p := range props {
		if p == nil || p.Name == "" {
			return propertySet{}, fmt.Errorf("property without a name")
		}

		if _, dup := s.byName[p.Name]; dup {
			return propertySet{}, fmt.Errorf("%w %q", ErrDuplicateProperty, p.Name)
		}

		s.put(p.clone())
	}

	return s, nil
}

func (s *propertySet) get(name string) (*Property, bool) {
	p, ok := s.byName[name]
	return p, ok
}

func (s *propertySet) put(p *Property) {
	if _, ok := s.byName[p.Name]; !ok {
		s.order = append(s.order, p.Name)
	}

	s.byName[p.Name] = p
}

func (s *propertySet) remove(name string) {
	delete(s.byName, name)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })
}

func (s *propertySet) list() []*Property {
	out := make([]*Property, len(s.order))
	for i, name := range s.order {
		out[i] = s.byName[name]
	}

	return out
}

func (s *propertySet) names() []string {
	return slices.Clone(s.order)
}

// BasicClass is an immutable class whose instances are BasicBeans.
type BasicClass struct {
	name  string
	props propertySet
}

// NewBasicClass builds a fixed class from props.
func NewBasicClass(name string, props ...*Property) (*BasicClass, error) {
	set, err := newPropertySet(props)
	if err != nil {
		return nil, fmt.Errorf("class %s: %w", name, err)
	}

	return &BasicClass{name: name, props: set}, nil
}

// Name returns the class name.
func (c *BasicClass) Name() string { return c.name }

// Property returns the property called name.
func (c *BasicClass) Property(name string) (*Property, bool) { return c.props.get(name) }

// Properties returns the properties in declaration order.
func (c *BasicClass) Properties() []*Property { return c.props.list() }

// NewInstance returns an empty BasicBean of this class.
func (c *BasicClass) NewInstance() (Bean, error) {
	return NewBasicBean(c), nil
}

// LazyClass is a mutable class whose instances are LazyBeans. Once
// restricted, structural changes fail with errs.ErrRestricted.
type LazyClass struct {
	name       string
	props      propertySet
	restricted bool
}

// NewLazyClass builds a mutable class seeded with props.
func NewLazyClass(name string, props ...*Property) (*LazyClass, error) {
	set, err := newPropertySet(props)
	if err != nil {
		return nil, fmt.Errorf("class %s: %w", name, err)
	}

	return &LazyClass{name: name, props: set}, nil
}

// Name returns the class name.
func (c *LazyClass) Name() string { return c.name }

// Property returns the property called name.
func (c *LazyClass) Property(name string) (*Property, bool) { return c.props.get(name) }

// Properties returns the properties in the order they were added.
func (c *LazyClass) Properties() []*Property { return c.props.list() }

// NewInstance returns an empty LazyBean of this class.
func (c *LazyClass) NewInstance() (Bean, error) {
	return NewLazyBean(c), nil
}

// IsRestricted reports whether structural changes are refused.
func (c *LazyClass) IsRestricted() bool { return c.restricted }

// SetRestricted freezes or thaws the property set.
func (c *LazyClass) SetRestricted(restricted bool) { c.restricted = restricted }

// Add declares a property of type t (nil for untyped). Adding an existing
// name is a no-op.
func (c *LazyClass) Add(name string, t reflect.Type) error {
	return c.AddProperty(NewProperty(name, t))
}

// AddProperty declares p. Adding an existing name is a no-op.
func (c *LazyClass) AddProperty(p *Property) error {
	if p == nil || p.Name == "" {
		return errs.New(errs.ErrNoSuchProperty, c.name, "", "property without a name")
	}

	if c.restricted {
		return errs.New(errs.ErrRestricted, c.name, p.Name, "cannot add property")
	}

	if _, ok := c.props.get(p.Name); ok {
		return nil
	}

	c.props.put(p.clone())

	return nil
}

// Remove drops the property called name. Removing an absent name is a no-op.
func (c *LazyClass) Remove(name string) error {
	if c.restricted {
		return errs.New(errs.ErrRestricted, c.name, name, "cannot remove property")
	}

	c.props.remove(name)

	return nil
}

// narrow records the content type observed by the first write into an
// untyped mapped or indexed property.
func (c *LazyClass) narrow(name string, t reflect.Type) {
	p, ok := c.props.get(name)
	if !ok || p.Elem() != nil || t == nil {
		return
	}

	n := p.clone()
	n.ContentType = t
	c.props.put(n)
}

var (
	_ Class        = (*BasicClass)(nil)
	_ MutableClass = (*LazyClass)(nil)
)
