package introspect

import (
	"reflect"
	"slices"
	"strings"

	"beankit/internal/naming"
)

// TagName is the struct tag consulted by FieldIntrospector:
//
//	Street string `bean:"street"`
//	Secret string `bean:"-"`
//	ID     int    `bean:"id,readonly"`
const TagName = "bean"

var (
	errorType = reflect.TypeFor[error]()
	intType   = reflect.TypeFor[int]()
)

// Context collects the descriptors of one type while the introspector chain
// runs. Later introspectors see, replace and remove what earlier ones added.
type Context struct {
	typ         reflect.Type
	descriptors map[string]*Descriptor
	order       []string
}

func newContext(t reflect.Type) *Context {
	return &Context{typ: t, descriptors: make(map[string]*Descriptor)}
}

// Type returns the struct (or other named) type being introspected.
func (c *Context) Type() reflect.Type {
	return c.typ
}

// Add stores d, replacing any descriptor of the same name.
func (c *Context) Add(d *Descriptor) {
	if _, ok := c.descriptors[d.Name]; !ok {
		c.order = append(c.order, d.Name)
	}

	c.descriptors[d.Name] = d
}

// Get returns the descriptor called name, or nil.
func (c *Context) Get(name string) *Descriptor {
	return c.descriptors[name]
}

// Has reports whether a descriptor called name exists.
func (c *Context) Has(name string) bool {
	_, ok := c.descriptors[name]
	return ok
}

// Remove drops the descriptor called name.
func (c *Context) Remove(name string) {
	if _, ok := c.descriptors[name]; !ok {
		return
	}

	delete(c.descriptors, name)
	c.order = slices.DeleteFunc(c.order, func(n string) bool { return n == name })
}

// Names returns descriptor names in the order they were first added.
func (c *Context) Names() []string {
	return slices.Clone(c.order)
}

func (c *Context) result() []*Descriptor {
	out := make([]*Descriptor, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.descriptors[name])
	}

	return out
}

// getOrNew returns the descriptor called name, creating an empty one.
func (c *Context) getOrNew(name string) *Descriptor {
	if d := c.descriptors[name]; d != nil {
		return d
	}

	d := &Descriptor{Name: name}
	c.Add(d)

	return d
}

// Introspector contributes descriptors for a type.
type Introspector interface {
	Introspect(ctx *Context) error
}

// FieldIntrospector exposes exported struct fields, promoted fields included.
// The property name comes from the "bean" tag or the decapitalized field name.
type FieldIntrospector struct{}

// Introspect implements Introspector.
func (FieldIntrospector) Introspect(ctx *Context) error {
	t := ctx.Type()
	if t.Kind() != reflect.Struct {
		return nil
	}

	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}

		// skip fields hidden by a shallower one or ambiguous at the same depth
		if visible, ok := t.FieldByName(f.Name); !ok || !slices.Equal(visible.Index, f.Index) {
			continue
		}

		name, readOnly, skip := ParseTag(f.Tag, f.Name)
		if skip {
			continue
		}

		ctx.Add(&Descriptor{
			Name:     name,
			Type:     f.Type,
			Field:    slices.Clone(f.Index),
			ReadOnly: readOnly,
		})
	}

	return nil
}

// ParseTag returns the property name of a field with the given tag and Go
// name, whether it is read-only, and whether it is hidden.
func ParseTag(st reflect.StructTag, field string) (name string, readOnly, skip bool) {
	tag, ok := st.Lookup(TagName)
	if !ok {
		return naming.Decapitalize(field), false, false
	}

	if tag == "-" {
		return "", false, true
	}

	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = naming.Decapitalize(field)
	}

	for opt := range strings.SplitSeq(opts, ",") {
		if opt == "readonly" {
			readOnly = true
		}
	}

	return name, readOnly, false
}

// AccessorIntrospector exposes Get/Is/Set method families:
//
//	GetX() T, GetX() (T, error), IsX() bool   getter
//	SetX(T), SetX(T) error                    setter
//	GetX(int) T, SetX(int, T)                 indexed pair
//	GetX(string) T, SetX(string, T)           mapped pair
//
// Methods are looked up on the pointer method set. Accessors are merged into
// a field descriptor of the same name and take precedence over it.
type AccessorIntrospector struct{}

// Introspect implements Introspector.
func (AccessorIntrospector) Introspect(ctx *Context) error {
	pt := reflect.PointerTo(ctx.Type())

	// getters first so setters can be checked against the getter type
	for i := range pt.NumMethod() {
		m := pt.Method(i)

		switch {
		case strings.HasPrefix(m.Name, "Get"):
			addGetter(ctx, m, strings.TrimPrefix(m.Name, "Get"), false)
		case strings.HasPrefix(m.Name, "Is"):
			addGetter(ctx, m, strings.TrimPrefix(m.Name, "Is"), true)
		}
	}

	for i := range pt.NumMethod() {
		m := pt.Method(i)
		if strings.HasPrefix(m.Name, "Set") {
			addSetter(ctx, m, strings.TrimPrefix(m.Name, "Set"), false)
		}
	}

	return nil
}

func addGetter(ctx *Context, m reflect.Method, suffix string, boolean bool) {
	if suffix == "" {
		return
	}

	ft := m.Type // In(0) is the receiver
	if !returnsValue(ft) {
		return
	}

	out := ft.Out(0)
	name := naming.Decapitalize(suffix)

	switch ft.NumIn() {
	case 1:
		if boolean && out.Kind() != reflect.Bool {
			return
		}

		d := ctx.getOrNew(name)
		if d.Getter != "" && boolean {
			return // GetX wins over IsX
		}

		d.Getter = m.Name
		d.Type = out
	case 2:
		if boolean {
			return
		}

		switch arg := ft.In(1); {
		case arg == intType:
			d := ctx.getOrNew(name)
			d.IndexedGetter = m.Name
			d.ElemType = out
		case arg.Kind() == reflect.String:
			d := ctx.getOrNew(name)
			d.MappedGetter = m.Name
			d.ElemType = out
		}
	}
}

func addSetter(ctx *Context, m reflect.Method, suffix string, fluent bool) {
	if suffix == "" {
		return
	}

	ft := m.Type
	if fluent {
		if ft.NumOut() == 0 || ft.Out(0) == errorType {
			return
		}
	} else if !returnsNothingOrError(ft) {
		return
	}

	name := naming.Decapitalize(suffix)

	switch ft.NumIn() {
	case 2:
		arg := ft.In(1)
		if d := ctx.Get(name); d != nil && ((d.Type != nil && d.Type != arg) || (fluent && d.Setter != "")) {
			return
		}

		d := ctx.getOrNew(name)

		d.Setter = m.Name
		d.Type = arg
	case 3:
		index, arg := ft.In(1), ft.In(2)
		if index != intType && index.Kind() != reflect.String {
			return
		}

		d := ctx.getOrNew(name)
		if d.ElemType != nil && d.ElemType != arg {
			return
		}

		if index == intType {
			d.IndexedSetter = m.Name
		} else {
			d.MappedSetter = m.Name
		}

		d.ElemType = arg
	}
}

func returnsValue(ft reflect.Type) bool {
	switch ft.NumOut() {
	case 1:
		return ft.Out(0) != errorType
	case 2:
		return ft.Out(1) == errorType
	default:
		return false
	}
}

func returnsNothingOrError(ft reflect.Type) bool {
	return ft.NumOut() == 0 || (ft.NumOut() == 1 && ft.Out(0) == errorType)
}

// FluentIntrospector accepts chained setters, methods named Prefix+X that
// take one value and return something other than an error (typically the
// receiver). Prefix defaults to "Set". Existing setters are kept.
type FluentIntrospector struct {
	Prefix string
}

// Introspect implements Introspector.
func (f FluentIntrospector) Introspect(ctx *Context) error {
	prefix := f.Prefix
	if prefix == "" {
		prefix = "Set"
	}

	pt := reflect.PointerTo(ctx.Type())
	for i := range pt.NumMethod() {
		m := pt.Method(i)
		if strings.HasPrefix(m.Name, prefix) && m.Type.NumIn() == 2 {
			addSetter(ctx, m, strings.TrimPrefix(m.Name, prefix), true)
		}
	}

	return nil
}

// SuppressIntrospector removes the named properties contributed by earlier
// introspectors, hiding them from every bean operation.
type SuppressIntrospector struct {
	Names []string
}

// Introspect implements Introspector.
func (s SuppressIntrospector) Introspect(ctx *Context) error {
	for _, name := range s.Names {
		ctx.Remove(name)
	}

	return nil
}

// DefaultIntrospectors returns the chain used by a new Cache.
func DefaultIntrospectors() []Introspector {
	return []Introspector{FieldIntrospector{}, AccessorIntrospector{}}
}
