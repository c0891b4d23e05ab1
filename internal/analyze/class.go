package analyze

import (
	"fmt"
	"go/types"
	"log/slog"
	"reflect"
	"strings"

	"beankit/convert"
	"beankit/dyna"
	"beankit/internal/common"
	"beankit/internal/naming"
	"beankit/introspect"
)

// anyDocument names nested structs the type table does not know.
const anyDocument = "map[string]any"

// sourceProperty is the static counterpart of introspect.Descriptor.
type sourceProperty struct {
	name     string
	typ      types.Type
	elem     types.Type
	field    bool
	readOnly bool

	getter, setter         bool
	indexedGet, indexedSet bool
	mappedGet, mappedSet   bool
}

type classBuilder struct {
	order  []string
	props  map[string]*sourceProperty
	logger *slog.Logger
}

func (b *classBuilder) get(name string) *sourceProperty {
	if p := b.props[name]; p != nil {
		return p
	}

	p := &sourceProperty{name: name}
	b.props[name] = p
	b.order = append(b.order, name)

	return p
}

// fields adds the exported fields visible on st, promoted ones included.
// Embedded structs are searched breadth first; a Go name seen at a
// shallower depth hides deeper ones, and a name found twice at one depth
// is ambiguous and dropped.
func (b *classBuilder) fields(st *types.Struct) {
	seen := make(map[string]bool)
	visited := make(map[types.Type]bool)
	level := []*types.Struct{st}

	for len(level) > 0 {
		var next []*types.Struct

		count := make(map[string]int)
		found := make(map[string]*types.Var)
		tags := make(map[string]string)

		var names []string

		for _, s := range level {
			for i := range s.NumFields() {
				f := s.Field(i)

				if f.Embedded() {
					if inner, ok := embeddedStruct(f.Type()); ok && !visited[inner] {
						visited[inner] = true
						next = append(next, inner.Underlying().(*types.Struct))
					}
				}

				if seen[f.Name()] {
					continue
				}

				if count[f.Name()] == 0 {
					names = append(names, f.Name())
				}

				count[f.Name()]++
				found[f.Name()] = f
				tags[f.Name()] = s.Tag(i)
			}
		}

		for _, goName := range names {
			seen[goName] = true

			f := found[goName]
			if count[goName] > 1 || !f.Exported() || f.Embedded() {
				continue
			}

			name, readOnly, skip := introspect.ParseTag(reflect.StructTag(tags[goName]), goName)
			if skip {
				continue
			}

			p := b.get(name)
			p.typ = f.Type()
			p.field = true
			p.readOnly = readOnly
		}

		level = next
	}
}

func embeddedStruct(t types.Type) (types.Type, bool) {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}

	t = types.Unalias(t)
	if _, ok := t.Underlying().(*types.Struct); !ok {
		return nil, false
	}

	return t, true
}

// methods adds Get/Is/Set accessors from the pointer method set, getters
// before setters so setters can be checked against the getter type.
func (b *classBuilder) methods(named *types.Named) {
	ms := types.NewMethodSet(types.NewPointer(named))

	var setters []*types.Func

	for i := range ms.Len() {
		fn, ok := ms.At(i).Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}

		switch name := fn.Name(); {
		case strings.HasPrefix(name, "Get"):
			b.getter(fn, strings.TrimPrefix(name, "Get"), false)
		case strings.HasPrefix(name, "Is"):
			b.getter(fn, strings.TrimPrefix(name, "Is"), true)
		case strings.HasPrefix(name, "Set"):
			setters = append(setters, fn)
		}
	}

	for _, fn := range setters {
		b.setter(fn, strings.TrimPrefix(fn.Name(), "Set"))
	}
}

func (b *classBuilder) getter(fn *types.Func, suffix string, boolean bool) {
	sig := fn.Type().(*types.Signature)
	if suffix == "" || !returnsValue(sig) {
		return
	}

	out := sig.Results().At(0).Type()
	name := naming.Decapitalize(suffix)

	switch sig.Params().Len() {
	case 0:
		if boolean && !isBool(out) {
			return
		}

		p := b.get(name)
		if p.getter && boolean {
			return // GetX wins over IsX
		}

		p.getter = true
		p.typ = out
	case 1:
		if boolean {
			return
		}

		switch arg := sig.Params().At(0).Type(); {
		case isInt(arg):
			p := b.get(name)
			p.indexedGet = true
			p.elem = out
		case isString(arg):
			p := b.get(name)
			p.mappedGet = true
			p.elem = out
		}
	}
}

func (b *classBuilder) setter(fn *types.Func, suffix string) {
	sig := fn.Type().(*types.Signature)
	if suffix == "" || !returnsNothingOrError(sig) {
		return
	}

	name := naming.Decapitalize(suffix)
	params := sig.Params()

	switch params.Len() {
	case 1:
		arg := params.At(0).Type()
		if p := b.props[name]; p != nil && p.typ != nil && !types.Identical(p.typ, arg) {
			return
		}

		p := b.get(name)
		p.setter = true
		p.typ = arg
	case 2:
		index, arg := params.At(0).Type(), params.At(1).Type()
		if !isInt(index) && !isString(index) {
			return
		}

		p := b.get(name)
		if p.elem != nil && !types.Identical(p.elem, arg) {
			return
		}

		if isInt(index) {
			p.indexedSet = true
		} else {
			p.mappedSet = true
		}

		p.elem = arg
	}
}

// definitions renders the collected properties in discovery order.
func (b *classBuilder) definitions() []dyna.PropertyDef {
	defs := make([]dyna.PropertyDef, 0, len(b.order))

	for _, name := range b.order {
		p := b.props[name]

		readable := p.getter || p.field
		writable := p.setter || (p.field && !p.readOnly)
		container := p.indexedGet || p.indexedSet || p.mappedGet || p.mappedSet

		def := dyna.PropertyDef{
			Name:      name,
			ReadOnly:  readable && !writable && !container,
			WriteOnly: writable && !readable,
		}

		switch {
		case p.typ != nil:
			def.Type = b.typeName(name, p.typ)
		case p.indexedGet || p.indexedSet:
			if elem := b.typeName(name, p.elem); elem != "" {
				def.Type = "[]" + elem
			}
		case p.mappedGet || p.mappedSet:
			if elem := b.typeName(name, p.elem); elem != "" {
				def.Type = "map[string]" + elem
			}
		}

		defs = append(defs, def)
	}

	return defs
}

// typeName renders t so convert.Resolve accepts it, or returns "" to leave
// the property untyped.
func (b *classBuilder) typeName(property string, t types.Type) string {
	name := sourceTypeName(t)
	if name == "" {
		b.logger.Debug("property left untyped", slog.String("property", property), slog.String("type", t.String()))
		return ""
	}

	if _, err := convert.Resolve(name); err != nil {
		b.logger.Debug("property left untyped", slog.String("property", property), slog.Any("error", err))
		return ""
	}

	return name
}

func sourceTypeName(t types.Type) string {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return tt.Name()
	case *types.Named:
		if obj := tt.Obj(); obj.Pkg() != nil {
			name := common.PkgAlias(obj.Pkg().Path()) + "." + obj.Name()
			if _, err := convert.Resolve(name); err == nil {
				return name
			}
		}

		if _, ok := tt.Underlying().(*types.Struct); ok {
			return anyDocument
		}

		return sourceTypeName(tt.Underlying())
	case *types.Pointer:
		elem := sourceTypeName(tt.Elem())
		if elem == "" || elem == anyDocument {
			return elem
		}

		return "*" + elem
	case *types.Slice:
		return prefixed("[]", sourceTypeName(tt.Elem()))
	case *types.Array:
		return prefixed(fmt.Sprintf("[%d]", tt.Len()), sourceTypeName(tt.Elem()))
	case *types.Map:
		if !isString(tt.Key()) {
			return ""
		}

		return prefixed("map[string]", sourceTypeName(tt.Elem()))
	case *types.Interface:
		if tt.Empty() {
			return "any"
		}
	case *types.Struct:
		return anyDocument
	}

	return ""
}

func prefixed(prefix, elem string) string {
	if elem == "" {
		return ""
	}

	return prefix + elem
}

func returnsValue(sig *types.Signature) bool {
	res := sig.Results()

	switch res.Len() {
	case 1:
		return !isError(res.At(0).Type())
	case 2:
		return isError(res.At(1).Type())
	default:
		return false
	}
}

func returnsNothingOrError(sig *types.Signature) bool {
	res := sig.Results()
	return res.Len() == 0 || (res.Len() == 1 && isError(res.At(0).Type()))
}

var errorType = types.Universe.Lookup("error").Type()

func isError(t types.Type) bool { return types.Identical(t, errorType) }

func isInt(t types.Type) bool { return types.Identical(t, types.Typ[types.Int]) }

func isBool(t types.Type) bool { return hasBasicKind(t, types.Bool) }

func isString(t types.Type) bool { return hasBasicKind(t, types.String) }

func hasBasicKind(t types.Type, kind types.BasicKind) bool {
	basic, ok := t.Underlying().(*types.Basic)
	return ok && basic.Kind() == kind
}
