package convert

import (
	"fmt"
	"math/big"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"beankit/internal/common"
)

// TypeNames maps type names used in textual class definitions to types.
//
// A named type is known by its full path ("example.com/shop.Order") and by
// its short form ("shop.Order"); composites such as "[]T", "[4]T", "*T" and
// "map[string]T" are built from known element names.
type TypeNames struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewTypeNames returns a table with the built-in scalar types.
func NewTypeNames() *TypeNames {
	n := &TypeNames{types: make(map[string]reflect.Type)}

	for k := KindInt; k < KindPrimitiveEnum; k++ {
		n.Register(k.Type())
	}

	n.Register(
		reflect.TypeFor[any](),
		reflect.TypeFor[*big.Int](),
		reflect.TypeFor[*big.Float](),
		reflect.TypeFor[*big.Rat](),
		reflect.TypeFor[*url.URL](),
		reflect.TypeFor[uuid.UUID](),
		reflect.TypeFor[ulid.ULID](),
	)

	n.types["byte"] = reflect.TypeFor[byte]()
	n.types["rune"] = reflect.TypeFor[rune]()
	n.types["any"] = reflect.TypeFor[any]()
	n.types["interface{}"] = reflect.TypeFor[any]()
	n.types["time.Time"] = reflect.TypeFor[time.Time]()
	n.types["time.Duration"] = reflect.TypeFor[time.Duration]()

	return n
}

// Register makes types resolvable by name. Pointer types register their
// element type; "*T" resolves through it.
func (n *TypeNames) Register(types ...reflect.Type) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, t := range types {
		for t.Kind() == reflect.Pointer && t.Name() == "" {
			t = t.Elem()
		}

		if t.Name() == "" {
			continue
		}

		if t.PkgPath() == "" {
			n.types[t.Name()] = t
			continue
		}

		n.types[t.PkgPath()+"."+t.Name()] = t
		n.types[common.PkgAlias(t.PkgPath())+"."+t.Name()] = t
	}
}

// Resolve returns the type called name.
func (n *TypeNames) Resolve(name string) (reflect.Type, error) {
	name = strings.TrimSpace(name)

	switch {
	case name == "":
		return nil, fmt.Errorf("empty type name")
	case strings.HasPrefix(name, "*"):
		elem, err := n.Resolve(name[1:])
		if err != nil {
			return nil, err
		}

		return reflect.PointerTo(elem), nil
	case strings.HasPrefix(name, "[]"):
		elem, err := n.Resolve(name[2:])
		if err != nil {
			return nil, err
		}

		return reflect.SliceOf(elem), nil
	case strings.HasPrefix(name, "["):
		size, rest, ok := strings.Cut(name[1:], "]")
		if !ok {
			return nil, fmt.Errorf("malformed array type %q", name)
		}

		length, err := strconv.Atoi(size)
		if err != nil || length < 0 {
			return nil, fmt.Errorf("malformed array length in %q", name)
		}

		elem, err := n.Resolve(rest)
		if err != nil {
			return nil, err
		}

		return reflect.ArrayOf(length, elem), nil
	case strings.HasPrefix(name, "map["):
		key, rest, ok := strings.Cut(name[len("map["):], "]")
		if !ok {
			return nil, fmt.Errorf("malformed map type %q", name)
		}

		kt, err := n.Resolve(key)
		if err != nil {
			return nil, err
		}

		if !kt.Comparable() {
			return nil, fmt.Errorf("map key %s is not comparable", kt)
		}

		vt, err := n.Resolve(rest)
		if err != nil {
			return nil, err
		}

		return reflect.MapOf(kt, vt), nil
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	if t, ok := n.types[name]; ok {
		return t, nil
	}

	// name only: unique match on the type name
	if !strings.Contains(name, ".") {
		var found reflect.Type

		for _, t := range n.types {
			if t.Name() != name {
				continue
			}

			if found != nil && found != t {
				return nil, fmt.Errorf("ambiguous type name %q", name)
			}

			found = t
		}

		if found != nil {
			return found, nil
		}
	}

	return nil, fmt.Errorf("unknown type %q", name)
}

var defaultNames = NewTypeNames()

// RegisterTypes adds types to the shared name table.
func RegisterTypes(types ...reflect.Type) { defaultNames.Register(types...) }

// Resolve looks name up in the shared name table.
func Resolve(name string) (reflect.Type, error) { return defaultNames.Resolve(name) }

// TypeName renders t with short package names: "[]shop.Order", "*big.Int".
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	if t.Name() != "" {
		if t.PkgPath() == "" {
			return t.Name()
		}

		return common.PkgAlias(t.PkgPath()) + "." + t.Name()
	}

	switch t.Kind() {
	case reflect.Pointer:
		return "*" + TypeName(t.Elem())
	case reflect.Slice:
		return "[]" + TypeName(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + TypeName(t.Elem())
	case reflect.Map:
		return "map[" + TypeName(t.Key()) + "]" + TypeName(t.Elem())
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return "any"
		}
	}

	return t.String()
}
