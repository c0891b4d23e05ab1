package analyze

import (
	"fmt"
	"go/types"
	"slices"
	"strings"

	"beankit/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "example.com/shop"
	Name    string // e.g., "Order"
}

// String returns the fully qualified name.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Short returns the name qualified by the package alias: "shop.Order".
func (t TypeID) Short() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return common.PkgAlias(t.PkgPath) + "." + t.Name
}

// TypeGraph holds the exported struct types of loaded packages.
type TypeGraph struct {
	// Types maps TypeID to the named struct type.
	Types map[TypeID]*types.Named
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Struct types defined in this package
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*types.Named),
		Packages: make(map[string]*PackageInfo),
	}
}

// Lookup finds a struct by full name ("example.com/shop.Order"), short
// name ("shop.Order") or bare name ("Order"). Bare and short names must be
// unambiguous.
func (g *TypeGraph) Lookup(name string) (TypeID, error) {
	var matches []TypeID

	for id := range g.Types {
		if id.String() == name {
			return id, nil
		}

		if id.Short() == name || id.Name == name {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return TypeID{}, fmt.Errorf("struct %s not found", name)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, id := range matches {
			names[i] = id.String()
		}

		slices.Sort(names)

		return TypeID{}, fmt.Errorf("struct %s is ambiguous: %s", name, strings.Join(names, ", "))
	}
}
