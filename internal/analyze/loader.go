package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"log/slog"

	"golang.org/x/tools/go/packages"

	"beankit/dyna"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedTypes |
	packages.NeedImports

// Analyzer loads Go packages and collects their struct types.
type Analyzer struct {
	graph  *TypeGraph
	dir    string
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory patterns are resolved in.
func WithDir(dir string) Option {
	return func(a *Analyzer) {
		a.dir = dir
	}
}

// WithLogger sets the logger reporting properties left untyped.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		graph:  NewTypeGraph(),
		logger: slog.Default().With("component", "analyze"),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the specified packages and adds their exported,
// non-generic struct types to the graph. Patterns are standard Go package
// patterns (e.g., "./shop", "example.com/shop/...").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

func (a *Analyzer) processPackage(pkg *packages.Package) {
	info := &PackageInfo{Path: pkg.PkgPath, Name: pkg.Name}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !obj.Exported() || obj.IsAlias() {
			continue
		}

		named, ok := obj.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}

		if _, ok := named.Underlying().(*types.Struct); !ok {
			continue
		}

		id := TypeID{PkgPath: pkg.PkgPath, Name: name}
		a.graph.Types[id] = named
		info.Types = append(info.Types, id)
	}

	a.graph.Packages[pkg.PkgPath] = info
	a.logger.Debug("loaded package", slog.String("path", pkg.PkgPath), slog.Int("structs", len(info.Types)))
}

// Class derives the class definition of the struct id.
func (a *Analyzer) Class(id TypeID) (*dyna.ClassFile, error) {
	named := a.graph.Types[id]
	if named == nil {
		return nil, fmt.Errorf("struct %s not found", id)
	}

	b := &classBuilder{props: make(map[string]*sourceProperty), logger: a.logger.With("struct", id.String())}
	b.fields(named.Underlying().(*types.Struct))
	b.methods(named)

	return &dyna.ClassFile{Name: id.Name, Properties: b.definitions()}, nil
}
