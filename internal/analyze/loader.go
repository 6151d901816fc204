package analyze

import (
	"fmt"
	"go/types"
	"slices"

	"golang.org/x/tools/go/packages"

	"struct-mapper/descriptor"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and describes their struct types.
type Analyzer struct {
	graph  *TypeGraph
	tagKey string
	dir    string
}

// Option configures an Analyzer.
type Option func(a *Analyzer)

// WithTagKey selects the struct tag read for field access rules.
func WithTagKey(key string) Option {
	return func(a *Analyzer) {
		if key != "" {
			a.tagKey = key
		}
	}
}

// WithDir sets the directory package patterns are resolved from.
func WithDir(dir string) Option {
	return func(a *Analyzer) { a.dir = dir }
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		graph:  NewTypeGraph(),
		tagKey: descriptor.DefaultTagKey,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the specified packages and adds their struct types to the graph.
// Patterns are standard Go package patterns (e.g., "./store", "struct-mapper/warehouse").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	if _, err := a.load(patterns...); err != nil {
		return nil, err
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

func (a *Analyzer) load(patterns ...string) ([]*PackageInfo, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	res := make([]*PackageInfo, 0, len(pkgs))
	for _, pkg := range pkgs {
		res = append(res, a.processPackage(pkg))
	}

	return res, nil
}

// processPackage extracts struct types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) *PackageInfo {
	if info, ok := a.graph.Packages[pkg.PkgPath]; ok {
		return info
	}

	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		// Only exported type names, not variables, constants or functions
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}

		st, ok := named.Underlying().(*types.Struct)
		if !ok {
			continue
		}

		id := TypeID{PkgPath: pkg.PkgPath, Name: name}
		a.graph.Types[id] = &StructInfo{
			ID:     id,
			GoType: named,
			Fields: visibleFields(st, a.tagKey),
		}
		pkgInfo.Types = append(pkgInfo.Types, id)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo

	return pkgInfo
}

// GetStruct returns the StructInfo for a named struct by package path and name.
func (a *Analyzer) GetStruct(pkgPath, typeName string) (*StructInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}

	info := a.graph.GetType(id)
	if info == nil {
		return nil, fmt.Errorf("struct type %s not found", id)
	}

	return info, nil
}

// StructRef names a struct type by package pattern and type name.
type StructRef struct {
	Pattern string
	Name    string
}

// FindStruct loads pattern and returns the struct type typeName declared in one of
// the matched packages.
func (a *Analyzer) FindStruct(pattern, typeName string) (*StructInfo, error) {
	found, err := a.FindStructs(StructRef{Pattern: pattern, Name: typeName})
	if err != nil {
		return nil, err
	}

	return found[0], nil
}

// FindStructs loads the patterns of all refs in a single pass and resolves each ref.
// Types reached from several packages, such as time.Time, are then identical across
// the returned structs.
func (a *Analyzer) FindStructs(refs ...StructRef) ([]*StructInfo, error) {
	patterns := make([]string, 0, len(refs))
	for _, ref := range refs {
		if !slices.Contains(patterns, ref.Pattern) {
			patterns = append(patterns, ref.Pattern)
		}
	}

	if _, err := a.load(patterns...); err != nil {
		return nil, err
	}

	res := make([]*StructInfo, 0, len(refs))
	for _, ref := range refs {
		info, err := a.resolve(ref)
		if err != nil {
			return nil, err
		}

		res = append(res, info)
	}

	return res, nil
}

// resolve finds ref among the packages its pattern matches. Matching only needs
// package names, the types come from the graph.
func (a *Analyzer) resolve(ref StructRef) (*StructInfo, error) {
	pkgs, err := packages.Load(&packages.Config{Mode: packages.NeedName, Dir: a.dir}, ref.Pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve package pattern %s: %w", ref.Pattern, err)
	}

	var found []*StructInfo
	for _, pkg := range pkgs {
		if info := a.graph.GetType(TypeID{PkgPath: pkg.PkgPath, Name: ref.Name}); info != nil {
			found = append(found, info)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("struct type %s not found in %s", ref.Name, ref.Pattern)
	case 1:
		return found[0], nil
	default:
		paths := make([]string, 0, len(found))
		for _, info := range found {
			paths = append(paths, info.ID.PkgPath)
		}
		slices.Sort(paths)

		return nil, fmt.Errorf("struct type %s is declared in several packages matching %s: %v", ref.Name, ref.Pattern, paths)
	}
}
