package analyze

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedModule

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph *TypeGraph
	dir   string
}

// NewAnalyzer creates a new Analyzer resolving patterns from the current directory.
func NewAnalyzer() *Analyzer {
	return &Analyzer{graph: NewTypeGraph()}
}

// WithDir makes patterns resolve relative to dir.
func (a *Analyzer) WithDir(dir string) *Analyzer {
	a.dir = dir
	return a
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./examples/people").
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
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

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

// GetStruct returns the StructInfo of pkgPath.typeName.
func (a *Analyzer) GetStruct(pkgPath, typeName string) (*StructInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}

	info := a.graph.GetStruct(id)
	if info == nil {
		return nil, fmt.Errorf("struct type %s not found", id)
	}

	return info, nil
}

func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path:  pkg.PkgPath,
		Name:  pkg.Name,
		Types: pkg.Types,
	}

	if pkg.Module != nil {
		pkgInfo.Module = pkg.Module.Path
	}

	if len(pkg.GoFiles) > 0 {
		pkgInfo.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		st, ok := named.Underlying().(*types.Struct)
		if !ok {
			continue
		}

		info := &StructInfo{
			ID:      TypeID{PkgPath: pkg.PkgPath, Name: name},
			PkgName: pkg.Name,
			Fields:  structFields(st),
			Methods: pointerMethods(pkg.Fset, named),
			Generic: named.TypeParams().Len() > 0,
			Named:   named,
		}

		a.graph.Structs[info.ID] = info
		pkgInfo.Structs = append(pkgInfo.Structs, info.ID)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

func structFields(st *types.Struct) []FieldInfo {
	fields := make([]FieldInfo, 0, st.NumFields())
	for i := range st.NumFields() {
		field := st.Field(i)

		fields = append(fields, FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     field.Type(),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		})
	}

	return fields
}

// pointerMethods lists what reflect would report for the pointer type: the
// exported methods, promoted ones included.
func pointerMethods(fset *token.FileSet, named *types.Named) []MethodInfo {
	mset := types.NewMethodSet(types.NewPointer(named))

	var methods []MethodInfo
	for i := range mset.Len() {
		sel := mset.At(i)

		fn, ok := sel.Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}

		sig := fn.Type().(*types.Signature)

		_, onPointer := sig.Recv().Type().(*types.Pointer)
		methods = append(methods, MethodInfo{
			Name:     fn.Name(),
			Params:   sig.Params().Len(),
			Results:  sig.Results().Len(),
			Pointer:  onPointer,
			Promoted: len(sel.Index()) > 1,
			File:     filepath.Base(fset.Position(fn.Pos()).Filename),
		})
	}

	slices.SortFunc(methods, func(a, b MethodInfo) int { return strings.Compare(a.Name, b.Name) })

	return methods
}

// Nameable reports whether t can be spelled in source code of package from.
// Types declared unexported in another package cannot.
func Nameable(t types.Type, from *types.Package) bool {
	return nameable(t, from, map[types.Type]bool{})
}

func nameable(t types.Type, from *types.Package, seen map[types.Type]bool) bool {
	if seen[t] {
		return true
	}

	seen[t] = true

	switch tt := t.(type) {
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() != nil && obj.Pkg() != from && !obj.Exported() {
			return false
		}

		for arg := range tt.TypeArgs().Types() {
			if !nameable(arg, from, seen) {
				return false
			}
		}

		return true
	case *types.Alias:
		return nameable(types.Unalias(tt), from, seen)
	case *types.Pointer:
		return nameable(tt.Elem(), from, seen)
	case *types.Slice:
		return nameable(tt.Elem(), from, seen)
	case *types.Array:
		return nameable(tt.Elem(), from, seen)
	case *types.Chan:
		return nameable(tt.Elem(), from, seen)
	case *types.Map:
		return nameable(tt.Key(), from, seen) && nameable(tt.Elem(), from, seen)
	case *types.Signature:
		return nameableTuple(tt.Params(), from, seen) && nameableTuple(tt.Results(), from, seen)
	case *types.Struct:
		for i := range tt.NumFields() {
			f := tt.Field(i)
			if f.Pkg() != from && !f.Exported() {
				return false
			}

			if !nameable(f.Type(), from, seen) {
				return false
			}
		}

		return true
	case *types.TypeParam:
		return false
	default:
		return true
	}
}

func nameableTuple(tuple *types.Tuple, from *types.Package, seen map[types.Type]bool) bool {
	for v := range tuple.Variables() {
		if !nameable(v.Type(), from, seen) {
			return false
		}
	}

	return true
}
