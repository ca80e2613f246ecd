package analyze

import (
	"go/types"
	"reflect"
	"slices"

	"beankit/introspect"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "beankit/examples/people"
	Name    string // e.g., "Person"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// StructInfo describes a named struct type.
type StructInfo struct {
	ID      TypeID
	PkgName string       // Name of the declaring package
	Fields  []FieldInfo  // Declared fields in order, unexported ones included
	Methods []MethodInfo // Exported methods of the pointer method set, sorted
	Generic bool         // True if the type has type parameters
	Named   *types.Named // The original go/types type
}

// ShapeName returns the name the runtime gives the shape, e.g. "people.Person".
func (s *StructInfo) ShapeName() string {
	return s.PkgName + "." + s.ID.Name
}

// FieldNames returns the field names in declaration order.
func (s *StructInfo) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}

	return names
}

// Field returns the field called name.
func (s *StructInfo) Field(name string) (FieldInfo, bool) {
	i := slices.IndexFunc(s.Fields, func(f FieldInfo) bool { return f.Name == name })
	if i < 0 {
		return FieldInfo{}, false
	}

	return s.Fields[i], true
}

// Method returns the method called name.
func (s *StructInfo) Method(name string) (MethodInfo, bool) {
	i := slices.IndexFunc(s.Methods, func(m MethodInfo) bool { return m.Name == name })
	if i < 0 {
		return MethodInfo{}, false
	}

	return s.Methods[i], true
}

// Accessor returns the method the literal accessor rule picks for name.
func (s *StructInfo) Accessor(name string) (MethodInfo, bool) {
	for _, m := range s.Methods {
		if introspect.MatchesAccessor(m.Name, name) {
			return m, true
		}
	}

	return MethodInfo{}, false
}

// Getter returns the Get<Name> getter of name.
func (s *StructInfo) Getter(name string) (MethodInfo, bool) {
	for _, m := range s.Methods {
		if m.IsGetter() && introspect.MatchesGetter(m.Name, name) {
			return m, true
		}
	}

	return MethodInfo{}, false
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     types.Type        // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// MethodInfo describes a method of a struct's pointer method set.
type MethodInfo struct {
	Name     string
	Params   int    // Number of parameters, receiver excluded
	Results  int    // Number of results
	Pointer  bool   // True if declared on the pointer receiver
	Promoted bool   // True if promoted from an embedded field
	File     string // Base name of the file declaring the method
}

// IsGetter reports whether m takes no arguments and returns one value.
func (m MethodInfo) IsGetter() bool {
	return m.Params == 0 && m.Results == 1
}

// TypeGraph holds the struct types of the loaded packages.
type TypeGraph struct {
	// Structs maps TypeID to StructInfo for all named struct types.
	Structs map[TypeID]*StructInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Structs:  make(map[TypeID]*StructInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetStruct returns the StructInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetStruct(id TypeID) *StructInfo {
	return g.Structs[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path    string   // Import path
	Name    string   // Package name
	Dir     string   // Directory holding the package sources
	Module  string   // Path of the module the package belongs to
	Structs []TypeID // Struct types declared in this package, sorted by name
	Types   *types.Package
}
