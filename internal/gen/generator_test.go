package gen

import (
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beankit/internal/analyze"
	"beankit/internal/diagnostic"
)

const shopPath = "example/shop"

// shopGraph builds a package by hand so the generator can be tested on types
// the repository does not declare.
func shopGraph(t *testing.T, structs ...*analyze.StructInfo) *analyze.TypeGraph {
	t.Helper()

	graph := analyze.NewTypeGraph()
	pkg := &analyze.PackageInfo{
		Path:   shopPath,
		Name:   "shop",
		Dir:    t.TempDir(),
		Module: "example",
		Types:  shopPkg,
	}

	for _, s := range structs {
		graph.Structs[s.ID] = s
		pkg.Structs = append(pkg.Structs, s.ID)
	}

	graph.Packages[shopPath] = pkg

	return graph
}

var (
	shopPkg  = types.NewPackage(shopPath, "shop")
	otherPkg = types.NewPackage("example/other", "other")
	faultPkg = types.NewPackage("example/fault", "fault")

	money  = types.NewNamed(types.NewTypeName(0, otherPkg, "Money", nil), types.Typ[types.Int64], nil)
	hidden = types.NewNamed(types.NewTypeName(0, otherPkg, "hidden", nil), types.Typ[types.Int], nil)
	code   = types.NewNamed(types.NewTypeName(0, faultPkg, "Code", nil), types.Typ[types.String], nil)
)

func field(name string, typ types.Type) analyze.FieldInfo {
	return analyze.FieldInfo{Name: name, Exported: token.IsExported(name), Type: typ}
}

func order(fields ...analyze.FieldInfo) *analyze.StructInfo {
	return &analyze.StructInfo{
		ID:      analyze.TypeID{PkgPath: shopPath, Name: "Order"},
		PkgName: "shop",
		Fields:  fields,
	}
}

func TestGenerator_Generate_Imports(t *testing.T) {
	t.Parallel()

	graph := shopGraph(t, order(
		field("ID", types.Typ[types.String]),
		field("Total", money),
		field("Status", code),
		field("secret", hidden),
		field("kind", types.NewPointer(types.Typ[types.Int])),
	))

	files, diags, err := NewGenerator(DefaultGeneratorConfig()).Generate(graph, shopPath)
	require.NoError(t, err)
	require.Len(t, files, 1)

	file := files[0]
	assert.Equal(t, "order_bag.go", file.Filename)
	assert.Equal(t, graph.Packages[shopPath].Dir, file.Dir)
	assert.Equal(t, analyze.TypeID{PkgPath: shopPath, Name: "Order"}, file.Type)

	content := string(file.Content)
	assert.Contains(t, content, "// Code generated by beankit gen. DO NOT EDIT.")
	assert.Contains(t, content, "package shop")
	assert.Contains(t, content, "import (\n\t\"reflect\"\n\n\t\"beankit/fault\"\n\t\"beankit/introspect\"\n\tfault2 \"example/fault\"\n\t\"example/other\"\n)")
	assert.Contains(t, content, "var _ introspect.PropertyBag = (*Order)(nil)")
	assert.Contains(t, content, `return []string{"ID", "Total", "Status", "kind"}`)
	assert.Contains(t, content, "return reflect.TypeFor[other.Money](), true")
	assert.Contains(t, content, "converted, ok := introspect.Convert[fault2.Code](value)")
	assert.Contains(t, content, "return reflect.TypeFor[*int](), true")
	assert.Contains(t, content, "o.kind = converted")
	assert.Contains(t, content, `return fault.TypeMismatch("shop.Order", name, reflect.TypeFor[string](), reflect.TypeOf(value))`)
	assert.NotContains(t, content, "secret")

	require.False(t, diags.HasErrors())
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, diagnostic.CodeUnnameableField, diags.Warnings[0].Code)
	assert.Equal(t, "secret", diags.Warnings[0].Field)
	assert.Equal(t, "shop.Order", diags.Warnings[0].Type)
}

func TestGenerator_Generate_Options(t *testing.T) {
	t.Parallel()

	graph := shopGraph(t, order(
		field("ID", types.Typ[types.String]),
		field("note", types.Typ[types.String]),
	))

	cfg := DefaultGeneratorConfig()
	cfg.GenerateComments = false
	cfg.IncludeUnexported = false
	cfg.FileSuffix = "_props.go"
	cfg.OutputDir = "preview"

	files, diags, err := NewGenerator(cfg).Generate(graph, shopPath)
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.Equal(t, "order_props.go", files[0].Filename)
	assert.Equal(t, "preview", files[0].Dir)

	content := string(files[0].Content)
	assert.NotContains(t, content, "// PropertyNames")
	assert.Contains(t, content, `return []string{"ID"}`)
	assert.NotContains(t, content, `"note"`)

	assert.Equal(t, []string{diagnostic.CodeUnexportedField}, diags.Codes())
}

func TestGenerator_Generate_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		info   *analyze.StructInfo
		types  []string
		code   string
		errors bool
	}{
		{
			name:   "field named like a bag method",
			info:   order(field("Property", types.Typ[types.String])),
			code:   diagnostic.CodeMethodCollision,
			errors: true,
		},
		{
			name: "hand written bag",
			info: func() *analyze.StructInfo {
				s := order(field("ID", types.Typ[types.String]))
				s.Methods = []analyze.MethodInfo{{Name: "PropertyNames", Results: 1, Pointer: true, File: "order.go"}}

				return s
			}(),
			code:   diagnostic.CodeExistingBag,
			errors: true,
		},
		{
			name: "generic type",
			info: func() *analyze.StructInfo {
				s := order(field("ID", types.Typ[types.String]))
				s.Generic = true

				return s
			}(),
			code: diagnostic.CodeGenericType,
		},
		{
			name:   "unknown type",
			info:   order(),
			types:  []string{"Invoice"},
			code:   diagnostic.CodeTypeNotFound,
			errors: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultGeneratorConfig()
			cfg.Types = tt.types

			files, diags, err := NewGenerator(cfg).Generate(shopGraph(t, tt.info), shopPath)
			require.NoError(t, err)
			assert.Empty(t, files)
			assert.Contains(t, diags.Codes(), tt.code)
			assert.Equal(t, tt.errors, diags.HasErrors())
		})
	}
}

func TestGenerator_Generate_Regenerate(t *testing.T) {
	t.Parallel()

	// methods from a previous run live in the file about to be replaced
	s := order(field("ID", types.Typ[types.String]))
	s.Methods = []analyze.MethodInfo{
		{Name: "PropertyNames", Results: 1, Pointer: true, File: "order_bag.go"},
		{Name: "SetProperty", Params: 2, Results: 1, Pointer: true, File: "order_bag.go"},
	}

	files, diags, err := NewGenerator(DefaultGeneratorConfig()).Generate(shopGraph(t, s), shopPath)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.False(t, diags.HasErrors())
}

func TestGenerator_Generate_NoProperties(t *testing.T) {
	t.Parallel()

	files, diags, err := NewGenerator(DefaultGeneratorConfig()).Generate(shopGraph(t, order()), shopPath)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, []string{diagnostic.CodeNoProperties}, diags.Codes())
	assert.Contains(t, string(files[0].Content), "return []string{}")
}

func TestGenerator_Generate_UnknownPackage(t *testing.T) {
	t.Parallel()

	_, _, err := NewGenerator(DefaultGeneratorConfig()).Generate(analyze.NewTypeGraph(), shopPath)
	assert.EqualError(t, err, "package example/shop was not loaded")
}

// The bags checked into examples/people must be what the generator produces.
func TestGenerator_Generate_PeopleUpToDate(t *testing.T) {
	const pkgPath = "beankit/examples/people"

	graph, err := analyze.NewAnalyzer().LoadPackages(pkgPath)
	require.NoError(t, err)

	cfg := DefaultGeneratorConfig()
	cfg.Types = []string{"Person", "Address"}

	files, diags, err := NewGenerator(cfg).Generate(graph, pkgPath)
	require.NoError(t, err)
	require.False(t, diags.HasErrors(), spew.Sdump(diags))
	require.Len(t, files, 2)

	for _, file := range files {
		want, err := os.ReadFile(filepath.Join(file.Dir, file.Filename))
		require.NoError(t, err)
		assert.Equal(t, string(want), string(file.Content), file.Filename)
	}
}

func TestReceiverName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "p", receiverName("Person"))
	assert.Equal(t, "o", receiverName("order"))
	assert.Equal(t, "é", receiverName("Élan"))
	assert.Equal(t, "r", receiverName(""))
}

func TestImportSet(t *testing.T) {
	t.Parallel()

	s := newImportSet(shopPkg, "example", "o")
	assert.Equal(t, "", s.qualifier(shopPkg))
	assert.Equal(t, "other", s.qualifier(otherPkg))
	assert.Equal(t, "fault2", s.qualifier(faultPkg))
	assert.Equal(t, "fault2", s.qualifier(faultPkg))

	// a package named like a reserved identifier gets an alias
	o := types.NewPackage("example/o", "o")
	assert.Equal(t, "o2", s.qualifier(o))

	std, other := s.groups()
	assert.Equal(t, []importSpec{{Path: "reflect"}}, std)
	assert.Equal(t, []importSpec{
		{Path: "beankit/fault"},
		{Path: "beankit/introspect"},
		{Alias: "fault2", Path: "example/fault"},
		{Alias: "o2", Path: "example/o"},
		{Path: "example/other"},
	}, other)
}
