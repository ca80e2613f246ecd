package analyze

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const peoplePkg = "beankit/examples/people"

func loadPeople(t *testing.T) *TypeGraph {
	t.Helper()

	graph, err := NewAnalyzer().LoadPackages(peoplePkg)
	require.NoError(t, err)
	require.NotNil(t, graph)

	return graph
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	graph := loadPeople(t)

	require.Contains(t, graph.Packages, peoplePkg)

	pkg := graph.Packages[peoplePkg]
	assert.Equal(t, "people", pkg.Name)
	assert.Equal(t, "beankit", pkg.Module)
	assert.NotEmpty(t, pkg.Dir)
	assert.Equal(t, []TypeID{
		{PkgPath: peoplePkg, Name: "Address"},
		{PkgPath: peoplePkg, Name: "Ledger"},
		{PkgPath: peoplePkg, Name: "Person"},
	}, pkg.Structs)
}

func TestAnalyzer_PersonFields(t *testing.T) {
	graph := loadPeople(t)

	person := graph.GetStruct(TypeID{PkgPath: peoplePkg, Name: "Person"})
	require.NotNil(t, person)

	assert.Equal(t, "people.Person", person.ShapeName())
	assert.Equal(t, []string{"Name", "Email", "Age", "Tags", "Home", "Joined", "nickname"}, person.FieldNames())
	assert.False(t, person.Generic)

	nick, ok := person.Field("nickname")
	require.True(t, ok)
	assert.False(t, nick.Exported)
	assert.Equal(t, 6, nick.Index)

	email, ok := person.Field("Email")
	require.True(t, ok)
	assert.Equal(t, "email", email.Tag.Get("json"))
	assert.Equal(t, "*string", types.TypeString(email.Type, nil))

	joined, ok := person.Field("Joined")
	require.True(t, ok)
	assert.Equal(t, "time.Time", types.TypeString(joined.Type, (*types.Package).Name))

	_, ok = person.Field("missing")
	assert.False(t, ok)
}

func TestAnalyzer_Methods(t *testing.T) {
	graph := loadPeople(t)

	person := graph.GetStruct(TypeID{PkgPath: peoplePkg, Name: "Person"})
	require.NotNil(t, person)

	rename, ok := person.Method("Rename")
	require.True(t, ok)
	assert.Equal(t, 1, rename.Params)
	assert.False(t, rename.IsGetter())
	assert.True(t, rename.Pointer)
	assert.Equal(t, "people.go", rename.File)

	getter, ok := person.Getter("name")
	require.True(t, ok)
	assert.Equal(t, "GetName", getter.Name)

	_, ok = person.Getter("age")
	assert.False(t, ok)

	// the literal accessor rule only ever matches "et"
	_, ok = person.Accessor("name")
	assert.False(t, ok)

	accessor, ok := person.Accessor("et")
	require.True(t, ok)
	assert.Equal(t, "GetEmail", accessor.Name)

	// value receiver methods are part of the pointer method set
	address := graph.GetStruct(TypeID{PkgPath: peoplePkg, Name: "Address"})
	require.NotNil(t, address)

	city, ok := address.Getter("City")
	require.True(t, ok)
	assert.False(t, city.Pointer)
}

func TestAnalyzer_GetStruct(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.LoadPackages(peoplePkg)
	require.NoError(t, err)

	ledger, err := analyzer.GetStruct(peoplePkg, "Ledger")
	require.NoError(t, err)
	assert.Equal(t, []string{"Owner", "Entries", "closed"}, ledger.FieldNames())

	_, err = analyzer.GetStruct(peoplePkg, "Missing")
	assert.EqualError(t, err, "struct type beankit/examples/people.Missing not found")
}

func TestAnalyzer_LoadPackages_Error(t *testing.T) {
	_, err := NewAnalyzer().LoadPackages("beankit/does/not/exist")
	assert.Error(t, err)
}

func TestNameable(t *testing.T) {
	t.Parallel()

	self := types.NewPackage("example/self", "self")
	other := types.NewPackage("example/other", "other")

	hidden := types.NewNamed(types.NewTypeName(0, other, "hidden", nil), types.Typ[types.Int], nil)
	public := types.NewNamed(types.NewTypeName(0, other, "Public", nil), types.Typ[types.Int], nil)
	local := types.NewNamed(types.NewTypeName(0, self, "local", nil), types.Typ[types.Int], nil)

	tests := []struct {
		name string
		typ  types.Type
		want bool
	}{
		{"basic", types.Typ[types.String], true},
		{"exported", public, true},
		{"unexported in same package", local, true},
		{"unexported elsewhere", hidden, false},
		{"pointer", types.NewPointer(hidden), false},
		{"slice", types.NewSlice(public), true},
		{"map value", types.NewMap(types.Typ[types.String], hidden), false},
		{"func result", types.NewSignatureType(nil, nil, nil, nil,
			types.NewTuple(types.NewVar(0, nil, "", hidden)), false), false},
		{"struct with foreign unexported field", types.NewStruct(
			[]*types.Var{types.NewField(0, other, "x", types.Typ[types.Int], false)}, nil), false},
		{"struct with exported field", types.NewStruct(
			[]*types.Var{types.NewField(0, other, "X", public, false)}, nil), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Nameable(tt.typ, self))
		})
	}
}

func TestTypeID_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "beankit/examples/people.Person", TypeID{PkgPath: peoplePkg, Name: "Person"}.String())
	assert.Equal(t, "int", TypeID{Name: "int"}.String())
}
