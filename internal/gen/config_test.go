package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	cfg, err := ParseConfig(strings.NewReader(`
package: ./examples/people
types: [Person, Address]
comments: false
`))
	require.NoError(t, err)

	want := DefaultGeneratorConfig()
	want.Package = "./examples/people"
	want.Types = []string{"Person", "Address"}
	want.GenerateComments = false

	assert.Equal(t, want, cfg)
}

func TestParseConfig_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := ParseConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultGeneratorConfig(), cfg)
}

func TestParseConfig_Errors(t *testing.T) {
	t.Parallel()

	_, err := ParseConfig(strings.NewReader("packages: ./x\n"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = ParseConfig(strings.NewReader("suffix: \"\"\n"))
	assert.EqualError(t, err, "suffix must not be empty")
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "beankit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unexported: false\nsuffix: _props.go\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.IncludeUnexported)
	assert.Equal(t, "_props.go", cfg.FileSuffix)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFiles(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	files := []GeneratedFile{
		{Filename: "a_bag.go", Dir: dir, Content: []byte("package a\n")},
		{Filename: "b_bag.go", Dir: dir, Content: []byte("package a\n\n// b\n")},
	}

	paths, err := WriteFiles(files)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a_bag.go"), filepath.Join(dir, "b_bag.go")}, paths)

	got, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, "package a\n\n// b\n", string(got))

	_, err = WriteFiles([]GeneratedFile{{Filename: "c_bag.go"}})
	assert.EqualError(t, err, "no output directory for c_bag.go")
}
