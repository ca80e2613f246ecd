package gen

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Package is the package pattern to load, e.g. "./examples/people".
	Package string `yaml:"package"`
	// Types lists the struct types to cover. Empty means every struct of Package.
	Types []string `yaml:"types"`
	// OutputDir overrides the directory the files are written to. Generated
	// code belongs to the package of its type, so this is meant for previews.
	OutputDir string `yaml:"output"`
	// FileSuffix is appended to the lower-cased type name to form the file name.
	FileSuffix string `yaml:"suffix"`
	// GenerateComments adds doc comments to the generated methods.
	GenerateComments bool `yaml:"comments"`
	// IncludeUnexported exposes unexported fields as properties.
	IncludeUnexported bool `yaml:"unexported"`
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Package:           ".",
		FileSuffix:        "_bag.go",
		GenerateComments:  true,
		IncludeUnexported: true,
	}
}

// LoadConfig reads a YAML generator configuration from path. Keys missing from
// the file keep their default values.
func LoadConfig(path string) (GeneratorConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return GeneratorConfig{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return ParseConfig(f)
}

// ParseConfig decodes a YAML generator configuration. Unknown keys are rejected.
func ParseConfig(r io.Reader) (GeneratorConfig, error) {
	cfg := DefaultGeneratorConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return GeneratorConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.FileSuffix == "" {
		return GeneratorConfig{}, errors.New("suffix must not be empty")
	}

	return cfg, nil
}
