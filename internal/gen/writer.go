package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes every generated file into its directory, creating the
// directory when needed. It returns the paths written.
func WriteFiles(files []GeneratedFile) ([]string, error) {
	paths := make([]string, 0, len(files))

	for _, file := range files {
		if file.Dir == "" {
			return paths, fmt.Errorf("no output directory for %s", file.Filename)
		}

		if err := os.MkdirAll(file.Dir, dirPerm); err != nil {
			return paths, fmt.Errorf("creating output directory: %w", err)
		}

		outputPath := filepath.Join(file.Dir, file.Filename)
		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return paths, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		paths = append(paths, outputPath)
	}

	return paths, nil
}
