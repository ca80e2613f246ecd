package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"beankit/internal/analyze"
	"beankit/internal/diagnostic"
	"beankit/internal/gen"
)

func genCmd(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("gen", stderr)

	var pkg, typesCSV, configPath, out string
	var noComments bool
	fs.StringVar(&pkg, "pkg", "", "package pattern holding the types (default \".\")")
	fs.StringVar(&typesCSV, "type", "", "comma-separated struct types (default: all)")
	fs.StringVar(&configPath, "config", "", "YAML generator configuration")
	fs.StringVar(&out, "o", "", "write the files to this directory instead of the package directory")
	fs.BoolVar(&noComments, "nocomments", false, "leave doc comments out of the generated code")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := gen.DefaultGeneratorConfig()
	if configPath != "" {
		loaded, err := gen.LoadConfig(configPath)
		if err != nil {
			return err
		}

		cfg = loaded
	}

	// flags win over the configuration file
	if pkg != "" {
		cfg.Package = pkg
	}

	if typesCSV != "" {
		cfg.Types = splitCSV(typesCSV)
	}

	if out != "" {
		cfg.OutputDir = out
	}

	if noComments {
		cfg.GenerateComments = false
	}

	graph, err := analyze.NewAnalyzer().LoadPackages(cfg.Package)
	if err != nil {
		return err
	}

	if len(graph.Packages) != 1 {
		return fmt.Errorf("pattern %s matched %d packages, want 1", cfg.Package, len(graph.Packages))
	}

	var pkgPath string
	for path := range graph.Packages {
		pkgPath = path
	}

	files, diags, err := gen.NewGenerator(cfg).Generate(graph, pkgPath)
	if err != nil {
		return err
	}

	reportDiagnostics(stderr, diags)

	paths, err := gen.WriteFiles(files)
	if err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Fprintln(stdout, p)
	}

	if diags.HasErrors() {
		return fmt.Errorf("generation incomplete: %w", diags.Error())
	}

	return nil
}

func reportDiagnostics(w io.Writer, diags *diagnostic.Diagnostics) {
	logger := log.New(w, "beankit: ", 0)
	for _, d := range diagnostic.Sorted(diags.All()) {
		logger.Printf("%s: %s", d.Severity, d)
	}
}

func splitCSV(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
