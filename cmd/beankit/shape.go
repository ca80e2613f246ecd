package main

import (
	"fmt"
	"go/types"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"

	"beankit/internal/analyze"
)

type shapeReport struct {
	Type    string
	Fields  []fieldReport
	Methods []string
}

type fieldReport struct {
	Name     string
	Type     string
	Exported bool
	Getter   string // Get<Name> method, if any
	Accessor string // method the literal accessor rule picks, if any
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func shapeCmd(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("shape", stderr)

	var pkg, typesCSV string
	var verbose bool
	fs.StringVar(&pkg, "pkg", ".", "package pattern holding the types")
	fs.StringVar(&typesCSV, "type", "", "comma-separated struct types (default: all)")
	fs.BoolVar(&verbose, "v", false, "dump the full report")

	if err := fs.Parse(args); err != nil {
		return err
	}

	graph, err := analyze.NewAnalyzer().LoadPackages(pkg)
	if err != nil {
		return err
	}

	reports, err := buildShapeReports(graph, splitCSV(typesCSV))
	if err != nil {
		return err
	}

	if verbose {
		dumper.Fdump(stdout, reports)
		return nil
	}

	return printShapeReports(stdout, reports)
}

// buildShapeReports covers the named types, or every struct when names is empty.
func buildShapeReports(graph *analyze.TypeGraph, names []string) ([]shapeReport, error) {
	var infos []*analyze.StructInfo
	for _, s := range graph.Structs {
		if len(names) == 0 || slices.Contains(names, s.ID.Name) {
			infos = append(infos, s)
		}
	}

	for _, name := range names {
		if !slices.ContainsFunc(infos, func(s *analyze.StructInfo) bool { return s.ID.Name == name }) {
			return nil, fmt.Errorf("no struct type %s in the loaded packages", name)
		}
	}

	slices.SortFunc(infos, func(a, b *analyze.StructInfo) int {
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	reports := make([]shapeReport, 0, len(infos))
	for _, s := range infos {
		r := shapeReport{Type: s.ShapeName()}

		for _, f := range s.Fields {
			fr := fieldReport{
				Name:     f.Name,
				Type:     types.TypeString(f.Type, (*types.Package).Name),
				Exported: f.Exported,
			}

			if m, ok := s.Getter(f.Name); ok {
				fr.Getter = m.Name
			}

			if m, ok := s.Accessor(f.Name); ok {
				fr.Accessor = m.Name
			}

			r.Fields = append(r.Fields, fr)
		}

		for _, m := range s.Methods {
			r.Methods = append(r.Methods, m.Name)
		}

		reports = append(reports, r)
	}

	return reports, nil
}

func printShapeReports(w io.Writer, reports []shapeReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(tw)
		}

		fmt.Fprintln(tw, r.Type)
		fmt.Fprintln(tw, "  PROPERTY\tTYPE\tGETTER\tACCESSOR")

		for _, f := range r.Fields {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", f.Name, f.Type, orDash(f.Getter), orDash(f.Accessor))
		}
	}

	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
