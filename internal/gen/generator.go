package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/types"
	"slices"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"beankit/internal/analyze"
	"beankit/internal/diagnostic"
)

// bagMethods are the methods every generated bag declares.
var bagMethods = []string{"PropertyNames", "PropertyType", "Property", "SetProperty"}

// Generator renders property bag adapters from an analyzed type graph.
type Generator struct {
	config GeneratorConfig
	diags  *diagnostic.Diagnostics
}

// NewGenerator creates a new Generator.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "person_bag.go").
	Filename string
	// Dir is the directory the file belongs in.
	Dir string
	// Type is the struct the file covers.
	Type analyze.TypeID
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders one file per requested struct of the package at pkgPath.
// Types reported as errors in the returned diagnostics get no file; the error
// result is reserved for failures of the generator itself.
func (g *Generator) Generate(graph *analyze.TypeGraph, pkgPath string) ([]GeneratedFile, *diagnostic.Diagnostics, error) {
	g.diags = &diagnostic.Diagnostics{}

	pkg, ok := graph.Packages[pkgPath]
	if !ok {
		return nil, nil, fmt.Errorf("package %s was not loaded", pkgPath)
	}

	names := g.config.Types
	if len(names) == 0 {
		for _, id := range pkg.Structs {
			names = append(names, id.Name)
		}
	}

	var files []GeneratedFile
	for _, name := range names {
		info := graph.GetStruct(analyze.TypeID{PkgPath: pkgPath, Name: name})
		if info == nil {
			g.diags.AddError(diagnostic.CodeTypeNotFound, pkg.Name+"."+name, "",
				"no struct type %s in %s", name, pkgPath)

			continue
		}

		data, ok := g.buildTemplateData(pkg, info)
		if !ok {
			continue
		}

		file, err := g.render(data)
		if err != nil {
			return nil, g.diags, fmt.Errorf("generating %s: %w", info.ID, err)
		}

		file.Dir = pkg.Dir
		if g.config.OutputDir != "" {
			file.Dir = g.config.OutputDir
		}

		file.Type = info.ID
		files = append(files, *file)
	}

	return files, g.diags, nil
}

type templateData struct {
	Filename    string
	PackageName string
	StdImports  []importSpec
	Imports     []importSpec
	TypeName    string
	ShapeName   string
	Receiver    string
	Comments    bool
	Properties  []property
	Reflect     string
	Fault       string
	Introspect  string
}

type property struct {
	Name string
	Type string
}

// buildTemplateData reports false when the type is skipped.
func (g *Generator) buildTemplateData(pkg *analyze.PackageInfo, info *analyze.StructInfo) (*templateData, bool) {
	shape := info.ShapeName()

	if info.Generic {
		g.diags.AddWarning(diagnostic.CodeGenericType, shape, "",
			"generic types are not supported, %s goes through reflection", shape)

		return nil, false
	}

	filename := g.filename(info)
	if !g.checkCollisions(info, filename) {
		return nil, false
	}

	receiver := receiverName(info.ID.Name)
	imports := newImportSet(pkg.Types, pkg.Module, receiver, "name", "value", "converted", "ok")

	data := &templateData{
		Filename:    filename,
		PackageName: pkg.Name,
		TypeName:    info.ID.Name,
		ShapeName:   shape,
		Receiver:    receiver,
		Comments:    g.config.GenerateComments,
	}

	for _, f := range info.Fields {
		switch {
		case f.Name == "_":
			continue
		case !f.Exported && !g.config.IncludeUnexported:
			g.diags.AddInfo(diagnostic.CodeUnexportedField, shape, f.Name,
				"unexported field left out of the bag")

			continue
		case !analyze.Nameable(f.Type, pkg.Types):
			g.diags.AddWarning(diagnostic.CodeUnnameableField, shape, f.Name,
				"type %s cannot be named in package %s, field left out of the bag",
				types.TypeString(f.Type, nil), pkg.Name)

			continue
		}

		data.Properties = append(data.Properties, property{
			Name: f.Name,
			Type: types.TypeString(f.Type, imports.qualifier),
		})
	}

	if len(data.Properties) == 0 {
		g.diags.AddWarning(diagnostic.CodeNoProperties, shape, "", "the bag of %s has no properties", shape)
	}

	data.Reflect = imports.Name(reflectPath)
	data.Fault = imports.Name(faultPath)
	data.Introspect = imports.Name(introspectPath)
	data.StdImports, data.Imports = imports.groups()

	return data, true
}

// checkCollisions rejects types whose fields or own methods would clash with
// the generated methods. Methods declared in the file being regenerated are
// expected.
func (g *Generator) checkCollisions(info *analyze.StructInfo, filename string) bool {
	shape := info.ShapeName()
	ok := true

	for _, f := range info.Fields {
		if slices.Contains(bagMethods, f.Name) {
			g.diags.AddError(diagnostic.CodeMethodCollision, shape, f.Name,
				"field %s collides with the bag method of the same name", f.Name)

			ok = false
		}
	}

	for _, name := range bagMethods {
		m, found := info.Method(name)
		if !found || m.Promoted || m.File == filename {
			continue
		}

		g.diags.AddError(diagnostic.CodeExistingBag, shape, "",
			"%s already declares %s in %s", shape, name, m.File)

		ok = false
	}

	return ok
}

func (g *Generator) render(data *templateData) (*GeneratedFile, error) {
	var buf bytes.Buffer
	if err := bagTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Return unformatted code for debugging
		return &GeneratedFile{
			Filename: data.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: data.Filename,
		Content:  formatted,
	}, nil
}

func (g *Generator) filename(info *analyze.StructInfo) string {
	return strings.ToLower(info.ID.Name) + g.config.FileSuffix
}

// receiverName is the lower-cased first letter of the type name.
func receiverName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "r"
	}

	return string(unicode.ToLower(r))
}

var bagTemplate = template.Must(template.New("bag").Parse(`// Code generated by beankit gen. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .StdImports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}}
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

var _ {{.Introspect}}.PropertyBag = (*{{.TypeName}})(nil)
{{$r := .Receiver}}{{$t := .TypeName}}{{$reflect := .Reflect}}{{$shape := .ShapeName}}
{{if .Comments}}// PropertyNames lists the properties of {{.TypeName}} in declaration order.
{{end}}func ({{$r}} *{{$t}}) PropertyNames() []string {
	return []string{ {{- range $i, $p := .Properties}}{{if $i}}, {{end}}{{printf "%q" $p.Name}}{{end -}} }
}

{{if .Comments}}// PropertyType returns the declared type of the property called name.
{{end}}func ({{$r}} *{{$t}}) PropertyType(name string) ({{$reflect}}.Type, bool) {
	switch name {
{{- range .Properties}}
	case {{printf "%q" .Name}}:
		return {{$reflect}}.TypeFor[{{.Type}}](), true
{{- end}}
	default:
		return nil, false
	}
}

{{if .Comments}}// Property returns the value of the property called name.
{{end}}func ({{$r}} *{{$t}}) Property(name string) (any, bool) {
	switch name {
{{- range .Properties}}
	case {{printf "%q" .Name}}:
		return {{$r}}.{{.Name}}, true
{{- end}}
	default:
		return nil, false
	}
}

{{if .Comments}}// SetProperty stores value in the property called name. Values that convert
// to the property type without loss are accepted and nil stores the zero value.
{{end}}func ({{$r}} *{{$t}}) SetProperty(name string, value any) error {
	switch name {
{{- range .Properties}}
	case {{printf "%q" .Name}}:
		converted, ok := {{$.Introspect}}.Convert[{{.Type}}](value)
		if !ok {
			return {{$.Fault}}.TypeMismatch({{printf "%q" $shape}}, name, {{$reflect}}.TypeFor[{{.Type}}](), {{$reflect}}.TypeOf(value))
		}

		{{$r}}.{{.Name}} = converted
{{- end}}
	default:
		return {{.Fault}}.Validation({{printf "%q" $shape}}, name, "no property named %s on %s", name, {{printf "%q" $shape}})
	}

	return nil
}
`))
