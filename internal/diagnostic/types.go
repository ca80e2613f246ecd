package diagnostic

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Codes reported by the generator.
const (
	CodeTypeNotFound    = "type-not-found"
	CodeGenericType     = "generic-type"
	CodeUnnameableField = "unnameable-field"
	CodeUnexportedField = "unexported-field"
	CodeMethodCollision = "method-collision"
	CodeNoProperties    = "no-properties"
	CodeExistingBag     = "existing-bag"
)

// Diagnostics holds everything reported during one generator run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity Severity
	// Code identifies the kind of finding.
	Code    string
	Message string
	// Type is the shape name the finding is about, e.g. "people.Person".
	Type string
	// Field is the property involved, if any.
	Field string
}

// Severity is the level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError records an error; generation of the type is abandoned.
func (d *Diagnostics) AddError(code, typ, field, format string, args ...any) {
	d.Errors = append(d.Errors, newDiagnostic(SeverityError, code, typ, field, format, args...))
}

// AddWarning records a warning; the field or type is skipped.
func (d *Diagnostics) AddWarning(code, typ, field, format string, args ...any) {
	d.Warnings = append(d.Warnings, newDiagnostic(SeverityWarning, code, typ, field, format, args...))
}

// AddInfo records a note that does not change the output.
func (d *Diagnostics) AddInfo(code, typ, field, format string, args ...any) {
	d.Infos = append(d.Infos, newDiagnostic(SeverityInfo, code, typ, field, format, args...))
}

func newDiagnostic(sev Severity, code, typ, field, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Type:     typ,
		Field:    field,
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// All yields errors, then warnings, then infos.
func (d *Diagnostics) All() iter.Seq[Diagnostic] {
	return func(yield func(Diagnostic) bool) {
		for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
			for _, diag := range group {
				if !yield(diag) {
					return
				}
			}
		}
	}
}

// Codes returns the codes of all diagnostics in the order All yields them.
func (d *Diagnostics) Codes() []string {
	var codes []string
	for diag := range d.All() {
		codes = append(codes, diag.Code)
	}

	return codes
}

// Error returns a combined error from all error diagnostics, or nil.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns the diagnostic as "[Type] Field: [code] message".
func (d Diagnostic) String() string {
	var prefix []string
	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// Sorted returns the diagnostics ordered by type, field and code.
func Sorted(diags iter.Seq[Diagnostic]) []Diagnostic {
	return slices.SortedStableFunc(diags, func(a, b Diagnostic) int {
		if c := strings.Compare(a.Type, b.Type); c != 0 {
			return c
		}

		if c := strings.Compare(a.Field, b.Field); c != 0 {
			return c
		}

		return strings.Compare(a.Code, b.Code)
	})
}
