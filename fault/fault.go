// Package fault defines the error kinds reported by the property access engine.
//
// Every failure is a *PropertyError whose Kind is one of the sentinel errors
// below, so callers can branch with errors.Is and recover the offending shape,
// property and batch index with errors.As.
package fault

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation reports a blank or unknown property name, a missing accessor
	// or an object the engine cannot inspect.
	ErrValidation = errors.New("validation failed")
	// ErrNullProperty reports a property that exists but holds no value.
	ErrNullProperty = errors.New("property is absent")
	// ErrTypeMismatch reports a value whose type does not fit the declared field type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInstantiation reports a shape that cannot be default-constructed.
	ErrInstantiation = errors.New("instantiation failed")
)

// NoIndex marks an error that did not originate from a batch element.
const NoIndex = -1

// PropertyError describes a single failed property operation.
type PropertyError struct {
	Kind     error  // one of the sentinel errors above
	Shape    string // type name of the inspected object, if known
	Property string // property name, if any
	Index    int    // element position inside a batch, NoIndex otherwise
	Message  string
	Cause    error
}

func (e *PropertyError) Error() string {
	var b strings.Builder

	b.WriteString(e.Message)

	if e.Index != NoIndex {
		fmt.Fprintf(&b, " (element %d)", e.Index)
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *PropertyError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Cause}
}

func newError(kind error, shape, property, format string, args ...any) *PropertyError {
	return &PropertyError{
		Kind:     kind,
		Shape:    shape,
		Property: property,
		Index:    NoIndex,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Validation builds an ErrValidation error.
func Validation(shape, property, format string, args ...any) *PropertyError {
	return newError(ErrValidation, shape, property, format, args...)
}

// NullProperty builds an ErrNullProperty error for property on shape.
func NullProperty(shape, property string) *PropertyError {
	return newError(ErrNullProperty, shape, property, "property %s of %s is absent", property, shape)
}

// TypeMismatch builds an ErrTypeMismatch error.
func TypeMismatch(shape, property string, want, got any) *PropertyError {
	return newError(ErrTypeMismatch, shape, property,
		"value of type %v does not match type %v of property %s on %s", got, want, property, shape)
}

// Instantiation builds an ErrInstantiation error.
func Instantiation(shape string, cause error) *PropertyError {
	e := newError(ErrInstantiation, shape, "", "cannot create a default instance of %s", shape)
	e.Cause = cause

	return e
}

// AtIndex stamps a batch position onto err. Errors that are not
// *PropertyError are wrapped so the position is never lost.
func AtIndex(err error, index int) error {
	if err == nil {
		return nil
	}

	var pe *PropertyError
	if errors.As(err, &pe) {
		stamped := *pe
		stamped.Index = index

		return &stamped
	}

	return fmt.Errorf("element %d: %w", index, err)
}

// Is reports whether err is a *PropertyError of the given kind.
func Is(err, kind error) bool {
	var pe *PropertyError
	if !errors.As(err, &pe) {
		return false
	}

	return pe.Kind == kind
}
