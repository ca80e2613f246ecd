// Package bean reads, validates and writes named properties of record-like
// values through the introspect package.
//
// A property value is absent when it is nil: an untyped nil or a nil pointer,
// interface, map, slice, channel or function. Zero numbers, empty strings and
// zero structs are present values.
package bean

import (
	"iter"
	"reflect"
	"slices"

	"beankit/fault"
	"beankit/introspect"
)

// GetValue returns the current value of the property name of obj, read
// directly from the field (accessor methods are not called).
func GetValue(obj any, name string) (any, error) {
	if err := introspect.HasPropertyOf(obj, name); err != nil {
		return nil, err
	}

	bag, err := introspect.BagOf(obj)
	if err != nil {
		return nil, err
	}

	v, _ := bag.Property(name)

	return v, nil
}

// IsAbsent reports whether v carries no value.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	return introspect.IsNilable(rv.Type()) && rv.IsNil()
}

// RequireNonAbsent fails with fault.ErrNullProperty when the property name of
// obj is absent, and with fault.ErrValidation when obj has no such property.
func RequireNonAbsent(obj any, name string) error {
	v, err := GetValue(obj, name)
	if err != nil {
		return err
	}

	if IsAbsent(v) {
		return fault.NullProperty(introspect.TypeName(obj), name)
	}

	return nil
}

// RequireNonAbsentAll applies RequireNonAbsent to each name in order and
// reports the first failure. No names is a success.
func RequireNonAbsentAll(obj any, names []string) error {
	return RequireNonAbsentAllSeq(obj, slices.Values(names))
}

// RequireNonAbsentAllSeq is RequireNonAbsentAll over a sequence of names.
func RequireNonAbsentAllSeq(obj any, names iter.Seq[string]) error {
	if names == nil {
		return nil
	}

	for name := range names {
		if err := RequireNonAbsent(obj, name); err != nil {
			return err
		}
	}

	return nil
}
