package introspect

import (
	"math"
	"reflect"
)

// Coerce prepares value for storage in a location of type t.
//
// nil yields the zero value of t. Values assignable to t are used as they are.
// Numbers are converted between numeric kinds when the conversion round-trips,
// so an int decoded from a document fits an int64 field but 9.5 does not fit
// an int. NaN fits float properties only. Everything else is rejected.
func Coerce(value any, t reflect.Type) (reflect.Value, bool) {
	if value == nil {
		return reflect.Zero(t), true
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(t) {
		return v, true
	}

	if !isNumeric(v.Kind()) || !isNumeric(t.Kind()) {
		return reflect.Value{}, false
	}

	converted := v.Convert(t)
	if v.CanFloat() && math.IsNaN(v.Float()) {
		// NaN never equals itself; it survives conversion between float kinds only
		if !converted.CanFloat() {
			return reflect.Value{}, false
		}

		return converted, true
	}

	if converted.Convert(v.Type()).Interface() != v.Interface() {
		return reflect.Value{}, false
	}

	return converted, true
}

// Convert is the typed form of Coerce used by generated property bags.
func Convert[T any](value any) (T, bool) {
	if v, ok := value.(T); ok {
		return v, true
	}

	var zero T

	t := reflect.TypeFor[T]()

	v, ok := Coerce(value, t)
	if !ok {
		return zero, false
	}

	p := reflect.New(t)
	p.Elem().Set(v)

	return *p.Interface().(*T), true
}

// IsNilable reports whether values of t can be nil.
func IsNilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
