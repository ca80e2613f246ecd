package bean

import (
	"fmt"
	"reflect"

	"beankit/fault"
	"beankit/introspect"
)

// SetValue stores value into the property name of obj and returns obj.
//
// The dynamic type of value must be exactly the declared type of the property:
// an int is rejected for an int64 field and a string for an any field. nil is
// accepted only for properties that can hold nil. On failure the property is
// left untouched. obj must be a pointer unless it is a PropertyBag.
func SetValue[T any](obj T, name string, value any) (T, error) {
	if err := introspect.HasPropertyOf(obj, name); err != nil {
		return obj, err
	}

	bag, err := introspect.BagOf(obj)
	if err != nil {
		return obj, err
	}

	want, _ := bag.PropertyType(name)
	if err := checkExactType(introspect.TypeName(obj), name, want, value); err != nil {
		return obj, err
	}

	if err := bag.SetProperty(name, value); err != nil {
		return obj, err
	}

	return obj, nil
}

// SetProperties writes values[name] into obj for every name in names and
// returns obj. A name without an entry in values resets the property to its
// zero value. The exact type check of SetValue is not applied; values are
// stored when Go can store them without loss.
//
// When values is empty, obj is left alone and a new default instance of its
// type is returned instead.
func SetProperties[T any](obj T, names []string, values map[string]any) (T, error) {
	if len(values) == 0 {
		return NewInstance(obj)
	}

	bag, err := introspect.BagOf(obj)
	if err != nil {
		return obj, err
	}

	for _, name := range names {
		if err := introspect.HasPropertyOf(obj, name); err != nil {
			return obj, err
		}

		if err := bag.SetProperty(name, values[name]); err != nil {
			return obj, err
		}
	}

	return obj, nil
}

// NewInstance returns a zero value of the type of obj. For pointer types every
// pointer level is allocated, so the result never aliases obj.
func NewInstance[T any](obj T) (T, error) {
	var zero T

	t := reflect.TypeOf(obj)
	if t == nil {
		t = reflect.TypeFor[T]()
	}

	if t.Kind() == reflect.Interface {
		return zero, fault.Instantiation(t.String(), fmt.Errorf("no concrete type behind %s", t))
	}

	depth := 0

	base := t
	for base.Kind() == reflect.Ptr {
		base = base.Elem()
		depth++
	}

	if base.Kind() != reflect.Struct {
		return zero, fault.Instantiation(t.String(), fmt.Errorf("%s is not a struct", base))
	}

	v := reflect.New(base).Elem()
	for range depth {
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		v = p
	}

	out, ok := v.Interface().(T)
	if !ok {
		return zero, fault.Instantiation(t.String(), fmt.Errorf("%s does not implement %s", t, reflect.TypeFor[T]()))
	}

	return out, nil
}

func checkExactType(shape, name string, want reflect.Type, value any) error {
	if value == nil {
		if want != nil && introspect.IsNilable(want) {
			return nil
		}

		return fault.TypeMismatch(shape, name, want, "nil")
	}

	if got := reflect.TypeOf(value); got != want {
		return fault.TypeMismatch(shape, name, want, got)
	}

	return nil
}
