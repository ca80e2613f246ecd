package introspect

import (
	"reflect"
	"strings"

	"beankit/fault"
)

const nilShapeName = "<nil>"

// Shape is the structural description of a struct type.
type Shape struct {
	typ reflect.Type // struct type
	ptr reflect.Type // pointer to typ, carries the full method set
}

// ShapeOf returns the shape of obj. Pointers are dereferenced until a struct
// type is reached; the pointers themselves may be nil.
func ShapeOf(obj any) (Shape, error) {
	t := reflect.TypeOf(obj)
	if t == nil {
		return Shape{}, fault.Validation(nilShapeName, "", "object must not be nil")
	}

	return ShapeOfType(t)
}

// ShapeFor returns the shape of T.
func ShapeFor[T any]() (Shape, error) {
	return ShapeOfType(reflect.TypeFor[T]())
}

// ShapeOfType returns the shape of t, dereferencing pointer types.
func ShapeOfType(t reflect.Type) (Shape, error) {
	if t == nil {
		return Shape{}, fault.Validation(nilShapeName, "", "object must not be nil")
	}

	base := baseType(t)
	if base.Kind() != reflect.Struct {
		return Shape{}, fault.Validation(t.String(), "", "%s is not a struct", t)
	}

	return Shape{typ: base, ptr: reflect.PointerTo(base)}, nil
}

// Name returns the package-qualified type name, e.g. "people.Person".
func (s Shape) Name() string {
	if s.typ == nil {
		return nilShapeName
	}

	return s.typ.String()
}

// Type returns the struct type the shape describes.
func (s Shape) Type() reflect.Type {
	return s.typ
}

// FieldNames returns the declared field names in declaration order.
func (s Shape) FieldNames() []string {
	if s.typ == nil {
		return nil
	}

	names := make([]string, 0, s.typ.NumField())
	for i := range s.typ.NumField() {
		names = append(names, s.typ.Field(i).Name)
	}

	return names
}

// MethodNames returns the exported methods of the pointer method set, sorted.
func (s Shape) MethodNames() []string {
	if s.ptr == nil {
		return nil
	}

	names := make([]string, 0, s.ptr.NumMethod())
	for i := range s.ptr.NumMethod() {
		names = append(names, s.ptr.Method(i).Name)
	}

	return names
}

// Field returns the declared field with exactly the given name.
func (s Shape) Field(name string) (reflect.StructField, bool) {
	i := s.fieldIndex(name)
	if i < 0 {
		return reflect.StructField{}, false
	}

	return s.typ.Field(i), true
}

// fieldIndex scans declared fields only; promoted fields are not properties.
func (s Shape) fieldIndex(name string) int {
	if s.typ == nil {
		return -1
	}

	for i := range s.typ.NumField() {
		if s.typ.Field(i).Name == name {
			return i
		}
	}

	return -1
}

// HasProperty fails with fault.ErrValidation when name is blank or the shape
// declares no field with exactly that name.
func HasProperty(s Shape, name string) error {
	if isBlank(name) {
		return fault.Validation(s.Name(), name, "property name must not be empty")
	}

	if s.fieldIndex(name) < 0 {
		return fault.Validation(s.Name(), name, "no property named %s on %s", name, s.Name())
	}

	return nil
}

// HasPropertyOf checks name against the shape of obj. A PropertyBag is asked
// for its property names instead of being inspected.
func HasPropertyOf(obj any, name string) error {
	if bag, ok := obj.(PropertyBag); ok {
		return hasBagProperty(bag, name)
	}

	s, err := ShapeOf(obj)
	if err != nil {
		return err
	}

	return HasProperty(s, name)
}

func hasBagProperty(bag PropertyBag, name string) error {
	shape := TypeName(bag)
	if isBlank(name) {
		return fault.Validation(shape, name, "property name must not be empty")
	}

	for _, n := range bag.PropertyNames() {
		if n == name {
			return nil
		}
	}

	return fault.Validation(shape, name, "no property named %s on %s", name, shape)
}

// TypeName returns the dynamic type name of obj for use in messages.
func TypeName(obj any) string {
	t := reflect.TypeOf(obj)
	if t == nil {
		return nilShapeName
	}

	return baseType(t).String()
}

func baseType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t
}

func isBlank(name string) bool {
	return strings.TrimSpace(name) == ""
}
