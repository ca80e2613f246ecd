package introspect

import (
	"reflect"
	"unsafe"

	"beankit/fault"
)

// PropertyBag exposes the properties of a record by name.
//
// Property reports false when the bag has no property called name.
// SetProperty stores value without checking that its type is exactly the
// declared one; values that can be stored without loss are accepted and nil
// resets the property to its zero value.
type PropertyBag interface {
	PropertyNames() []string
	PropertyType(name string) (reflect.Type, bool)
	Property(name string) (any, bool)
	SetProperty(name string, value any) error
}

// BagOf returns obj when it implements PropertyBag, or ReflectBag(obj).
func BagOf(obj any) (PropertyBag, error) {
	if bag, ok := obj.(PropertyBag); ok {
		if v := reflect.ValueOf(obj); v.Kind() == reflect.Ptr && v.IsNil() {
			return nil, fault.Validation(TypeName(obj), "", "object must not be nil")
		}

		return bag, nil
	}

	return ReflectBag(obj)
}

// ReflectBag returns a reflection-backed bag over the struct obj points to,
// even when obj implements PropertyBag itself. Writes through it need obj to
// be a pointer.
func ReflectBag(obj any) (PropertyBag, error) {
	v := reflect.ValueOf(obj)
	if !v.IsValid() {
		return nil, fault.Validation(nilShapeName, "", "object must not be nil")
	}

	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fault.Validation(TypeName(obj), "", "object must not be nil")
		}

		v = v.Elem()
	}

	s, err := ShapeOfType(v.Type())
	if err != nil {
		return nil, err
	}

	return &structBag{shape: s, value: v}, nil
}

type structBag struct {
	shape Shape
	value reflect.Value
}

func (b *structBag) PropertyNames() []string {
	return b.shape.FieldNames()
}

func (b *structBag) PropertyType(name string) (reflect.Type, bool) {
	f, ok := b.shape.Field(name)
	if !ok {
		return nil, false
	}

	return f.Type, true
}

func (b *structBag) Property(name string) (any, bool) {
	i := b.shape.fieldIndex(name)
	if i < 0 {
		return nil, false
	}

	v := b.value
	if !v.CanAddr() {
		// unexported fields can only be opened up through an address
		cp := reflect.New(v.Type()).Elem()
		cp.Set(v)
		v = cp
	}

	return accessible(v.Field(i)).Interface(), true
}

func (b *structBag) SetProperty(name string, value any) error {
	i := b.shape.fieldIndex(name)
	if i < 0 {
		return fault.Validation(b.shape.Name(), name, "no property named %s on %s", name, b.shape.Name())
	}

	if !b.value.CanAddr() {
		return fault.Validation(b.shape.Name(), name, "%s is not addressable, pass a pointer", b.shape.Name())
	}

	field := accessible(b.value.Field(i))

	nv, ok := Coerce(value, field.Type())
	if !ok {
		return fault.TypeMismatch(b.shape.Name(), name, field.Type(), reflect.TypeOf(value))
	}

	field.Set(nv)

	return nil
}

// accessible lifts the read-only flag reflect puts on unexported fields.
func accessible(field reflect.Value) reflect.Value {
	if field.CanInterface() || !field.CanAddr() {
		return field
	}

	return reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
}
