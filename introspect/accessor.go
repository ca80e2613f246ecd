package introspect

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"beankit/fault"
)

const accessorPrefix = "Get"

// FindAccessor scans the method set of s for an accessor of name.
//
// A method matches when it starts with "Get" and the two characters after the
// leading "G", lower-cased, equal name. Because those characters are always
// "et", only a property named "et" is ever matched; GetName is not found for
// "name". FindGetter implements the Get<Name> convention.
func FindAccessor(s Shape, name string) (reflect.Method, bool) {
	if s.ptr == nil {
		return reflect.Method{}, false
	}

	for i := range s.ptr.NumMethod() {
		m := s.ptr.Method(i)
		if MatchesAccessor(m.Name, name) {
			return m, true
		}
	}

	return reflect.Method{}, false
}

// MatchesAccessor reports whether method passes the FindAccessor rule for name.
func MatchesAccessor(method, name string) bool {
	return strings.HasPrefix(method, accessorPrefix) && strings.ToLower(method[1:3]) == name
}

// RequireAccessor fails with fault.ErrValidation when FindAccessor finds nothing.
func RequireAccessor(s Shape, name string) error {
	if _, ok := FindAccessor(s, name); !ok {
		return fault.Validation(s.Name(), name, "%s has no get method for %s", s.Name(), name)
	}

	return nil
}

// FindGetter looks up the Get<Name> accessor of name: a method taking no
// arguments and returning one value, named "Get" followed by name with its
// first letter in upper or lower case.
func FindGetter(s Shape, name string) (reflect.Method, bool) {
	if s.ptr == nil || isBlank(name) {
		return reflect.Method{}, false
	}

	for i := range s.ptr.NumMethod() {
		m := s.ptr.Method(i)
		if isGetterSignature(m) && MatchesGetter(m.Name, name) {
			return m, true
		}
	}

	return reflect.Method{}, false
}

// MatchesGetter reports whether method is named Get<name>. The signature is
// not checked.
func MatchesGetter(method, name string) bool {
	suffix, ok := strings.CutPrefix(method, accessorPrefix)

	return ok && sameIgnoringFirstCase(suffix, name)
}

// RequireGetter fails with fault.ErrValidation when FindGetter finds nothing.
func RequireGetter(s Shape, name string) error {
	if _, ok := FindGetter(s, name); !ok {
		return fault.Validation(s.Name(), name, "%s has no get method for %s", s.Name(), name)
	}

	return nil
}

// CallGetter invokes the getter m on obj and returns its result.
// obj may be a struct value or a (non-nil) pointer to one.
func CallGetter(obj any, m reflect.Method) (any, error) {
	if !isGetterSignature(m) {
		return nil, fault.Validation(TypeName(obj), m.Name, "method %s is not a getter", m.Name)
	}

	recvType := m.Type.In(0)

	recv := reflect.ValueOf(obj)
	if !recv.IsValid() {
		return nil, fault.Validation(nilShapeName, m.Name, "object must not be nil")
	}

	for recv.Kind() == reflect.Ptr && recv.Type() != recvType {
		if recv.IsNil() {
			return nil, fault.Validation(TypeName(obj), m.Name, "object must not be nil")
		}

		recv = recv.Elem()
	}

	if recv.Kind() == reflect.Ptr && recv.IsNil() {
		return nil, fault.Validation(TypeName(obj), m.Name, "object must not be nil")
	}

	if recv.Type() != recvType {
		if reflect.PointerTo(recv.Type()) != recvType {
			return nil, fault.Validation(TypeName(obj), m.Name, "%s is not declared on %s", m.Name, TypeName(obj))
		}

		p := reflect.New(recv.Type())
		p.Elem().Set(recv)
		recv = p
	}

	return m.Func.Call([]reflect.Value{recv})[0].Interface(), nil
}

// isGetterSignature expects a method expression: the receiver is the only input.
func isGetterSignature(m reflect.Method) bool {
	return m.Type != nil && m.Type.NumIn() == 1 && m.Type.NumOut() == 1
}

func sameIgnoringFirstCase(a, b string) bool {
	ra, na := utf8.DecodeRuneInString(a)
	rb, nb := utf8.DecodeRuneInString(b)
	if ra == utf8.RuneError || rb == utf8.RuneError {
		return false
	}

	return unicode.ToLower(ra) == unicode.ToLower(rb) && a[na:] == b[nb:]
}
