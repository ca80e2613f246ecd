// Package introspect answers structural questions about record-like Go values:
// which properties a value declares, whether a conventionally named accessor
// exists for a property, and how a property can be read or written.
//
// It is the only package in beankit that looks at runtime type information.
// Nothing is cached: every call re-resolves the shape of the value it is given.
//
// # Shapes
//
// A Shape describes a struct type. Its properties are the fields declared
// directly on the struct, exported or not, in declaration order. Embedded
// fields are properties named after their type; fields promoted from them are
// not. Its methods are the exported methods of the pointer method set.
//
// # Accessors
//
// Two accessor lookups exist side by side:
//
//   - FindAccessor keeps the historical matching rule, which compares the two
//     characters that follow the leading "G" of a "Get..." method with the
//     property name. Only a property literally named "et" can ever match.
//   - FindGetter implements the Get<Name> convention: the method name is "Get"
//     followed by the property name with its first letter in either case.
//
// # Property bags
//
// PropertyBag is the capability the access layer works through. BagOf returns
// the value itself when it already implements PropertyBag (for example a
// generated adapter) and a reflection-backed adapter otherwise. The reflective
// adapter reads and writes unexported fields as well.
package introspect
