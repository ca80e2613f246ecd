// Package analyze loads Go packages and records the struct types they declare.
//
// It uses golang.org/x/tools/go/packages with go/types to build the model the
// bag generator works from.
//
// Key types:
//   - TypeID: package import path + type name
//   - StructInfo: the declared fields and pointer method set of a struct
//   - FieldInfo: field name, go/types type, tag and embedding
//   - MethodInfo: method name and arity
package analyze
