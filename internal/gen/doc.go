// Package gen writes property bag adapters for struct types.
//
// For every requested struct it renders a <type>_bag.go file in the struct's
// own package that implements introspect.PropertyBag with plain field access,
// so the bean operations can run on the type without reflecting over it.
//
// Generation uses text/template + go/format. Fields whose type cannot be
// spelled in the package are skipped with a warning; field names that collide
// with the bag methods stop generation for that type.
package gen
