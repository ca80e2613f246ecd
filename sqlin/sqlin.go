// Package sqlin builds the value list of an SQL IN clause, e.g. the a,b,c in
// "select * from t where col in (a,b,c)".
//
// Values are joined as they are: nothing is quoted or escaped. Callers that
// pass untrusted text are responsible for making it safe first.
package sqlin

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"

	"beankit/bean"
	"beankit/fault"
	"beankit/introspect"
)

const (
	separator = ","
	absent    = "null"
)

// Join returns values separated by commas. An empty list gives "".
func Join(values []string) string {
	return strings.Join(values, separator)
}

// JoinSeq is Join over a sequence.
func JoinSeq(values iter.Seq[string]) string {
	if values == nil {
		return ""
	}

	return Join(slices.Collect(values))
}

// Column renders the property column of every element of objs and joins the
// results. The collection is assumed to be homogeneous: the property is looked
// up on the first element only. Elements with a Get<Column> accessor are read
// through it, the others straight from the field.
func Column[T any](objs []T, column string) (string, error) {
	if len(objs) == 0 {
		return "", nil
	}

	if strings.TrimSpace(column) == "" {
		return "", fault.Validation(introspect.TypeName(objs[0]), column, "property name must not be empty")
	}

	if err := introspect.HasPropertyOf(objs[0], column); err != nil {
		return "", err
	}

	values := make([]string, 0, len(objs))
	for i, obj := range objs {
		v, err := read(obj, column)
		if err != nil {
			return "", fault.AtIndex(err, i)
		}

		values = append(values, Render(v))
	}

	return Join(values), nil
}

// Render formats a single value: absent values become "null" and pointers are
// followed to the value they point at.
func Render(v any) string {
	if bean.IsAbsent(v) {
		return absent
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return absent
		}

		rv = rv.Elem()
	}

	return fmt.Sprint(rv.Interface())
}

func read(obj any, column string) (any, error) {
	if _, isBag := obj.(introspect.PropertyBag); !isBag {
		if s, err := introspect.ShapeOf(obj); err == nil {
			if m, ok := introspect.FindGetter(s, column); ok {
				return introspect.CallGetter(obj, m)
			}
		}
	}

	return bean.GetValue(obj, column)
}
