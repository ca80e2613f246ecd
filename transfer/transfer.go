// Package transfer copies properties from one record into a new record of
// another type.
package transfer

import (
	"fmt"
	"reflect"

	"beankit/bean"
	"beankit/fault"
	"beankit/internal/match"
	"beankit/introspect"
)

// Pair links a source property to the target property it is copied into.
type Pair struct {
	Source string
	Target string
}

// Plan pairs every target property with the source property of the same name,
// or of the same name once case and separators are ignored. Pairs whose
// declared types differ are left out.
func Plan(src, dst introspect.Shape) []Pair {
	srcNames := src.FieldNames()

	var pairs []Pair
	for _, target := range dst.FieldNames() {
		source, ok := match.Closest(target, srcNames)
		if !ok {
			continue
		}

		sf, _ := src.Field(source)
		df, _ := dst.Field(target)
		if sf.Type != df.Type {
			continue
		}

		pairs = append(pairs, Pair{Source: source, Target: target})
	}

	return pairs
}

// To creates a default T and copies into it every property Plan pairs with a
// property of source. T must be a struct type. A nil source yields the default
// T unchanged.
func To[T any](source any) (*T, error) {
	want := reflect.TypeFor[T]()

	dst, err := introspect.ShapeFor[T]()
	if err != nil || dst.Type() != want {
		return nil, fault.Instantiation(want.String(), fmt.Errorf("%s is not a struct", want))
	}

	out := new(T)
	if bean.IsAbsent(source) {
		return out, nil
	}

	src, err := introspect.ShapeOf(source)
	if err != nil {
		return nil, err
	}

	bag, err := introspect.BagOf(out)
	if err != nil {
		return nil, err
	}

	for _, p := range Plan(src, dst) {
		v, err := bean.GetValue(source, p.Source)
		if err != nil {
			return nil, err
		}

		if err := bag.SetProperty(p.Target, v); err != nil {
			return nil, err
		}
	}

	return out, nil
}
