package bean

import (
	"iter"
	"slices"

	"beankit/fault"
	"beankit/introspect"
	"beankit/options"
)

// RequireNonAbsentAllEach validates every element of objs against every name.
//
// The shape of the collection is probed before values are looked at: by
// default only the first element is checked for the named properties, which
// assumes a homogeneous collection, and objs is ranged over once.
// options.ProbeEach probes every element before any value check; the elements
// are buffered for that, so objs is still ranged over once.
// options.ProbeGetter additionally requires a Get<Name> accessor on the
// probed elements.
//
// Elements are checked in order and the first failure is returned with the
// element index stamped on it. Empty names or objs succeed.
func RequireNonAbsentAllEach[T any](objs iter.Seq2[int, T], names iter.Seq[string], probes ...options.ProbeEnum) error {
	if objs == nil || names == nil {
		return nil
	}

	list := slices.Collect(names)
	if len(list) == 0 {
		return nil
	}

	probe := options.Merge(probes...)
	if probe.Has(options.ProbeEach) {
		return requireProbedEach(objs, list, probe)
	}

	probed := false
	for i, obj := range objs {
		if !probed {
			if err := probeShape(obj, list, probe); err != nil {
				return fault.AtIndex(err, i)
			}

			probed = true
		}

		if err := RequireNonAbsentAll(obj, list); err != nil {
			return fault.AtIndex(err, i)
		}
	}

	return nil
}

type element[T any] struct {
	index int
	obj   T
}

// requireProbedEach probes every element before checking any value.
func requireProbedEach[T any](objs iter.Seq2[int, T], names []string, probe options.ProbeEnum) error {
	var elems []element[T]
	for i, obj := range objs {
		elems = append(elems, element[T]{index: i, obj: obj})
	}

	for _, e := range elems {
		if err := probeShape(e.obj, names, probe); err != nil {
			return fault.AtIndex(err, e.index)
		}
	}

	for _, e := range elems {
		if err := RequireNonAbsentAll(e.obj, names); err != nil {
			return fault.AtIndex(err, e.index)
		}
	}

	return nil
}

// RequireNonAbsentEach is RequireNonAbsentAllEach for a single property.
func RequireNonAbsentEach[T any](objs iter.Seq2[int, T], name string, probes ...options.ProbeEnum) error {
	return RequireNonAbsentAllEach(objs, slices.Values([]string{name}), probes...)
}

// RequireNonAbsentSlice validates name on every element of objs.
// Arrays can be passed as arr[:].
func RequireNonAbsentSlice[T any](objs []T, name string, probes ...options.ProbeEnum) error {
	return RequireNonAbsentEach(slices.All(objs), name, probes...)
}

// RequireNonAbsentAllSlice validates every name on every element of objs.
func RequireNonAbsentAllSlice[T any](objs []T, names []string, probes ...options.ProbeEnum) error {
	return RequireNonAbsentAllEach(slices.All(objs), slices.Values(names), probes...)
}

// Indexed numbers the elements of seq from zero, so any sequence of objects
// can be fed to the batch operations.
func Indexed[T any](seq iter.Seq[T]) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for v := range seq {
			if !yield(i, v) {
				return
			}
			i++
		}
	}
}

func probeShape(obj any, names []string, probe options.ProbeEnum) error {
	for _, name := range names {
		if err := introspect.HasPropertyOf(obj, name); err != nil {
			return err
		}
	}

	if !probe.Has(options.ProbeGetter) {
		return nil
	}

	s, err := introspect.ShapeOf(obj)
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := introspect.RequireGetter(s, name); err != nil {
			return err
		}
	}

	return nil
}
