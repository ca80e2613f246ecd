package gen

import (
	"go/types"
	"slices"
	"strconv"
	"strings"
)

const (
	reflectPath    = "reflect"
	faultPath      = "beankit/fault"
	introspectPath = "beankit/introspect"
)

type importSpec struct {
	Alias string
	Path  string
}

// importSet assigns a local name to every package a generated file refers to.
type importSet struct {
	self   *types.Package
	module string
	byPath map[string]string // path -> local name
	names  map[string]bool   // local names in use, identifiers of the file included
	specs  []importSpec
}

func newImportSet(self *types.Package, module string, reserved ...string) *importSet {
	s := &importSet{
		self:   self,
		module: module,
		byPath: make(map[string]string),
		names:  make(map[string]bool),
	}

	for _, name := range reserved {
		s.names[name] = true
	}

	s.add(reflectPath, "reflect")
	s.add(faultPath, "fault")
	s.add(introspectPath, "introspect")

	return s
}

// Name returns the local name of the package at path.
func (s *importSet) Name(path string) string {
	return s.byPath[path]
}

func (s *importSet) add(path, name string) string {
	if local, ok := s.byPath[path]; ok {
		return local
	}

	local := name
	for i := 2; s.names[local]; i++ {
		local = name + strconv.Itoa(i)
	}

	s.byPath[path] = local
	s.names[local] = true

	spec := importSpec{Path: path}
	if local != name {
		spec.Alias = local
	}

	s.specs = append(s.specs, spec)

	return local
}

// qualifier is a types.Qualifier that records every package it is asked about.
func (s *importSet) qualifier(pkg *types.Package) string {
	if pkg == s.self || (s.self != nil && pkg.Path() == s.self.Path()) {
		return ""
	}

	return s.add(pkg.Path(), pkg.Name())
}

// groups splits the imports into standard library and other packages, each
// sorted by path.
func (s *importSet) groups() (std, other []importSpec) {
	for _, spec := range s.specs {
		if s.isStd(spec.Path) {
			std = append(std, spec)
		} else {
			other = append(other, spec)
		}
	}

	byPath := func(a, b importSpec) int { return strings.Compare(a.Path, b.Path) }
	slices.SortFunc(std, byPath)
	slices.SortFunc(other, byPath)

	return std, other
}

func (s *importSet) isStd(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	if strings.Contains(first, ".") {
		return false
	}

	for _, mod := range []string{"beankit", s.module} {
		if mod != "" && (path == mod || strings.HasPrefix(path, mod+"/")) {
			return false
		}
	}

	return true
}
