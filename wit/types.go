package wit

import (
	"sort"
	"strings"

	"github.com/teranos/witgen/syntax"
)

// WIT spellings used for shapes without a source equivalent
const (
	witUnit    = "unit"
	witUnknown = "unknown"
	witAny     = "any"
)

// primitives maps Go primitive spellings to WIT primitives
var primitives = map[string]string{
	"int32":   "s32",
	"uint32":  "u32",
	"int64":   "s64",
	"uint64":  "u64",
	"float32": "f32",
	"float64": "f64",
	"string":  "string",
	"bool":    "bool",
}

// Primitive returns the WIT spelling of a primitive source type.
func Primitive(name string) (string, bool) {
	wit, ok := primitives[name]
	return wit, ok
}

// TypeSet is a set of normalized custom type names.
type TypeSet map[string]struct{}

// NewTypeSet returns a set holding names.
func NewTypeSet(names ...string) TypeSet {
	s := make(TypeSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

func (s TypeSet) Add(name string) { s[name] = struct{}{} }

func (s TypeSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Merge adds every name of other to s.
func (s TypeSet) Merge(other TypeSet) {
	for n := range other {
		s.Add(n)
	}
}

// Sorted returns the names in lexical order.
func (s TypeSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MapType converts a source type expression into WIT type text. Every custom
// type reached is added to used under its normalized name.
//
// Recursion follows the expression depth without a guard.
func MapType(expr syntax.TypeExpr, used TypeSet) (string, error) {
	switch t := expr.(type) {
	case *syntax.Named:
		if t.Name == "" {
			return witUnknown, nil
		}
		if t.Qualifier == "" {
			if wit, ok := primitives[t.Name]; ok {
				return wit, nil
			}
		}
		// Custom types are referenced by name, never inlined
		name, err := validateAndNormalize(t.Name, KindType)
		if err != nil {
			return "", err
		}
		used.Add(name)
		return name, nil

	case *syntax.List:
		return mapContainer("list", t.Elem, used)

	case *syntax.Optional:
		return mapContainer("option", t.Elem, used)

	case *syntax.Ref:
		if t.Elem == nil {
			return witUnknown, nil
		}
		return MapType(t.Elem, used)

	case *syntax.Tuple:
		if len(t.Elems) == 0 {
			return witUnit, nil
		}
		elems := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			mapped, err := MapType(e, used)
			if err != nil {
				return "", err
			}
			elems[i] = mapped
		}
		return "tuple<" + strings.Join(elems, ", ") + ">", nil

	default:
		// Opaque and anything unrecognized
		return witUnknown, nil
	}
}

func mapContainer(name string, elem syntax.TypeExpr, used TypeSet) (string, error) {
	if elem == nil {
		return name + "<" + witAny + ">", nil
	}
	inner, err := MapType(elem, used)
	if err != nil {
		return "", err
	}
	return name + "<" + inner + ">", nil
}
