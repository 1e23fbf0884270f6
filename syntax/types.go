// Package syntax is the language-neutral tree consumed by the WIT generator.
//
// A frontend (see syntax/golang) turns source code into a File. The generator
// never reads source text itself; everything it needs is in these nodes.
package syntax

import "strings"

// TypeExpr is a source type expression.
type TypeExpr interface {
	String() string
	typeExpr()
}

// Named is a leaf type: a primitive spelling or a reference to a custom
// declaration. Qualifier holds the package selector, if any (pkg.T).
type Named struct {
	Qualifier string
	Name      string
}

// List is a single-parameter sequence container. Elem is nil when the
// source spelled the container without a type argument.
type List struct {
	Elem TypeExpr
}

// Optional is a single-parameter optional container. Elem may be nil.
type Optional struct {
	Elem TypeExpr
}

// Ref is a reference or pointer to Elem.
type Ref struct {
	Elem TypeExpr
}

// Tuple is an ordered group of types. An empty tuple is the unit type.
type Tuple struct {
	Elems []TypeExpr
}

// Opaque is any type shape without a structural mapping (maps, functions,
// channels, interfaces). Desc is the source spelling, kept for diagnostics.
type Opaque struct {
	Desc string
}

func (*Named) typeExpr()    {}
func (*List) typeExpr()     {}
func (*Optional) typeExpr() {}
func (*Ref) typeExpr()      {}
func (*Tuple) typeExpr()    {}
func (*Opaque) typeExpr()   {}

func (t *Named) String() string {
	if t.Qualifier != "" {
		return t.Qualifier + "." + t.Name
	}
	return t.Name
}

func (t *List) String() string     { return "List[" + elemString(t.Elem) + "]" }
func (t *Optional) String() string { return "Optional[" + elemString(t.Elem) + "]" }
func (t *Ref) String() string      { return "*" + elemString(t.Elem) }
func (t *Opaque) String() string   { return t.Desc }

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = elemString(e)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func elemString(t TypeExpr) string {
	if t == nil {
		return "?"
	}
	return t.String()
}

// Convenience constructors, mostly for frontends and tests.

// N returns a Named leaf, splitting a "pkg.T" spelling into qualifier and name.
func N(name string) *Named {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return &Named{Qualifier: name[:i], Name: name[i+1:]}
	}
	return &Named{Name: name}
}

// ListOf returns a List of elem.
func ListOf(elem TypeExpr) *List { return &List{Elem: elem} }

// OptionOf returns an Optional of elem.
func OptionOf(elem TypeExpr) *Optional { return &Optional{Elem: elem} }

// RefTo returns a Ref to elem.
func RefTo(elem TypeExpr) *Ref { return &Ref{Elem: elem} }

// TupleOf returns a Tuple of elems.
func TupleOf(elems ...TypeExpr) *Tuple { return &Tuple{Elems: elems} }
