package syntax

// File is one parsed source module. For Go this is a whole package: every
// non-test file of the source directory merged in file-name order.
type File struct {
	Path  string // directory or file the items were read from
	Items []Item // top-level items in source order
}

// Item is a top-level declaration.
type Item interface {
	ItemName() string
	item()
}

// Record is a product type with ordered fields.
type Record struct {
	Name   string
	Fields []Field
	Pos    string
}

// Field is a record member. Name is empty for unnamed members (embedded
// fields, tuple-struct positions).
type Field struct {
	Name string
	Type TypeExpr
}

// Variant is a sum type with ordered cases.
type Variant struct {
	Name  string
	Cases []Case
	Pos   string
}

// Case is one variant alternative. Payload holds the associated values:
// none for a unit case, one for a payload case, several for a multi-value case.
type Case struct {
	Name    string
	Payload []TypeExpr
}

// Impl is an implementation block: a type together with its methods and the
// directives attached to the type.
type Impl struct {
	TypeName   string
	Directives []Directive
	Methods    []Method
	Pos        string
}

// Directive is an annotation such as process(wit_world="x").
type Directive struct {
	Name string
	Args map[string]string
}

// Method is a function defined on an implementation block. The receiver is
// never part of Params.
type Method struct {
	Name    string
	Markers Markers
	Params  []Param
	Result  TypeExpr // nil when the method returns nothing
	Pos     string
}

// Param is a method parameter. Name is empty when the parameter has no
// binding (unnamed, blank or destructured).
type Param struct {
	Name string
	Type TypeExpr
}

// Markers are the export annotations of a method.
type Markers struct {
	Remote bool
	Local  bool
	HTTP   bool
}

// Exported reports whether any export marker is set.
func (m Markers) Exported() bool {
	return m.Remote || m.Local || m.HTTP
}

func (*Record) item()  {}
func (*Variant) item() {}
func (*Impl) item()    {}

func (r *Record) ItemName() string  { return r.Name }
func (v *Variant) ItemName() string { return v.Name }
func (i *Impl) ItemName() string    { return i.TypeName }

// Directive returns the first directive with the given name.
func (i *Impl) Directive(name string) (Directive, bool) {
	for _, d := range i.Directives {
		if d.Name == name {
			return d, true
		}
	}
	return Directive{}, false
}

// Impls returns the implementation blocks of the file in source order.
func (f *File) Impls() []*Impl {
	var impls []*Impl
	for _, item := range f.Items {
		if impl, ok := item.(*Impl); ok {
			impls = append(impls, impl)
		}
	}
	return impls
}
