package golang

import (
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"strings"

	"github.com/teranos/witgen/syntax"
)

// enumUnderlying are the underlying types whose typed constants form a variant
var enumUnderlying = map[string]bool{
	"string": true,
	"int":    true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"byte": true, "rune": true,
}

// typeDecl is a type spec together with the directives attached to it
type typeDecl struct {
	spec       *ast.TypeSpec
	directives []syntax.Directive
}

// builder merges the files of one package into a syntax.File
type builder struct {
	fset      *token.FileSet
	directive string

	types   []typeDecl
	consts  map[string][]string        // type name -> constant names in source order
	methods map[string][]syntax.Method // receiver type name -> methods in source order
}

func newBuilder(fset *token.FileSet, directive string) *builder {
	return &builder{
		fset:      fset,
		directive: directive,
		consts:    make(map[string][]string),
		methods:   make(map[string][]syntax.Method),
	}
}

// addFile records the top-level declarations of one file
func (b *builder) addFile(file *ast.File) {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			switch d.Tok {
			case token.TYPE:
				b.addTypes(d)
			case token.CONST:
				b.addConstBlock(d)
			}
		case *ast.FuncDecl:
			b.addMethod(d)
		}
	}
}

func (b *builder) addTypes(decl *ast.GenDecl) {
	for _, spec := range decl.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}
		// Directives may sit on the spec or, for a lone spec, on the decl
		groups := []*ast.CommentGroup{ts.Doc}
		if !decl.Lparen.IsValid() {
			groups = append(groups, decl.Doc)
		}
		b.types = append(b.types, typeDecl{
			spec:       ts,
			directives: parseDirectives(b.directive, groups...),
		})
	}
}

// addConstBlock groups constant names by their declared type. A spec with
// neither type nor values repeats the previous spec's type (iota style); a
// spec with values but no type is untyped.
func (b *builder) addConstBlock(decl *ast.GenDecl) {
	var currentType string

	for _, spec := range decl.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}

		switch {
		case vs.Type != nil:
			currentType = ""
			if ident, ok := vs.Type.(*ast.Ident); ok {
				currentType = ident.Name
			}
		case len(vs.Values) > 0:
			currentType = ""
		}

		if currentType == "" {
			continue
		}
		for _, name := range vs.Names {
			if name.Name == "_" {
				continue
			}
			b.consts[currentType] = append(b.consts[currentType], name.Name)
		}
	}
}

func (b *builder) addMethod(fn *ast.FuncDecl) {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return
	}
	recv := receiverTypeName(fn.Recv.List[0].Type)
	if recv == "" {
		return
	}

	directives := parseDirectives(b.directive, fn.Doc)
	b.methods[recv] = append(b.methods[recv], syntax.Method{
		Name:    fn.Name.Name,
		Markers: markersOf(directives),
		Params:  convertParams(fn.Type.Params),
		Result:  convertResults(fn.Type.Results),
		Pos:     b.pos(fn.Pos()),
	})
}

// build emits items in type declaration order. Each type yields its record or
// variant, followed by its implementation block when it has methods or a
// process directive.
func (b *builder) build(path string) *syntax.File {
	file := &syntax.File{Path: path}

	for _, td := range b.types {
		name := td.spec.Name.Name
		pos := b.pos(td.spec.Pos())
		forceVariant := hasDirective(td.directives, DirectiveVariant)

		switch t := td.spec.Type.(type) {
		case *ast.StructType:
			if forceVariant {
				file.Items = append(file.Items, &syntax.Variant{Name: name, Cases: structCases(t), Pos: pos})
			} else {
				file.Items = append(file.Items, &syntax.Record{Name: name, Fields: structFields(t), Pos: pos})
			}

		case *ast.Ident:
			consts := b.consts[name]
			if forceVariant || (enumUnderlying[t.Name] && len(consts) > 0) {
				file.Items = append(file.Items, &syntax.Variant{Name: name, Cases: constCases(name, consts), Pos: pos})
			}

		default:
			if forceVariant {
				file.Items = append(file.Items, &syntax.Variant{Name: name, Cases: constCases(name, b.consts[name]), Pos: pos})
			}
		}

		methods := b.methods[name]
		if len(methods) > 0 || hasDirective(td.directives, DirectiveProcess) {
			file.Items = append(file.Items, &syntax.Impl{
				TypeName:   name,
				Directives: td.directives,
				Methods:    methods,
				Pos:        pos,
			})
		}
	}

	return file
}

func (b *builder) pos(p token.Pos) string {
	position := b.fset.Position(p)
	return fmt.Sprintf("%s:%d", filepath.Base(position.Filename), position.Line)
}

func structFields(st *ast.StructType) []syntax.Field {
	var fields []syntax.Field
	for _, f := range st.Fields.List {
		typ := convertType(f.Type)
		if len(f.Names) == 0 {
			fields = append(fields, syntax.Field{Type: typ})
			continue
		}
		for _, name := range f.Names {
			if name.Name == "_" {
				continue
			}
			fields = append(fields, syntax.Field{Name: name.Name, Type: typ})
		}
	}
	return fields
}

// structCases reads variant cases from the fields of a //hyper:variant struct:
//
//	Pending   struct{}                        // unit
//	Shipped   struct{ Tracking string }       // carries string
//	Split     struct{ A string; B Parcel }    // multi-value
//	Cancelled Reason                          // carries Reason
func structCases(st *ast.StructType) []syntax.Case {
	var cases []syntax.Case
	for _, f := range st.Fields.List {
		payload := casePayload(f.Type)
		names := fieldNames(f)
		for _, name := range names {
			cases = append(cases, syntax.Case{Name: name, Payload: payload})
		}
	}
	return cases
}

func casePayload(expr ast.Expr) []syntax.TypeExpr {
	inner, ok := expr.(*ast.StructType)
	if !ok {
		return []syntax.TypeExpr{convertType(expr)}
	}
	var payload []syntax.TypeExpr
	for _, f := range inner.Fields.List {
		n := len(f.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			payload = append(payload, convertType(f.Type))
		}
	}
	return payload
}

// fieldNames returns the declared names of a field, or the type name for an
// embedded field.
func fieldNames(f *ast.Field) []string {
	if len(f.Names) == 0 {
		if name := receiverTypeName(f.Type); name != "" {
			return []string{name}
		}
		if sel, ok := f.Type.(*ast.SelectorExpr); ok {
			return []string{sel.Sel.Name}
		}
		return nil
	}
	names := make([]string, 0, len(f.Names))
	for _, n := range f.Names {
		if n.Name != "_" {
			names = append(names, n.Name)
		}
	}
	return names
}

// constCases turns typed constants into unit cases, dropping the type name
// prefix: StatusActive -> Active.
func constCases(typeName string, consts []string) []syntax.Case {
	cases := make([]syntax.Case, 0, len(consts))
	for _, c := range consts {
		name := c
		if trimmed := strings.TrimPrefix(c, typeName); trimmed != "" && trimmed != c {
			name = trimmed
		}
		cases = append(cases, syntax.Case{Name: name})
	}
	return cases
}
