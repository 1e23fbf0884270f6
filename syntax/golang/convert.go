package golang

import (
	"go/ast"
	"go/types"

	"github.com/teranos/witgen/syntax"
)

// optionalNames are generic type names treated as optional containers
var optionalNames = map[string]bool{
	"Option":   true,
	"Optional": true,
}

// convertType converts a Go AST type expression to a syntax.TypeExpr.
// Shapes without a structural equivalent become Opaque.
func convertType(expr ast.Expr) syntax.TypeExpr {
	switch t := expr.(type) {
	case *ast.Ident:
		switch {
		case t.Name == "any" || t.Name == "error":
			return &syntax.Opaque{Desc: t.Name}
		case optionalNames[t.Name]:
			// Option without a type argument
			return &syntax.Optional{}
		}
		return &syntax.Named{Name: t.Name}

	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok {
			if optionalNames[t.Sel.Name] {
				return &syntax.Optional{}
			}
			return &syntax.Named{Qualifier: pkg.Name, Name: t.Sel.Name}
		}
		return &syntax.Opaque{Desc: types.ExprString(expr)}

	case *ast.StarExpr:
		return &syntax.Ref{Elem: convertType(t.X)}

	case *ast.ParenExpr:
		return convertType(t.X)

	case *ast.ArrayType:
		// Slices and fixed-size arrays are both lists
		return &syntax.List{Elem: convertType(t.Elt)}

	case *ast.Ellipsis:
		return &syntax.List{Elem: convertType(t.Elt)}

	case *ast.IndexExpr:
		return convertGeneric(t.X, []ast.Expr{t.Index})

	case *ast.IndexListExpr:
		return convertGeneric(t.X, t.Indices)

	default:
		// map, func, chan, interface, anonymous struct
		return &syntax.Opaque{Desc: types.ExprString(expr)}
	}
}

// convertGeneric handles instantiated generic types. Option[T] is an optional
// container; any other generic is referenced by its base name.
func convertGeneric(base ast.Expr, args []ast.Expr) syntax.TypeExpr {
	switch b := convertType(base).(type) {
	case *syntax.Optional:
		if len(args) > 0 {
			b.Elem = convertType(args[0])
		}
		return b
	case *syntax.Named:
		return b
	}
	return &syntax.Opaque{Desc: types.ExprString(base)}
}

// convertParams flattens a parameter list. Unnamed and blank parameters keep
// an empty name so the generator can skip them.
func convertParams(fields *ast.FieldList) []syntax.Param {
	if fields == nil {
		return nil
	}
	var params []syntax.Param
	for _, f := range fields.List {
		typ := convertType(f.Type)
		if len(f.Names) == 0 {
			params = append(params, syntax.Param{Type: typ})
			continue
		}
		for _, name := range f.Names {
			n := name.Name
			if n == "_" {
				n = ""
			}
			params = append(params, syntax.Param{Name: n, Type: typ})
		}
	}
	return params
}

// convertResults maps a Go result list to a single type. A trailing error is
// the failure channel and is dropped; several remaining results form a tuple.
func convertResults(fields *ast.FieldList) syntax.TypeExpr {
	if fields == nil {
		return nil
	}

	var results []ast.Expr
	for _, f := range fields.List {
		n := len(f.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			results = append(results, f.Type)
		}
	}

	if len(results) > 0 && isErrorType(results[len(results)-1]) {
		results = results[:len(results)-1]
	}

	switch len(results) {
	case 0:
		return nil
	case 1:
		return convertType(results[0])
	}

	elems := make([]syntax.TypeExpr, len(results))
	for i, r := range results {
		elems[i] = convertType(r)
	}
	return &syntax.Tuple{Elems: elems}
}

func isErrorType(expr ast.Expr) bool {
	ident, ok := expr.(*ast.Ident)
	return ok && ident.Name == "error"
}

// receiverTypeName returns the base type name of a method receiver:
// T, *T, T[K] and *T[K] all yield T.
func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.ParenExpr:
		return receiverTypeName(t.X)
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	}
	return ""
}
