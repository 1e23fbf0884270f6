package wit

import (
	"sort"
	"strings"

	"github.com/teranos/witgen/errors"
	"github.com/teranos/witgen/logger"
	"github.com/teranos/witgen/syntax"
)

// DeclKind distinguishes records from variants.
type DeclKind int

const (
	DeclRecord DeclKind = iota
	DeclVariant
)

func (k DeclKind) String() string {
	if k == DeclVariant {
		return "variant"
	}
	return "record"
}

// Declaration is a custom type rendered as WIT.
type Declaration struct {
	Name   string   // normalized name
	Source string   // name as written in source
	Kind   DeclKind // record or variant
	Text   string   // rendered block, indented for inclusion in an interface
	Refs   TypeSet  // custom types referenced by members
}

// Declarations indexes declarations by normalized name.
type Declarations map[string]*Declaration

// Names returns the declaration names in lexical order.
func (d Declarations) Names() []string {
	names := make([]string, 0, len(d))
	for n := range d {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Collect renders every top-level record and variant of file.
//
// A record without named fields is left out. Variants are kept even when they
// have no cases. Names that normalize identically are resolved by
// opts.Collisions.
func Collect(file *syntax.File, opts Options) (Declarations, error) {
	log := logger.ComponentLogger("witgen.wit")
	decls := make(Declarations)

	for _, item := range file.Items {
		var (
			decl *Declaration
			err  error
		)
		switch it := item.(type) {
		case *syntax.Record:
			decl, err = renderRecord(it)
		case *syntax.Variant:
			decl, err = renderVariant(it)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		if decl == nil {
			log.Debugw("Skipping record without named fields", logger.FieldType, item.ItemName())
			continue
		}

		if prev, exists := decls[decl.Name]; exists {
			switch opts.Collisions {
			case CollisionReject:
				return nil, errors.WithHint(
					errors.Mark(
						errors.Newf("%s %s and %s %s both normalize to '%s'",
							prev.Kind, prev.Source, decl.Kind, decl.Source, decl.Name),
						errors.ErrDeclarationCollision),
					"rename one of the types or set naming.collisions to \"overwrite\"")
			case CollisionReport:
				log.Warnw("Declaration name collision, keeping the later one",
					logger.FieldType, decl.Name,
					"previous", prev.Source,
					"kept", decl.Source)
			}
		}

		log.Debugw("Collected declaration", logger.FieldType, decl.Name, "kind", decl.Kind.String())
		decls[decl.Name] = decl
	}

	log.Debugw("Collected type declarations", logger.FieldCount, len(decls))
	return decls, nil
}

func renderRecord(r *syntax.Record) (*Declaration, error) {
	name, err := validateAndNormalize(r.Name, KindRecord)
	if err != nil {
		return nil, err
	}

	refs := NewTypeSet()
	var fields []string
	for _, f := range r.Fields {
		if f.Name == "" {
			continue
		}
		fieldName, err := validateAndNormalize(f.Name, KindField)
		if err != nil {
			return nil, err
		}
		// Each field gets its own set; the record's Refs is their union
		local := NewTypeSet()
		fieldType, err := MapType(f.Type, local)
		if err != nil {
			return nil, err
		}
		refs.Merge(local)
		fields = append(fields, "        "+fieldName+": "+fieldType)
	}

	if len(fields) == 0 {
		return nil, nil
	}

	return &Declaration{
		Name:   name,
		Source: r.Name,
		Kind:   DeclRecord,
		Text:   renderBlock("record", name, fields),
		Refs:   refs,
	}, nil
}

func renderVariant(v *syntax.Variant) (*Declaration, error) {
	name, err := validateAndNormalize(v.Name, KindVariant)
	if err != nil {
		return nil, err
	}

	refs := NewTypeSet()
	cases := make([]string, 0, len(v.Cases))
	for _, c := range v.Cases {
		caseName, err := validateAndNormalize(c.Name, KindCase)
		if err != nil {
			return nil, err
		}
		// Only single-payload cases carry a type; multi-value cases render bare
		if len(c.Payload) == 1 {
			local := NewTypeSet()
			payload, err := MapType(c.Payload[0], local)
			if err != nil {
				return nil, err
			}
			refs.Merge(local)
			cases = append(cases, "        "+caseName+"("+payload+")")
			continue
		}
		cases = append(cases, "        "+caseName)
	}

	return &Declaration{
		Name:   name,
		Source: v.Name,
		Kind:   DeclVariant,
		Text:   renderBlock("variant", name, cases),
		Refs:   refs,
	}, nil
}

func renderBlock(keyword, name string, members []string) string {
	return "    " + keyword + " " + name + " {\n" + strings.Join(members, ",\n") + "\n    }"
}
