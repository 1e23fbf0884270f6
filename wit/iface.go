package wit

import (
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/witgen/logger"
	"github.com/teranos/witgen/syntax"
)

// FuncParam is a rendered function parameter.
type FuncParam struct {
	Name string
	Type string
}

// Function is one exported method rendered for WIT.
type Function struct {
	Name    string
	Source  string
	Params  []FuncParam
	Result  string // WIT type carried by the ok side of result<T, string>
	Markers syntax.Markers
}

// Interface is the WIT view of one implementation block.
type Interface struct {
	Name         string
	Source       string
	Functions    []Function
	Declarations []*Declaration // closure, in traversal order
}

// Generator builds interfaces for the implementation blocks of one file.
// Declarations are collected once and shared by every block.
type Generator struct {
	file  *syntax.File
	opts  Options
	log   *zap.SugaredLogger
	decls Declarations
}

// NewGenerator returns a generator over file.
func NewGenerator(file *syntax.File, opts Options) *Generator {
	return &Generator{
		file: file,
		opts: opts,
		log:  logger.ComponentLogger("witgen.wit"),
	}
}

// Declarations returns the collected declarations of the file.
func (g *Generator) Declarations() (Declarations, error) {
	if g.decls != nil {
		return g.decls, nil
	}
	decls, err := Collect(g.file, g.opts)
	if err != nil {
		return nil, err
	}
	g.decls = decls
	return decls, nil
}

// Interface builds the interface for impl. rawName is the owning type name
// as written in source; its "State" suffix is dropped.
func (g *Generator) Interface(impl *syntax.Impl, rawName string) (*Interface, error) {
	name, err := InterfaceName(rawName)
	if err != nil {
		return nil, err
	}
	log := g.log.With(logger.FieldInterface, name)

	used := NewTypeSet()
	var functions []Function
	for _, m := range impl.Methods {
		if !m.Markers.Exported() {
			log.Debugw("Skipping method without export marker", logger.FieldMethod, m.Name)
			continue
		}
		fn, err := buildFunction(m, used)
		if err != nil {
			return nil, err
		}
		log.Debugw("Added function", logger.FieldMethod, fn.Name, "params", len(fn.Params), "result", fn.Result)
		functions = append(functions, fn)
	}

	decls, err := g.Declarations()
	if err != nil {
		return nil, err
	}

	closure := Closure(used, decls, g.opts.Tracking)
	log.Debugw("Computed type closure",
		"used", used.Sorted(),
		logger.FieldCount, len(closure))

	return &Interface{
		Name:         name,
		Source:       rawName,
		Functions:    functions,
		Declarations: closure,
	}, nil
}

// BuildInterface builds the interface of a single impl over file.
func BuildInterface(impl *syntax.Impl, rawName string, file *syntax.File, opts Options) (*Interface, error) {
	return NewGenerator(file, opts).Interface(impl, rawName)
}

// GenerateInterface renders the interface of impl over file. It returns the
// empty string when impl has no exported methods.
func GenerateInterface(impl *syntax.Impl, rawName string, file *syntax.File, opts Options) (string, error) {
	iface, err := BuildInterface(impl, rawName, file, opts)
	if err != nil {
		return "", err
	}
	return iface.Render(), nil
}

func buildFunction(m syntax.Method, used TypeSet) (Function, error) {
	name, err := validateAndNormalize(m.Name, KindFunction)
	if err != nil {
		return Function{}, err
	}

	fn := Function{Name: name, Source: m.Name, Markers: m.Markers}
	for _, p := range m.Params {
		// Parameters without a binding cannot be named in WIT
		if p.Name == "" || p.Name == "_" {
			continue
		}
		paramName, err := validateAndNormalize(p.Name, KindParameter)
		if err != nil {
			return Function{}, err
		}
		paramType, err := MapType(p.Type, used)
		if err != nil {
			return Function{}, err
		}
		fn.Params = append(fn.Params, FuncParam{Name: paramName, Type: paramType})
	}

	fn.Result = witUnit
	if m.Result != nil {
		fn.Result, err = MapType(m.Result, used)
		if err != nil {
			return Function{}, err
		}
	}
	return fn, nil
}

// Closure returns the declarations transitively reachable from used. Each
// declaration is visited at most once, so reference cycles terminate.
// Names without a declaration (foreign or unknown types) are skipped.
func Closure(used TypeSet, decls Declarations, tracking Tracking) []*Declaration {
	names := decls.Names()
	processed := make(map[string]bool)

	// Stack pops in lexical order
	stack := reversed(used.Sorted())

	var result []*Declaration
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if processed[name] {
			continue
		}
		processed[name] = true

		decl, ok := decls[name]
		if !ok {
			continue
		}
		result = append(result, decl)

		var deps []string
		switch tracking {
		case TrackingStructural:
			deps = decl.Refs.Sorted()
		default:
			for _, other := range names {
				if strings.Contains(decl.Text, other) {
					deps = append(deps, other)
				}
			}
		}

		for _, dep := range reversed(deps) {
			if !processed[dep] {
				stack = append(stack, dep)
			}
		}
	}

	return result
}

func reversed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// Empty reports whether the interface exports nothing. Empty interfaces
// produce no file and no export statement.
func (i *Interface) Empty() bool {
	return len(i.Functions) == 0
}

// FileName is the file the interface is written to.
func (i *Interface) FileName() string {
	return i.Name + ".wit"
}

// Render returns the WIT text of the interface, or "" when it is empty.
func (i *Interface) Render() string {
	if i.Empty() {
		return ""
	}

	var b strings.Builder
	b.WriteString("interface " + i.Name + " {\n")
	b.WriteString("    use standard.{address};\n\n")

	if len(i.Declarations) > 0 {
		texts := make([]string, len(i.Declarations))
		for j, d := range i.Declarations {
			texts[j] = d.Text
		}
		b.WriteString(strings.Join(texts, "\n\n"))
		b.WriteString("\n\n")
	}

	funcs := make([]string, len(i.Functions))
	for j, fn := range i.Functions {
		funcs[j] = fn.Render()
	}
	b.WriteString(strings.Join(funcs, "\n"))
	b.WriteString("\n}\n")

	return b.String()
}

// Render returns the function signature preceded by one comment line per
// export marker, in the order remote, local, http.
func (f Function) Render() string {
	var lines []string
	if f.Markers.Remote {
		lines = append(lines, "    //remote")
	}
	if f.Markers.Local {
		lines = append(lines, "    //local")
	}
	if f.Markers.HTTP {
		lines = append(lines, "    //http")
	}

	params := []string{"target: address"}
	for _, p := range f.Params {
		params = append(params, p.Name+": "+p.Type)
	}

	lines = append(lines, "    "+f.Name+": func("+strings.Join(params, ", ")+") -> result<"+f.Result+", string>;")
	return strings.Join(lines, "\n")
}
