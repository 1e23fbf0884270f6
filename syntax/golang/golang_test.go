package golang

import (
	"go/parser"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/witgen/errors"
	"github.com/teranos/witgen/syntax"
	"github.com/teranos/witgen/wit"
)

const orderSource = `package order

// OrderState holds open orders.
//
//hyper:process wit_world="shop-app"
type OrderState struct {
	Orders []LineItem
}

type LineItem struct {
	Quantity uint32
}

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
	untyped             = "x"
)

//hyper:variant
type Event struct {
	Created   struct{}
	Renamed   struct{ To string }
	Moved     struct{ From, To string }
	Cancelled *Reason
}

type Reason struct {
	Text string
}

//hyper:remote
func (s *OrderState) OrderTotal(item LineItem) (bool, error) {
	return item.Quantity > 0, nil
}

//hyper:local
//hyper:http
func (s OrderState) History(_ string, limit int64) ([]Event, string, error) {
	return nil, "", nil
}

func (s *OrderState) internal() {}
`

func parseOrder(t *testing.T) *syntax.File {
	t.Helper()
	file, err := ParseSource("order.go", []byte(orderSource), Options{})
	require.NoError(t, err)
	return file
}

func TestParseSourceItems(t *testing.T) {
	file := parseOrder(t)

	var names []string
	for _, item := range file.Items {
		names = append(names, item.ItemName())
	}
	// OrderState appears twice: its record and its implementation block
	assert.Equal(t, []string{"OrderState", "OrderState", "LineItem", "Status", "Event", "Reason"}, names)

	require.IsType(t, &syntax.Record{}, file.Items[0])
	require.IsType(t, &syntax.Impl{}, file.Items[1])
	require.IsType(t, &syntax.Variant{}, file.Items[3])
	require.IsType(t, &syntax.Variant{}, file.Items[4])
}

func TestParseSourceProcessDirective(t *testing.T) {
	file := parseOrder(t)
	impls := file.Impls()
	require.Len(t, impls, 1)

	impl := impls[0]
	assert.Equal(t, "OrderState", impl.TypeName)

	d, ok := impl.Directive(DirectiveProcess)
	require.True(t, ok)
	assert.Equal(t, "shop-app", d.Args[WorldArg])
	assert.Equal(t, "order.go:6", impl.Pos)
}

func TestParseSourceMethods(t *testing.T) {
	impl := parseOrder(t).Impls()[0]
	require.Len(t, impl.Methods, 3)

	total := impl.Methods[0]
	assert.Equal(t, "OrderTotal", total.Name)
	assert.Equal(t, syntax.Markers{Remote: true}, total.Markers)
	require.Len(t, total.Params, 1)
	assert.Equal(t, "item", total.Params[0].Name)
	assert.Equal(t, "LineItem", total.Params[0].Type.String())
	assert.Equal(t, "bool", total.Result.String())

	history := impl.Methods[1]
	assert.Equal(t, syntax.Markers{Local: true, HTTP: true}, history.Markers)
	require.Len(t, history.Params, 2)
	assert.Empty(t, history.Params[0].Name, "blank parameter has no binding")
	assert.Equal(t, "limit", history.Params[1].Name)
	assert.Equal(t, "(List[Event], string)", history.Result.String())

	internal := impl.Methods[2]
	assert.False(t, internal.Markers.Exported())
	assert.Nil(t, internal.Result)
}

func TestParseSourceConstVariant(t *testing.T) {
	status := parseOrder(t).Items[3].(*syntax.Variant)
	assert.Equal(t, []syntax.Case{{Name: "Open"}, {Name: "Closed"}}, status.Cases)
}

func TestParseSourceStructVariant(t *testing.T) {
	event := parseOrder(t).Items[4].(*syntax.Variant)
	require.Len(t, event.Cases, 4)

	assert.Equal(t, "Created", event.Cases[0].Name)
	assert.Empty(t, event.Cases[0].Payload)

	assert.Equal(t, "Renamed", event.Cases[1].Name)
	require.Len(t, event.Cases[1].Payload, 1)
	assert.Equal(t, "string", event.Cases[1].Payload[0].String())

	assert.Equal(t, "Moved", event.Cases[2].Name)
	assert.Len(t, event.Cases[2].Payload, 2)

	assert.Equal(t, "Cancelled", event.Cases[3].Name)
	require.Len(t, event.Cases[3].Payload, 1)
	assert.Equal(t, "*Reason", event.Cases[3].Payload[0].String())
}

func TestParseSourceEndToEnd(t *testing.T) {
	file := parseOrder(t)
	impl := file.Impls()[0]

	out, err := wit.GenerateInterface(impl, impl.TypeName, file, wit.Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "interface order {\n")
	assert.Contains(t, out, "    record line-item {\n        quantity: u32\n    }")
	assert.Contains(t, out, "    //remote\n    order-total: func(target: address, item: line-item) -> result<bool, string>;")
	assert.Contains(t, out, "    //local\n    //http\n    history: func(target: address, limit: s64) -> result<tuple<list<event>, string>, string>;")
	assert.Contains(t, out, "    variant event {\n        created,\n        renamed(string),\n        moved,\n        cancelled(reason)\n    }")
	assert.Contains(t, out, "    record reason {\n        text: string\n    }")
	assert.NotContains(t, out, "internal")
	assert.NotContains(t, out, "variant status")
}

func TestConvertType(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"string", "string"},
		{"[]string", "List[string]"},
		{"[][]string", "List[List[string]]"},
		{"[4]float64", "List[float64]"},
		{"*LineItem", "*LineItem"},
		{"models.LineItem", "models.LineItem"},
		{"Option[string]", "Optional[string]"},
		{"opt.Optional[int64]", "Optional[int64]"},
		{"Option", "Optional[?]"},
		{"Page[Item]", "Page"},
		{"Pair[string, int]", "Pair"},
		{"map[string]int", "map[string]int"},
		{"func()", "func()"},
		{"chan int", "chan int"},
		{"interface{}", "interface{}"},
		{"any", "any"},
		{"error", "error"},
		{"(int32)", "int32"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr, err := parser.ParseExpr(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, convertType(expr).String())
		})
	}
}

func TestConvertTypeOpaqueMapsToUnknown(t *testing.T) {
	for _, src := range []string{"map[string]int", "func()", "chan int", "interface{}", "any", "struct{}"} {
		expr, err := parser.ParseExpr(src)
		require.NoError(t, err)

		got, err := wit.MapType(convertType(expr), wit.NewTypeSet())
		require.NoError(t, err)
		assert.Equal(t, "unknown", got, src)
	}
}

func TestConvertResults(t *testing.T) {
	src := `package p
type T struct{}
func (T) None() {}
func (T) OnlyError() error { return nil }
func (T) One() int32 { return 0 }
func (T) OneWithError() (string, error) { return "", nil }
func (T) Named() (a, b string, err error) { return }
func (T) ErrorNotLast() (error, string) { return nil, "" }
func (T) Variadic(tags ...string) {}
`
	file, err := ParseSource("p.go", []byte(src), Options{})
	require.NoError(t, err)
	methods := file.Impls()[0].Methods

	results := map[string]string{}
	for _, m := range methods {
		if m.Result == nil {
			results[m.Name] = "<none>"
			continue
		}
		results[m.Name] = m.Result.String()
	}

	assert.Equal(t, map[string]string{
		"None":         "<none>",
		"OnlyError":    "<none>",
		"One":          "int32",
		"OneWithError": "string",
		"Named":        "(string, string)",
		"ErrorNotLast": "(error, string)",
		"Variadic":     "<none>",
	}, results)

	variadic := methods[len(methods)-1]
	require.Len(t, variadic.Params, 1)
	assert.Equal(t, "List[string]", variadic.Params[0].Type.String())
}

func TestParseDirectives(t *testing.T) {
	src := `package p

//hyper:process wit_world="my world" debug
type A struct{}

//hyper:process wit_world="unterminated
type B struct{}

// hyper:remote is prose, not a directive
//other:remote
type C struct{}

type (
	//hyper:process wit_world=grouped
	D struct{}
)
`
	file, err := ParseSource("p.go", []byte(src), Options{})
	require.NoError(t, err)

	impls := file.Impls()
	require.Len(t, impls, 3)

	a, _ := impls[0].Directive(DirectiveProcess)
	assert.Equal(t, map[string]string{"wit_world": "my world", "debug": ""}, a.Args)

	b, ok := impls[1].Directive(DirectiveProcess)
	require.True(t, ok)
	assert.Empty(t, b.Args, "malformed arguments are dropped")

	assert.Equal(t, "D", impls[2].TypeName)
	d, _ := impls[2].Directive(DirectiveProcess)
	assert.Equal(t, "grouped", d.Args[WorldArg])
}

func TestCustomDirectivePrefix(t *testing.T) {
	src := `package p

//wit:process wit_world="w"
type S struct{}

//wit:remote
func (S) Get() {}

//hyper:remote
func (S) Ignored() {}
`
	file, err := ParseSource("p.go", []byte(src), Options{Directive: "wit"})
	require.NoError(t, err)

	impl := file.Impls()[0]
	_, ok := impl.Directive(DirectiveProcess)
	assert.True(t, ok)
	assert.True(t, impl.Methods[0].Markers.Remote)
	assert.False(t, impl.Methods[1].Markers.Exported())
}

func TestForcedEmptyVariant(t *testing.T) {
	src := `package p

//hyper:variant
type Nothing int
`
	file, err := ParseSource("p.go", []byte(src), Options{})
	require.NoError(t, err)
	require.Len(t, file.Items, 1)

	v := file.Items[0].(*syntax.Variant)
	assert.Equal(t, "Nothing", v.Name)
	assert.Empty(t, v.Cases)
}

func TestIotaConstVariant(t *testing.T) {
	src := `package p

type Level int

const (
	LevelLow Level = iota
	LevelHigh
	_
	Critical
)

const Other = 3

type Plain string
`
	file, err := ParseSource("p.go", []byte(src), Options{})
	require.NoError(t, err)
	require.Len(t, file.Items, 1, "Plain has no constants and is not a variant")

	v := file.Items[0].(*syntax.Variant)
	assert.Equal(t, []syntax.Case{{Name: "Low"}, {Name: "High"}, {Name: "Critical"}}, v.Cases)
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a_types.go": "package p\n\n//hyper:process wit_world=\"w\"\ntype ChatState struct{}\n\ntype Message struct{ Text string }\n",
		"b_api.go":   "package p\n\n//hyper:remote\nfunc (c *ChatState) Send(m Message) error { return nil }\n",
		"c_test.go":  "package p\n\ntype TestOnly struct{ X bool }\n",
		"d_skip.go":  "//go:build ignore\n\npackage p\n\ntype Skipped struct{ X bool }\n",
		"notes.txt":  "not go",
	})

	file, err := ParseDir(dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, dir, file.Path)

	var names []string
	for _, item := range file.Items {
		names = append(names, item.ItemName())
	}
	assert.Equal(t, []string{"ChatState", "ChatState", "Message"}, names)

	impl := file.Impls()[0]
	require.Len(t, impl.Methods, 1, "methods from other files belong to the type")
	assert.Equal(t, "Send", impl.Methods[0].Name)
	assert.Equal(t, "b_api.go:4", impl.Methods[0].Pos)
}

func TestParseDirNoSource(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"only_test.go": "package p\n"})

	_, err := ParseDir(dir, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSource))
}

func TestParseDirSyntaxError(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"broken.go": "package p\n\nfunc {"})

	_, err := ParseDir(dir, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.go")
	assert.False(t, errors.Is(err, ErrNoSource))
}

func TestLoadUnknownLoader(t *testing.T) {
	_, err := Load(t.TempDir(), Options{Loader: "ast"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source loader")
}

func TestLoadPackage(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"go.mod":  "module example.com/chat\n\ngo 1.22\n",
		"chat.go": "package chat\n\n//hyper:process wit_world=\"w\"\ntype ChatState struct{}\n\n//hyper:remote\nfunc (c *ChatState) Ping() {}\n",
	})

	fromPackages, err := Load(dir, Options{Loader: LoaderPackages})
	require.NoError(t, err)
	fromParser, err := Load(dir, Options{Loader: LoaderParser})
	require.NoError(t, err)

	require.Len(t, fromPackages.Impls(), 1)
	assert.Equal(t, fromParser.Impls()[0].Methods, fromPackages.Impls()[0].Methods)
}
