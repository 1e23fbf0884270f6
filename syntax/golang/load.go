// Package golang builds syntax trees from annotated Go source.
//
// A process type and its exported methods are marked with comment directives:
//
//	//hyper:process wit_world="chat-app"
//	type ChatState struct { ... }
//
//	//hyper:remote
//	func (s *ChatState) SendMessage(room string, text string) (Receipt, error) { ... }
//
// All non-test files of a directory are merged into one syntax.File.
package golang

import (
	"go/ast"
	"go/build"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/teranos/witgen/errors"
	"github.com/teranos/witgen/logger"
	"github.com/teranos/witgen/syntax"
)

// Loader names
const (
	LoaderParser   = "parser"
	LoaderPackages = "packages"
)

// DefaultDirective is the comment directive prefix
const DefaultDirective = "hyper"

// ErrNoSource indicates a directory holds no Go source files
var ErrNoSource = errors.New("no Go source files")

// Options configures source loading
type Options struct {
	Directive string // directive prefix, "hyper" when empty
	Loader    string // LoaderParser (default) or LoaderPackages
}

func (o Options) directive() string {
	if o.Directive == "" {
		return DefaultDirective
	}
	return o.Directive
}

// Load reads the Go package in dir with the configured loader.
func Load(dir string, opts Options) (*syntax.File, error) {
	switch opts.Loader {
	case "", LoaderParser:
		return ParseDir(dir, opts)
	case LoaderPackages:
		return LoadPackage(dir, opts)
	}
	return nil, errors.Newf("unknown source loader %q", opts.Loader)
}

// ParseDir parses every non-test .go file in dir that matches the current
// build context, in file-name order.
func ParseDir(dir string, opts Options) (*syntax.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read source directory %s", dir)
	}

	fset := token.NewFileSet()
	var files []*ast.File
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		if ok, err := build.Default.MatchFile(dir, name); err == nil && !ok {
			continue
		}

		path := filepath.Join(dir, name)
		file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", path)
		}
		files = append(files, file)
	}

	if len(files) == 0 {
		return nil, errors.Wrapf(ErrNoSource, "directory %s", dir)
	}

	return buildFile(dir, fset, files, opts), nil
}

// ParseSource parses a single file from memory.
func ParseSource(filename string, src []byte, opts Options) (*syntax.File, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", filename)
	}
	return buildFile(filename, fset, []*ast.File{file}, opts), nil
}

// LoadPackage loads the package in dir through golang.org/x/tools/go/packages,
// which honours the module, build tags and cgo settings of the go command.
func LoadPackage(dir string, opts Options) (*syntax.File, error) {
	fset := token.NewFileSet()
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:  dir,
		Fset: fset,
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load package in %s", dir)
	}

	var files []*ast.File
	for _, pkg := range pkgs {
		if len(pkg.GoFiles) == 0 {
			continue
		}
		if len(pkg.Errors) > 0 {
			msgs := make([]string, len(pkg.Errors))
			for i, e := range pkg.Errors {
				msgs[i] = e.Error()
			}
			return nil, errors.Newf("package %s: %s", pkg.PkgPath, strings.Join(msgs, "; "))
		}
		files = append(files, pkg.Syntax...)
	}

	if len(files) == 0 {
		return nil, errors.Wrapf(ErrNoSource, "directory %s", dir)
	}

	// Same merge order as ParseDir
	sort.SliceStable(files, func(i, j int) bool {
		return fset.Position(files[i].Package).Filename < fset.Position(files[j].Package).Filename
	})

	return buildFile(dir, fset, files, opts), nil
}

func buildFile(path string, fset *token.FileSet, files []*ast.File, opts Options) *syntax.File {
	b := newBuilder(fset, opts.directive())
	for _, f := range files {
		b.addFile(f)
	}
	result := b.build(path)

	logger.ComponentLogger("witgen.golang").Debugw("Built syntax tree",
		logger.FieldPath, path,
		"files", len(files),
		"items", len(result.Items))
	return result
}
