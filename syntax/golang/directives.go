package golang

import (
	"go/ast"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/witgen/logger"
	"github.com/teranos/witgen/syntax"
)

// Directive names recognised after the configured prefix (//hyper:<name>)
const (
	DirectiveProcess = "process"
	DirectiveVariant = "variant"
	DirectiveRemote  = "remote"
	DirectiveLocal   = "local"
	DirectiveHTTP    = "http"
)

// WorldArg is the process directive argument naming the target world
const WorldArg = "wit_world"

// parseDirectives extracts //<prefix>:<name> [args] lines from comment groups.
// Arguments are shell-quoted key=value pairs:
//
//	//hyper:process wit_world="chat-app"
func parseDirectives(prefix string, groups ...*ast.CommentGroup) []syntax.Directive {
	marker := "//" + prefix + ":"
	var directives []syntax.Directive

	for _, group := range groups {
		if group == nil {
			continue
		}
		for _, c := range group.List {
			if !strings.HasPrefix(c.Text, marker) {
				continue
			}
			rest := strings.TrimSpace(strings.TrimPrefix(c.Text, marker))
			name, argText, _ := strings.Cut(rest, " ")
			if name == "" {
				continue
			}
			directives = append(directives, syntax.Directive{
				Name: name,
				Args: parseArgs(strings.TrimSpace(argText)),
			})
		}
	}
	return directives
}

func parseArgs(text string) map[string]string {
	args := make(map[string]string)
	if text == "" {
		return args
	}

	words, err := shellquote.Split(text)
	if err != nil {
		// Unbalanced quotes: no usable arguments
		logger.ComponentLogger("witgen.golang").Debugw("Ignoring malformed directive arguments",
			"args", text, logger.FieldError, err)
		return args
	}

	for _, w := range words {
		key, value, _ := strings.Cut(w, "=")
		if key != "" {
			args[key] = value
		}
	}
	return args
}

func hasDirective(directives []syntax.Directive, name string) bool {
	for _, d := range directives {
		if d.Name == name {
			return true
		}
	}
	return false
}

func markersOf(directives []syntax.Directive) syntax.Markers {
	return syntax.Markers{
		Remote: hasDirective(directives, DirectiveRemote),
		Local:  hasDirective(directives, DirectiveLocal),
		HTTP:   hasDirective(directives, DirectiveHTTP),
	}
}
