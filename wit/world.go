package wit

import "strings"

// Defaults used when no configuration overrides them
const (
	DefaultWorldName = "async-app-template-dot-os-v0"
	DefaultInclude   = "process-v1"
)

// World is a world manifest: a name, the export statements of every
// generated interface and the included base world.
type World struct {
	Name    string
	Exports []string // "    export <interface>;" lines in processing order
	Include string
}

// ExportStatement returns the world export line for an interface.
func ExportStatement(iface string) string {
	return "    export " + iface + ";"
}

// Render returns the manifest text. It has no trailing newline.
func (w World) Render() string {
	include := w.Include
	if include == "" {
		include = DefaultInclude
	}
	return "world " + w.Name + " {\n" + strings.Join(w.Exports, "\n") + "\n    include " + include + ";\n}"
}

// ParseWorldName returns the world declared by content: the token after the
// first line that starts with "world ", with a trailing "{" removed.
func ParseWorldName(content string) (string, bool) {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "world ") {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 2 {
			return "", false
		}
		name := strings.TrimSuffix(fields[1], "{")
		if name == "" {
			return "", false
		}
		return name, true
	}
	return "", false
}
