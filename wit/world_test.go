package wit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorldRender(t *testing.T) {
	w := World{
		Name:    "shop-world",
		Exports: []string{ExportStatement("order"), ExportStatement("shop")},
	}
	assertGolden(t, "world", w.Render())
}

func TestWorldRenderWithoutExports(t *testing.T) {
	w := World{Name: "empty", Include: "process-v2"}
	assert.Equal(t, "world empty {\n\n    include process-v2;\n}", w.Render())
}

func TestExportStatement(t *testing.T) {
	assert.Equal(t, "    export chat-room;", ExportStatement("chat-room"))
}

func TestParseWorldName(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		ok      bool
	}{
		{name: "header", content: "world my-app {\n    include process-v1;\n}", want: "my-app", ok: true},
		{name: "indented", content: "package foo:bar;\n\n  world app-v {\n}", want: "app-v", ok: true},
		{name: "brace attached", content: "world tight{\n}", want: "tight", ok: true},
		{name: "interface file", content: "interface order {\n    use standard.{address};\n}\n", ok: false},
		{name: "word in body", content: "interface x {\n    // hello world here\n}", ok: false},
		{name: "bare brace", content: "world {\n}", ok: false},
		{name: "empty", content: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseWorldName(tt.content)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
