package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// HighlightYAML colorizes YAML for a 256-color terminal. On any highlighter
// error, or when color is false, src is returned unchanged.
func HighlightYAML(src string, color bool) string {
	if !color {
		return src
	}
	var b strings.Builder
	if err := quick.Highlight(&b, src, "yaml", "terminal256", "monokai"); err != nil {
		return src
	}
	return b.String()
}
