package tui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// listStyle is a customized dark style with no document margin,
// so tables render flush with the rest of the CLI output.
var listStyle ansi.StyleConfig

func init() {
	listStyle = styles.DarkStyleConfig
	zero := uint(0)
	listStyle.Document.Margin = &zero
	listStyle.Document.StylePrimitive.BlockPrefix = ""
	listStyle.Document.StylePrimitive.BlockSuffix = ""
}

// RenderMarkdown renders a markdown string as styled terminal output. When
// color is false the markdown is returned as-is.
func RenderMarkdown(markdown string, width int, color bool) string {
	if !color {
		return strings.TrimSpace(markdown)
	}
	return renderGlamour(markdown, width)
}

// renderGlamour renders a markdown string as styled terminal output.
func renderGlamour(markdown string, width int) string {
	if width <= 0 || strings.TrimSpace(markdown) == "" {
		return ""
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(listStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}

	rendered, err := r.Render(markdown)
	if err != nil {
		return markdown
	}

	// Trim leading/trailing blank lines that glamour adds
	return strings.TrimSpace(rendered)
}

// ansiStripRegex matches ANSI escape codes for stripping in tests.
var ansiStripRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes ANSI escape codes from a string.
func stripANSI(s string) string {
	return ansiStripRegex.ReplaceAllString(s, "")
}
