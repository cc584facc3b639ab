package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minicodemonkey/chime/internal/melody"
	"github.com/minicodemonkey/chime/internal/synth"
	"github.com/minicodemonkey/chime/internal/tui"
)

// ListOptions contains configuration for the list command.
type ListOptions struct {
	SampleRate int  // Used for melody lengths (default: 44100)
	Width      int  // Wrap width (default: 80)
	Color      bool // Render with glamour
	Out        io.Writer
}

// RunList prints the available timbres and melodies.
func RunList(opts ListOptions) error {
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	md, err := ListMarkdown(opts.SampleRate)
	if err != nil {
		return err
	}
	fmt.Fprintln(opts.Out, tui.RenderMarkdown(md, opts.Width, opts.Color))
	return nil
}

// ListMarkdown describes every timbre and melody as two markdown tables.
func ListMarkdown(sampleRate int) (string, error) {
	var b strings.Builder

	b.WriteString("## Timbres\n\n")
	b.WriteString("| Timbre | Model | Noise |\n|---|---|---|\n")
	for _, t := range synth.Timbres() {
		noise := "no"
		if t.Stochastic() {
			noise = "yes"
		}
		fmt.Fprintf(&b, "| `%s` | %s | %s |\n", t, t.Description(), noise)
	}

	b.WriteString("\n## Melodies\n\n")
	b.WriteString("| Melody | Notes (Hz) | Length | Description |\n|---|---|---|---|\n")
	for _, name := range melody.Names() {
		notes, err := melody.Notes(name)
		if err != nil {
			return "", err
		}
		freqs := make([]string, len(notes))
		for i, n := range notes {
			freqs[i] = fmt.Sprintf("%g", n.Freq)
		}
		samples := melody.Length(notes, sampleRate)
		fmt.Fprintf(&b, "| `%s` | %s | %.3f s | %s |\n",
			name, strings.Join(freqs, ", "), float64(samples)/float64(sampleRate), name.Description())
	}

	return b.String(), nil
}
