package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/minicodemonkey/chime/internal/config"
	"github.com/minicodemonkey/chime/internal/tui"
)

// ConfigOptions contains configuration for the config command.
type ConfigOptions struct {
	BaseDir    string
	ConfigPath string
	Color      bool // Highlight with chroma
	Out        io.Writer
}

// RunConfig prints the effective config as YAML.
func RunConfig(opts ConfigOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	cfg, path, err := loadConfig(opts.BaseDir, opts.ConfigPath)
	if err != nil {
		return err
	}
	data, err := cfg.YAML()
	if err != nil {
		return err
	}

	source := path
	if !config.Exists(path) {
		source = "defaults (" + path + " not found)"
	}
	fmt.Fprint(opts.Out, tui.HighlightYAML("# "+source+"\n"+data, opts.Color))
	return nil
}
