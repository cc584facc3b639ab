package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/minicodemonkey/chime/embed"
	"github.com/minicodemonkey/chime/internal/config"
	"github.com/minicodemonkey/chime/internal/paths"
)

// ErrConfigExists is returned by RunInit when the target file already exists.
var ErrConfigExists = errors.New("config already exists")

// InitOptions contains configuration for the init command.
type InitOptions struct {
	BaseDir   string // Directory for chime.yaml (default: current directory)
	User      bool   // Write ~/.chime/config.yaml instead
	OutputDir string // outputDir written into the file (default: "sounds")
	Out       io.Writer
}

// RunInit writes the commented default config file. It never overwrites.
func RunInit(opts InitOptions) (string, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	var path string
	if opts.User {
		path = paths.UserConfigPath()
	} else {
		baseDir, err := resolveBaseDir(opts.BaseDir)
		if err != nil {
			return "", err
		}
		path = paths.ConfigPath(baseDir)
	}

	if config.Exists(path) {
		return path, fmt.Errorf("%w at %s", ErrConfigExists, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return path, fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(embed.GetDefaultConfig(opts.OutputDir)), 0o644); err != nil {
		return path, fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(opts.Out, "Created %s\n", path)
	return path, nil
}
