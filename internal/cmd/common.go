// Package cmd provides the CLI command implementations for chime: generate,
// list, play, config, init and watch. Each command takes an options struct
// so it can be driven from main or from tests.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/minicodemonkey/chime/internal/config"
	"github.com/minicodemonkey/chime/internal/generate"
	"github.com/minicodemonkey/chime/internal/paths"
)

// resolveBaseDir defaults baseDir to the working directory.
func resolveBaseDir(baseDir string) (string, error) {
	if baseDir != "" {
		return baseDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return cwd, nil
}

// resolveConfigPath returns explicit when set, otherwise the project or user
// config file for baseDir.
func resolveConfigPath(baseDir, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	baseDir, err := resolveBaseDir(baseDir)
	if err != nil {
		return "", err
	}
	return paths.ResolveConfig(baseDir), nil
}

// loadConfig resolves and loads the effective config.
func loadConfig(baseDir, explicit string) (*config.Config, string, error) {
	path, err := resolveConfigPath(baseDir, explicit)
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, path, nil
}

// runBatch renders without a progress view, logging each job.
func runBatch(ctx context.Context, genOpts generate.Options, logger *log.Logger, verbose bool) (*generate.Summary, error) {
	genOpts.OnEvent = logEvents(logger, verbose)
	return generate.NewRunner(genOpts).Run(ctx)
}

// logEvents returns an OnEvent callback that logs progress to logger.
func logEvents(logger *log.Logger, verbose bool) func(generate.Event) {
	return func(e generate.Event) {
		switch e.Type {
		case generate.EventStarted:
			if verbose {
				logger.Printf("Rendering %s", e.Job)
			}
		case generate.EventWritten:
			logger.Printf("Wrote %s (%d samples, %s)", e.Path, e.Samples, e.Elapsed.Round(time.Millisecond))
		case generate.EventFailed:
			logger.Printf("Warning: %v", e.Err)
		}
	}
}

func newLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.New(w, "", log.LstdFlags)
}
