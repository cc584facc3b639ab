package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/minicodemonkey/chime/internal/config"
	"github.com/minicodemonkey/chime/internal/generate"
	"github.com/minicodemonkey/chime/internal/watch"
)

// WatchOptions contains configuration for the watch command.
type WatchOptions struct {
	BaseDir    string
	ConfigPath string
	Verbose    bool
	Log        io.Writer
	OnRun      func(*generate.Summary, error) // called after every regeneration
}

// RunWatch regenerates all sounds once, then again after every change to
// the config file, until ctx is done.
func RunWatch(ctx context.Context, opts WatchOptions) error {
	path, err := resolveConfigPath(opts.BaseDir, opts.ConfigPath)
	if err != nil {
		return err
	}
	if !config.Exists(path) {
		return fmt.Errorf("no config file at %s, run 'chime init' first", path)
	}

	w, err := watch.NewWatcher(path)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	defer w.Stop()

	logger := newLogger(opts.Log)
	logger.Printf("Watching %s", path)

	regenerate := func(cfg *config.Config) {
		var summary *generate.Summary
		genOpts, err := generate.OptionsFromConfig(cfg)
		if err == nil {
			summary, err = runBatch(ctx, genOpts, logger, opts.Verbose)
		}
		if err != nil {
			logger.Printf("Warning: generation failed: %v", err)
		} else {
			logger.Printf("Generated %d files in %s", summary.Written(), cfg.OutputDir)
		}
		if opts.OnRun != nil {
			opts.OnRun(summary, err)
		}
	}

	if cfg := w.Current(); cfg != nil {
		regenerate(cfg)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-w.Events():
			if e.Error != nil {
				logger.Printf("Warning: %v", e.Error)
				continue
			}
			logger.Printf("Config changed, regenerating")
			regenerate(e.Config)
		}
	}
}
