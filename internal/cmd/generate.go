package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"
	"github.com/minicodemonkey/chime/internal/config"
	"github.com/minicodemonkey/chime/internal/generate"
	"github.com/minicodemonkey/chime/internal/tui"
)

// GenerateOptions contains configuration for the generate command. Non-zero
// fields override the loaded config.
type GenerateOptions struct {
	BaseDir    string   // Directory searched for chime.yaml (default: current directory)
	ConfigPath string   // Explicit config file
	OutputDir  string   // Overrides outputDir
	Timbres    []string // Overrides timbres
	Melodies   []string // Overrides melodies
	Seed       *uint64  // Overrides seed when set
	Workers    int      // Overrides workers when > 0
	TUI        bool     // Show the Bubble Tea progress view
	Verbose    bool     // Log every job start and dump the effective options
	Out        io.Writer
	Log        io.Writer
}

// RunGenerate renders every selected (timbre, melody) pair to WAV files.
func RunGenerate(ctx context.Context, opts GenerateOptions) (*generate.Summary, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	cfg, path, err := loadConfig(opts.BaseDir, opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, opts)

	genOpts, err := generate.OptionsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger := newLogger(opts.Log)
	if opts.Verbose {
		logger.Printf("Using config %s", path)
		logger.Print(spew.Sdump(cfg))
	}

	var summary *generate.Summary
	if opts.TUI {
		summary, err = runWithTUI(ctx, genOpts)
	} else {
		summary, err = runBatch(ctx, genOpts, logger, opts.Verbose)
	}
	if err != nil {
		return summary, err
	}

	fmt.Fprintf(opts.Out, "Generated %d files in %s\n", summary.Written(), cfg.OutputDir)
	return summary, nil
}

func applyOverrides(cfg *config.Config, opts GenerateOptions) {
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}
	if len(opts.Timbres) > 0 {
		cfg.Timbres = opts.Timbres
	}
	if len(opts.Melodies) > 0 {
		cfg.Melodies = opts.Melodies
	}
	if opts.Seed != nil {
		cfg.Seed = *opts.Seed
	}
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
}

// runWithTUI drives the runner from the progress view. The event channel is
// sized so the runner never blocks on a view that has already quit.
func runWithTUI(ctx context.Context, genOpts generate.Options) (*generate.Summary, error) {
	jobs := len(genOpts.Timbres) * len(genOpts.Melodies)
	events := make(chan generate.Event, 2*jobs+1)
	genOpts.OnEvent = func(e generate.Event) { events <- e }
	runner := generate.NewRunner(genOpts)

	app := tui.NewApp(runner.Jobs(), events, func(appCtx context.Context) (*generate.Summary, error) {
		defer close(events)
		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		stop := context.AfterFunc(appCtx, cancel)
		defer stop()
		return runner.Run(runCtx)
	})

	p := tea.NewProgram(app)
	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("error running progress view: %w", err)
	}

	if app.State() == tui.StateStopped && app.Err() == nil {
		return app.Summary(), context.Canceled
	}
	return app.Summary(), app.Err()
}
