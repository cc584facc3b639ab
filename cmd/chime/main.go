package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/x/term"
	"github.com/minicodemonkey/chime/internal/cmd"
	"github.com/spf13/pflag"
)

const usage = `chime - synthesize notification sounds

Usage:
  chime [generate] [flags]       Render every timbre/melody pair to WAV files
  chime list                     Show available timbres and melodies
  chime play <timbre> <melody>   Synthesize one sound and play it
  chime config [flags]           Print the effective configuration
  chime init [flags]             Write a default chime.yaml
  chime watch [flags]            Regenerate whenever the config changes

Run 'chime <command> --help' for command flags.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := os.Args[1:]
	command := "generate"
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		command, args = args[0], args[1:]
	}

	var err error
	switch command {
	case "generate":
		err = runGenerate(ctx, args)
	case "list":
		err = runList(args)
	case "play":
		err = runPlay(ctx, args)
	case "config":
		err = runConfig(args)
	case "init":
		err = runInit(args)
	case "watch":
		err = runWatch(ctx, args)
	case "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n%s", command, usage)
		os.Exit(2)
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Cancelled")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// stdoutIsTerminal reports whether colors and the progress view should be used.
func stdoutIsTerminal() bool {
	return term.IsTerminal(os.Stdout.Fd())
}

func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of chime %s:\n", name)
		fs.PrintDefaults()
	}
	return fs
}

func runGenerate(ctx context.Context, args []string) error {
	fs := newFlagSet("generate")
	var opts cmd.GenerateOptions
	var seed uint64
	var noTUI bool
	fs.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default: ./chime.yaml, then ~/.chime/config.yaml)")
	fs.StringVarP(&opts.OutputDir, "out", "o", "", "output directory")
	fs.StringSliceVarP(&opts.Timbres, "timbre", "t", nil, "timbres to render (repeatable)")
	fs.StringSliceVarP(&opts.Melodies, "melody", "m", nil, "melodies to render (repeatable)")
	fs.Uint64VarP(&seed, "seed", "s", 0, "noise seed (0 = random)")
	fs.IntVarP(&opts.Workers, "workers", "w", 0, "parallel renders")
	fs.BoolVar(&noTUI, "no-tui", false, "log progress instead of showing the progress view")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "log every job and dump the effective config")
	fs.Parse(args)

	if fs.Changed("seed") {
		opts.Seed = &seed
	}
	opts.TUI = !noTUI && !opts.Verbose && stdoutIsTerminal()

	_, err := cmd.RunGenerate(ctx, opts)
	return err
}

func runList(args []string) error {
	fs := newFlagSet("list")
	rate := fs.IntP("rate", "r", 44100, "sample rate used for melody lengths")
	fs.Parse(args)

	return cmd.RunList(cmd.ListOptions{
		SampleRate: *rate,
		Width:      terminalWidth(),
		Color:      stdoutIsTerminal(),
	})
}

func runPlay(ctx context.Context, args []string) error {
	fs := newFlagSet("play")
	var opts cmd.PlayOptions
	var seed uint64
	fs.StringVarP(&opts.ConfigPath, "config", "c", "", "config file")
	fs.Uint64VarP(&seed, "seed", "s", 0, "noise seed (0 = random)")
	fs.BoolVar(&opts.Mute, "mute", false, "render and open the audio device without playing")
	fs.Parse(args)

	if fs.NArg() != 2 {
		return fmt.Errorf("play needs a timbre and a melody, e.g. 'chime play piano task_complete'")
	}
	opts.Timbre, opts.Melody = fs.Arg(0), fs.Arg(1)
	if fs.Changed("seed") {
		opts.Seed = &seed
	}
	return cmd.RunPlay(ctx, opts)
}

func runConfig(args []string) error {
	fs := newFlagSet("config")
	var opts cmd.ConfigOptions
	fs.StringVarP(&opts.ConfigPath, "config", "c", "", "config file")
	fs.Parse(args)

	opts.Color = stdoutIsTerminal()
	return cmd.RunConfig(opts)
}

func runInit(args []string) error {
	fs := newFlagSet("init")
	var opts cmd.InitOptions
	fs.BoolVar(&opts.User, "user", false, "write ~/.chime/config.yaml instead of ./chime.yaml")
	fs.StringVarP(&opts.OutputDir, "out", "o", "sounds", "outputDir written to the file")
	fs.Parse(args)

	_, err := cmd.RunInit(opts)
	return err
}

func runWatch(ctx context.Context, args []string) error {
	fs := newFlagSet("watch")
	var opts cmd.WatchOptions
	fs.StringVarP(&opts.ConfigPath, "config", "c", "", "config file")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "log every job")
	fs.Parse(args)

	return cmd.RunWatch(ctx, opts)
}
