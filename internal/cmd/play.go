package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/minicodemonkey/chime/internal/generate"
	"github.com/minicodemonkey/chime/internal/melody"
	"github.com/minicodemonkey/chime/internal/notify"
	"github.com/minicodemonkey/chime/internal/synth"
	"github.com/minicodemonkey/chime/internal/wav"
)

// PlayOptions contains configuration for the play command.
type PlayOptions struct {
	Timbre     string
	Melody     string
	BaseDir    string
	ConfigPath string
	Seed       *uint64 // Overrides seed when set
	Mute       bool    // Render and open the device without making a sound
	Out        io.Writer
}

// playSound sends an encoded WAV file to the audio device.
var playSound = func(ctx context.Context, sampleRate int, data []byte, mute bool) error {
	n, err := notify.GetNotifier(sampleRate)
	if err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	n.SetEnabled(!mute)
	return n.Play(ctx, data)
}

// RunPlay synthesizes one melody in memory and plays it.
func RunPlay(ctx context.Context, opts PlayOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	timbre, err := synth.ParseTimbre(opts.Timbre)
	if err != nil {
		return err
	}
	name, err := melody.ParseName(opts.Melody)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(opts.BaseDir, opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Seed != nil {
		cfg.Seed = *opts.Seed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	noise := synth.RandomNoise()
	if cfg.Seed != 0 {
		noise = synth.NewNoise(cfg.Seed)
	}

	job := generate.Job{Timbre: timbre, Melody: name}
	w, err := generate.Render(job, cfg.SampleRate, noise)
	if err != nil {
		return err
	}
	data, err := wav.Bytes(w, cfg.SampleRate, cfg.Gain)
	if err != nil {
		return err
	}

	verb := "Playing"
	if opts.Mute {
		verb = "Rendered (muted)"
	}
	fmt.Fprintf(opts.Out, "%s %s (%.2f s)\n", verb, job, w.Duration(cfg.SampleRate))
	return playSound(ctx, cfg.SampleRate, data, opts.Mute)
}
