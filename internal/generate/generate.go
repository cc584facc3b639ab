// Package generate renders every selected (timbre, melody) pair and hands
// the results to a sink. Jobs are independent and run in parallel; the first
// failure cancels the rest.
package generate

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/minicodemonkey/chime/internal/config"
	"github.com/minicodemonkey/chime/internal/melody"
	"github.com/minicodemonkey/chime/internal/paths"
	"github.com/minicodemonkey/chime/internal/synth"
	"github.com/minicodemonkey/chime/internal/wav"
	"golang.org/x/sync/errgroup"
)

// Sink receives each finished waveform.
type Sink interface {
	Write(path string, w synth.Waveform, sampleRate int) error
}

// Job is one output file.
type Job struct {
	Timbre synth.Timbre
	Melody melody.Name
}

func (j Job) String() string {
	return string(j.Timbre) + "/" + string(j.Melody)
}

// EventType represents the type of event emitted by the runner.
type EventType int

const (
	EventStarted EventType = iota
	EventWritten
	EventFailed
)

func (e EventType) String() string {
	switch e {
	case EventStarted:
		return "Started"
	case EventWritten:
		return "Written"
	case EventFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Event reports progress of a single job.
type Event struct {
	Type    EventType
	Job     Job
	Index   int // position in Jobs()
	Path    string
	Samples int
	Elapsed time.Duration
	Err     error
}

// Options configures a Runner.
type Options struct {
	SampleRate int
	OutputDir  string
	Timbres    []synth.Timbre
	Melodies   []melody.Name
	Seed       uint64 // 0 = unseeded noise
	Workers    int    // 0 = GOMAXPROCS
	Sink       Sink
	OnEvent    func(Event)
}

// OptionsFromConfig validates cfg and converts it to runner options writing
// WAV files with the configured gain.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	if err := cfg.Validate(); err != nil {
		return Options{}, fmt.Errorf("invalid config: %w", err)
	}
	timbres, _ := cfg.ParsedTimbres()
	melodies, _ := cfg.ParsedMelodies()
	return Options{
		SampleRate: cfg.SampleRate,
		OutputDir:  cfg.OutputDir,
		Timbres:    dedupe(timbres),
		Melodies:   dedupe(melodies),
		Seed:       cfg.Seed,
		Workers:    cfg.Workers,
		Sink:       wav.FileSink{Gain: cfg.Gain},
	}, nil
}

func dedupe[T comparable](in []T) []T {
	seen := make(map[T]bool, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Summary describes a finished run.
type Summary struct {
	Paths   []string // indexed like Jobs(); empty for jobs that did not finish
	Samples int
	Elapsed time.Duration
}

// Written returns the number of files written.
func (s *Summary) Written() int {
	n := 0
	for _, p := range s.Paths {
		if p != "" {
			n++
		}
	}
	return n
}

// Runner renders jobs in parallel.
type Runner struct {
	opts Options

	mu      sync.Mutex // serializes OnEvent and summary updates
	summary Summary
}

// NewRunner creates a runner. A nil Sink writes WAV files at full scale.
func NewRunner(opts Options) *Runner {
	if opts.Sink == nil {
		opts.Sink = wav.FileSink{Gain: wav.DefaultGain}
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Runner{opts: opts}
}

// Jobs returns the work list, timbre-major.
func (r *Runner) Jobs() []Job {
	jobs := make([]Job, 0, len(r.opts.Timbres)*len(r.opts.Melodies))
	for _, t := range r.opts.Timbres {
		for _, m := range r.opts.Melodies {
			jobs = append(jobs, Job{Timbre: t, Melody: m})
		}
	}
	return jobs
}

// Run creates the timbre directories, then renders and writes every job.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	jobs := r.Jobs()
	r.summary = Summary{Paths: make([]string, len(jobs))}

	for _, t := range r.opts.Timbres {
		dir := paths.TimbreDir(r.opts.OutputDir, string(t))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &r.summary, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return r.runJob(i, job)
		})
	}
	err := g.Wait()

	r.summary.Elapsed = time.Since(start)
	return &r.summary, err
}

func (r *Runner) runJob(index int, job Job) error {
	path := paths.SoundPath(r.opts.OutputDir, string(job.Timbre), string(job.Melody))
	r.emit(Event{Type: EventStarted, Job: job, Index: index, Path: path})
	start := time.Now()

	w, err := Render(job, r.opts.SampleRate, r.noiseFor(index))
	if err == nil {
		err = r.opts.Sink.Write(path, w, r.opts.SampleRate)
	}
	if err != nil {
		err = fmt.Errorf("%s: %w", job, err)
		r.emit(Event{Type: EventFailed, Job: job, Index: index, Path: path, Err: err, Elapsed: time.Since(start)})
		return err
	}

	r.mu.Lock()
	r.summary.Paths[index] = path
	r.summary.Samples += len(w)
	r.mu.Unlock()

	r.emit(Event{Type: EventWritten, Job: job, Index: index, Path: path, Samples: len(w), Elapsed: time.Since(start)})
	return nil
}

// noiseFor gives each job its own source so parallel renders never share one.
func (r *Runner) noiseFor(index int) synth.NoiseSource {
	if r.opts.Seed == 0 {
		return synth.RandomNoise()
	}
	return synth.NewNoise(r.opts.Seed + uint64(index))
}

func (r *Runner) emit(e Event) {
	if r.opts.OnEvent == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts.OnEvent(e)
}

// Render synthesizes one job in memory.
func Render(job Job, sampleRate int, noise synth.NoiseSource) (synth.Waveform, error) {
	gen, err := synth.New(job.Timbre, noise)
	if err != nil {
		return nil, err
	}
	return melody.Render(job.Melody, gen, sampleRate)
}
