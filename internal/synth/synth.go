// Package synth renders single notes for the six chime timbres.
// The bare waveforms (sine, triangle, square) are closed-form; piano, music
// box and pipe organ are additive models built from decaying sine partials,
// shaped by the envelope primitives in this package and peak-normalized.
package synth

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownTimbre is returned when a timbre name is not one of the presets.
var ErrUnknownTimbre = errors.New("unknown timbre")

// normalizeEpsilon is the smallest peak that is scaled up to 1.0.
const normalizeEpsilon = 1e-12

// Waveform is a mono buffer of samples, nominally in [-1, 1].
type Waveform []float64

// Clone returns an independent copy of w.
func (w Waveform) Clone() Waveform {
	if w == nil {
		return nil
	}
	out := make(Waveform, len(w))
	copy(out, w)
	return out
}

// Peak returns the largest absolute sample value.
func (w Waveform) Peak() float64 {
	peak := 0.0
	for _, s := range w {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}

// Duration returns the length of w in seconds at sampleRate.
func (w Waveform) Duration(sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(len(w)) / float64(sampleRate)
}

// normalize scales w in place so its peak is exactly 1.0. Silent or empty
// buffers are left alone.
func normalize(w Waveform) Waveform {
	peak := w.Peak()
	if peak <= normalizeEpsilon {
		return w
	}
	for i := range w {
		w[i] /= peak
	}
	return w
}

// Partial is one sinusoidal component of an additive tone.
type Partial struct {
	Freq     float64 // Hz
	Strength float64 // linear amplitude, (0, 1]
	Decay    float64 // exponential decay rate, 1/s
}

// Generator renders a single note.
type Generator interface {
	Generate(freq, duration float64, sampleRate int) Waveform
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(freq, duration float64, sampleRate int) Waveform

// Generate calls f.
func (f GeneratorFunc) Generate(freq, duration float64, sampleRate int) Waveform {
	return f(freq, duration, sampleRate)
}

// Timbre names one of the generator presets.
type Timbre string

const (
	TimbreSine      Timbre = "sine"
	TimbreTriangle  Timbre = "triangle"
	TimbreSquare    Timbre = "square"
	TimbrePiano     Timbre = "piano"
	TimbreMusicBox  Timbre = "music_box"
	TimbrePipeOrgan Timbre = "pipe_organ"
)

// Timbres returns every preset in generation order.
func Timbres() []Timbre {
	return []Timbre{
		TimbreSine,
		TimbreTriangle,
		TimbreSquare,
		TimbrePiano,
		TimbreMusicBox,
		TimbrePipeOrgan,
	}
}

// Description is a one-line summary of the timbre's model.
func (t Timbre) Description() string {
	switch t {
	case TimbreSine:
		return "pure sine"
	case TimbreTriangle:
		return "triangle from arcsin(sin(phase))"
	case TimbreSquare:
		return "square from sign(sin(phase))"
	case TimbrePiano:
		return fmt.Sprintf("%d inharmonic partials, fn = f0*n*sqrt(1+B*n^2), strike noise", pianoPartials)
	case TimbreMusicBox:
		return fmt.Sprintf("%d detuned metallic partials, pin click", len(musicBoxPartials))
	case TimbrePipeOrgan:
		return fmt.Sprintf("%d sustained harmonics with wind noise", organHarmonics)
	default:
		return ""
	}
}

// Stochastic reports whether the timbre mixes in random noise.
func (t Timbre) Stochastic() bool {
	switch t {
	case TimbrePiano, TimbreMusicBox, TimbrePipeOrgan:
		return true
	default:
		return false
	}
}

// ParseTimbre validates a timbre name.
func ParseTimbre(name string) (Timbre, error) {
	for _, t := range Timbres() {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownTimbre, name)
}

// New returns the generator for t. noise feeds the noise layers of the
// physically modeled timbres; nil means an unseeded source.
func New(t Timbre, noise NoiseSource) (Generator, error) {
	switch t {
	case TimbreSine:
		return GeneratorFunc(Sine), nil
	case TimbreTriangle:
		return GeneratorFunc(Triangle), nil
	case TimbreSquare:
		return GeneratorFunc(Square), nil
	case TimbrePiano:
		return &Piano{Noise: noiseOrRandom(noise)}, nil
	case TimbreMusicBox:
		return &MusicBox{Noise: noiseOrRandom(noise)}, nil
	case TimbrePipeOrgan:
		return &PipeOrgan{Noise: noiseOrRandom(noise)}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownTimbre, string(t))
	}
}
