// Package melody assembles notes rendered by a synth.Generator into the
// three notification cues.
package melody

import (
	"errors"
	"fmt"

	"github.com/minicodemonkey/chime/internal/synth"
)

// ErrUnknownMelody is returned for a melody name that is not one of the cues.
var ErrUnknownMelody = errors.New("unknown melody")

// TrailingPad is the silence appended after the last note of every melody.
const TrailingPad = 0.1

// NoteSpec describes one note of a melody. Gap is the silence that follows
// the note; it is ignored for the final note. Fade is the edge ramp applied
// to both ends of the note to avoid clicks at the joins.
type NoteSpec struct {
	Freq     float64 // Hz
	Duration float64 // seconds
	Gap      float64 // seconds
	Fade     float64 // seconds
}

// Name identifies a notification cue.
type Name string

const (
	TaskComplete Name = "task_complete"
	Attention    Name = "attention"
	Error        Name = "error"
)

// Names returns every cue in generation order.
func Names() []Name {
	return []Name{TaskComplete, Attention, Error}
}

// ParseName validates a melody name.
func ParseName(name string) (Name, error) {
	for _, n := range Names() {
		if string(n) == name {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMelody, name)
}

// Description is a one-line summary of the cue.
func (n Name) Description() string {
	switch n {
	case TaskComplete:
		return "rising four-note completion cue"
	case Attention:
		return "triple beep"
	case Error:
		return "descending two-note alert"
	default:
		return ""
	}
}

// Notes returns the fixed note sequence for the cue.
func Notes(name Name) ([]NoteSpec, error) {
	switch name {
	case TaskComplete:
		// G4 B4 D5 G5, each note longer and the last ringing out
		return []NoteSpec{
			{Freq: 392, Duration: 0.15, Gap: 0.08, Fade: 0.015},
			{Freq: 493, Duration: 0.15, Gap: 0.08, Fade: 0.015},
			{Freq: 587, Duration: 0.2, Gap: 0.08, Fade: 0.015},
			{Freq: 784, Duration: 0.5, Fade: 0.015},
		}, nil
	case Attention:
		beep := NoteSpec{Freq: 587, Duration: 0.08, Gap: 0.08, Fade: 0.01}
		return []NoteSpec{beep, beep, beep}, nil
	case Error:
		return []NoteSpec{
			{Freq: 600, Duration: 0.2, Fade: 0.015},
			{Freq: 300, Duration: 0.35, Fade: 0.02},
		}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMelody, string(name))
	}
}

// Length returns the number of samples Assemble produces for notes.
func Length(notes []NoteSpec, sampleRate int) int {
	total := 0
	for i, note := range notes {
		total += synth.SampleCount(sampleRate, note.Duration)
		if i < len(notes)-1 {
			total += synth.SampleCount(sampleRate, note.Gap)
		}
	}
	return total + synth.SampleCount(sampleRate, TrailingPad)
}

// Assemble renders each note with gen, fades its edges and joins the notes
// with their gaps, then appends TrailingPad of silence.
func Assemble(gen synth.Generator, notes []NoteSpec, sampleRate int) synth.Waveform {
	out := make(synth.Waveform, 0, Length(notes, sampleRate))
	for i, note := range notes {
		tone := gen.Generate(note.Freq, note.Duration, sampleRate)
		out = append(out, synth.Fade(tone, sampleRate, note.Fade)...)
		if i < len(notes)-1 {
			out = appendSilence(out, synth.SampleCount(sampleRate, note.Gap))
		}
	}
	return appendSilence(out, synth.SampleCount(sampleRate, TrailingPad))
}

// Render assembles the named cue.
func Render(name Name, gen synth.Generator, sampleRate int) (synth.Waveform, error) {
	notes, err := Notes(name)
	if err != nil {
		return nil, err
	}
	return Assemble(gen, notes, sampleRate), nil
}

func appendSilence(w synth.Waveform, n int) synth.Waveform {
	for i := 0; i < n; i++ {
		w = append(w, 0)
	}
	return w
}
