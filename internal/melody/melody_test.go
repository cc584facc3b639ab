package melody

import (
	"errors"
	"testing"

	"github.com/minicodemonkey/chime/internal/synth"
)

// constGen returns a buffer of ones so the layout of notes and gaps is visible.
var constGen = synth.GeneratorFunc(func(freq, duration float64, sampleRate int) synth.Waveform {
	w := make(synth.Waveform, synth.SampleCount(sampleRate, duration))
	for i := range w {
		w[i] = 1
	}
	return w
})

func TestAttentionLength(t *testing.T) {
	w, err := Render(Attention, synth.GeneratorFunc(synth.Sine), 44100)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// 3 notes + 2 gaps of 80 ms, 100 ms pad
	want := 3*3528 + 2*3528 + 4410
	if want != 22050 {
		t.Fatalf("arithmetic: %d", want)
	}
	if len(w) != want {
		t.Errorf("len = %d, want %d", len(w), want)
	}
}

func TestLengthMatchesAssemble(t *testing.T) {
	for _, rate := range []int{22050, 44100, 48000} {
		for _, name := range Names() {
			notes, err := Notes(name)
			if err != nil {
				t.Fatalf("Notes(%s): %v", name, err)
			}
			w := Assemble(constGen, notes, rate)

			want := 0
			for i, n := range notes {
				want += synth.SampleCount(rate, n.Duration)
				if i < len(notes)-1 {
					want += synth.SampleCount(rate, n.Gap)
				}
			}
			want += synth.SampleCount(rate, TrailingPad)

			if len(w) != want {
				t.Errorf("%s at %d Hz: len = %d, want %d", name, rate, len(w), want)
			}
			if got := Length(notes, rate); got != want {
				t.Errorf("Length(%s, %d) = %d, want %d", name, rate, got, want)
			}
		}
	}
}

func TestAssembleLayout(t *testing.T) {
	// 1 kHz makes every segment an exact sample count
	notes := []NoteSpec{
		{Freq: 1, Duration: 0.05, Gap: 0.02, Fade: 0.01},
		{Freq: 1, Duration: 0.03, Gap: 0.5, Fade: 0.01},
	}
	w := Assemble(constGen, notes, 1000)
	if len(w) != 50+20+30+100 {
		t.Fatalf("len = %d, want 200 (final gap must be dropped)", len(w))
	}

	segments := []struct {
		from, to int
		silent   bool
	}{
		{0, 50, false},
		{50, 70, true},
		{70, 100, false},
		{100, 200, true},
	}
	for _, seg := range segments {
		for i := seg.from; i < seg.to; i++ {
			if seg.silent && w[i] != 0 {
				t.Fatalf("sample %d = %v, want silence", i, w[i])
			}
		}
		if !seg.silent {
			if w[seg.from] != 0 || w[seg.to-1] != 0 {
				t.Errorf("note [%d,%d) edges not faded: %v, %v", seg.from, seg.to, w[seg.from], w[seg.to-1])
			}
			mid := (seg.from + seg.to) / 2
			if w[mid] != 1 {
				t.Errorf("note [%d,%d) middle = %v, want 1", seg.from, seg.to, w[mid])
			}
		}
	}
}

func TestAssembleEmpty(t *testing.T) {
	w := Assemble(constGen, nil, 44100)
	if len(w) != 4410 {
		t.Errorf("empty melody len = %d, want pad only (4410)", len(w))
	}
}

func TestCanonicalMelodies(t *testing.T) {
	tc, _ := Notes(TaskComplete)
	if len(tc) != 4 {
		t.Fatalf("task_complete has %d notes, want 4", len(tc))
	}
	for i := 1; i < len(tc); i++ {
		if tc[i].Freq <= tc[i-1].Freq {
			t.Errorf("task_complete note %d does not rise", i)
		}
		if tc[i].Duration < tc[i-1].Duration {
			t.Errorf("task_complete note %d is shorter than the previous", i)
		}
	}
	if tc[3].Gap != 0 {
		t.Errorf("task_complete final gap = %v, want 0", tc[3].Gap)
	}

	att, _ := Notes(Attention)
	if len(att) != 3 {
		t.Fatalf("attention has %d notes, want 3", len(att))
	}
	for _, n := range att {
		if n != att[0] {
			t.Errorf("attention notes differ: %+v vs %+v", n, att[0])
		}
	}

	errNotes, _ := Notes(Error)
	if len(errNotes) != 2 {
		t.Fatalf("error has %d notes, want 2", len(errNotes))
	}
	if errNotes[0].Gap != 0 {
		t.Errorf("error gap = %v, want none", errNotes[0].Gap)
	}
	if errNotes[1].Freq >= errNotes[0].Freq || errNotes[1].Duration <= errNotes[0].Duration {
		t.Errorf("error should descend into a longer note: %+v", errNotes)
	}
}

func TestUnknownMelody(t *testing.T) {
	if _, err := ParseName("fanfare"); !errors.Is(err, ErrUnknownMelody) {
		t.Errorf("ParseName error = %v, want ErrUnknownMelody", err)
	}
	if _, err := Render("fanfare", constGen, 44100); !errors.Is(err, ErrUnknownMelody) {
		t.Errorf("Render error = %v, want ErrUnknownMelody", err)
	}
	for _, n := range Names() {
		if got, err := ParseName(string(n)); err != nil || got != n {
			t.Errorf("ParseName(%q) = %q, %v", n, got, err)
		}
	}
}

func TestRenderAllTimbres(t *testing.T) {
	for _, timbre := range synth.Timbres() {
		gen, err := synth.New(timbre, synth.NewNoise(9))
		if err != nil {
			t.Fatalf("synth.New(%s): %v", timbre, err)
		}
		for _, name := range Names() {
			w, err := Render(name, gen, 22050)
			if err != nil {
				t.Fatalf("Render(%s, %s): %v", name, timbre, err)
			}
			if peak := w.Peak(); peak > 1+1e-12 {
				t.Errorf("%s/%s peak = %v exceeds 1", timbre, name, peak)
			}
		}
	}
}
