package synth

import (
	"errors"
	"math"
	"testing"
)

func newSeeded(t *testing.T, timbre Timbre, seed uint64) Generator {
	t.Helper()
	gen, err := New(timbre, NewNoise(seed))
	if err != nil {
		t.Fatalf("New(%q): %v", timbre, err)
	}
	return gen
}

func TestSineClosedForm(t *testing.T) {
	w := Sine(440, 1.0, 44100)
	if len(w) != 44100 {
		t.Fatalf("len = %d, want 44100", len(w))
	}
	if math.Abs(w[0]) > 1e-12 {
		t.Errorf("first sample = %v, want 0", w[0])
	}
	for _, i := range []int{1, 25, 11025, 30000, 44099} {
		want := math.Sin(2 * math.Pi * 440 * float64(i) / 44100)
		if math.Abs(w[i]-want) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, w[i], want)
		}
	}
}

func TestGeneratorLengths(t *testing.T) {
	durations := []float64{0.08, 0.15, 0.2, 0.35, 0.5, 1.0}
	rates := []int{22050, 44100, 48000}
	for _, timbre := range Timbres() {
		gen := newSeeded(t, timbre, 1)
		for _, rate := range rates {
			for _, d := range durations {
				w := gen.Generate(587, d, rate)
				want := int(math.Round(float64(rate) * d))
				if len(w) != want {
					t.Errorf("%s at %d Hz for %vs: len = %d, want %d", timbre, rate, d, len(w), want)
				}
			}
		}
	}
}

func TestModeledTimbresArePeakNormalized(t *testing.T) {
	for _, timbre := range []Timbre{TimbrePiano, TimbreMusicBox, TimbrePipeOrgan} {
		gen := newSeeded(t, timbre, 42)
		for _, freq := range []float64{300, 587, 784} {
			w := gen.Generate(freq, 0.2, 44100)
			if peak := w.Peak(); math.Abs(peak-1.0) > 1e-12 {
				t.Errorf("%s at %v Hz: peak = %v, want 1.0", timbre, freq, peak)
			}
		}
	}
}

func TestBareWaveformsAreBounded(t *testing.T) {
	for _, timbre := range []Timbre{TimbreSine, TimbreTriangle, TimbreSquare} {
		gen := newSeeded(t, timbre, 0)
		w := gen.Generate(493, 0.5, 44100)
		for i, s := range w {
			if s < -1 || s > 1 || math.IsNaN(s) {
				t.Fatalf("%s sample %d = %v out of range", timbre, i, s)
			}
		}
	}
}

func TestBareWaveformsAreDeterministic(t *testing.T) {
	for _, timbre := range []Timbre{TimbreSine, TimbreTriangle, TimbreSquare} {
		gen := newSeeded(t, timbre, 0)
		a := gen.Generate(392, 0.15, 44100)
		b := gen.Generate(392, 0.15, 44100)
		for i := range a {
			if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
				t.Fatalf("%s sample %d differs: %v vs %v", timbre, i, a[i], b[i])
			}
		}
	}
}

func TestSeededNoiseIsReproducible(t *testing.T) {
	for _, timbre := range []Timbre{TimbrePiano, TimbreMusicBox, TimbrePipeOrgan} {
		a := newSeeded(t, timbre, 7).Generate(600, 0.05, 44100)
		b := newSeeded(t, timbre, 7).Generate(600, 0.05, 44100)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("%s sample %d differs with the same seed", timbre, i)
			}
		}
	}
}

func TestTriangleZeroCrossingsAndPeaks(t *testing.T) {
	// 100 Hz at 8 kHz: half period = 40 samples, quarter period = 20
	w := Triangle(100, 0.05, 8000)
	for i := 0; i < len(w); i += 40 {
		if math.Abs(w[i]) > 1e-9 {
			t.Errorf("sample %d = %v, want zero crossing", i, w[i])
		}
	}
	for i := 20; i < len(w); i += 80 {
		if math.Abs(w[i]-1) > 1e-6 {
			t.Errorf("sample %d = %v, want +1", i, w[i])
		}
	}
	for i := 60; i < len(w); i += 80 {
		if math.Abs(w[i]+1) > 1e-6 {
			t.Errorf("sample %d = %v, want -1", i, w[i])
		}
	}
	// linear between extremes
	if math.Abs(w[10]-0.5) > 1e-9 {
		t.Errorf("sample 10 = %v, want 0.5", w[10])
	}
}

func TestSquareValues(t *testing.T) {
	w := Square(440, 0.1, 44100)
	if w[0] != 0 {
		t.Errorf("sign(sin(0)) = %v, want 0", w[0])
	}
	positive, negative := 0, 0
	for i, s := range w {
		switch s {
		case 1:
			positive++
		case -1:
			negative++
		case 0:
		default:
			t.Fatalf("sample %d = %v, want -1, 0 or 1", i, s)
		}
	}
	if positive == 0 || negative == 0 {
		t.Errorf("expected both polarities, got %d positive, %d negative", positive, negative)
	}
}

func TestDegenerateInputs(t *testing.T) {
	for _, timbre := range Timbres() {
		gen := newSeeded(t, timbre, 3)

		for _, d := range []float64{0, -1, 1e-9} {
			if w := gen.Generate(440, d, 44100); len(w) != 0 {
				t.Errorf("%s duration %v: len = %d, want 0", timbre, d, len(w))
			}
		}
		if w := gen.Generate(440, 0.1, 0); len(w) != 0 {
			t.Errorf("%s with zero sample rate: len = %d, want 0", timbre, len(w))
		}

		for _, f := range []float64{0, -440} {
			w := gen.Generate(f, 0.1, 44100)
			if len(w) != 4410 {
				t.Errorf("%s freq %v: len = %d, want 4410", timbre, f, len(w))
			}
			if peak := w.Peak(); peak != 0 {
				t.Errorf("%s freq %v: peak = %v, want silence", timbre, f, peak)
			}
		}
	}
}

func TestNormalizeSkipsSilence(t *testing.T) {
	w := normalize(make(Waveform, 10))
	for i, s := range w {
		if s != 0 || math.IsNaN(s) {
			t.Fatalf("sample %d = %v after normalizing silence", i, s)
		}
	}
	if got := normalize(nil); len(got) != 0 {
		t.Errorf("normalize(nil) has %d samples", len(got))
	}

	w = normalize(Waveform{0.25, -0.5, 0.1})
	if w[1] != -1 || w[0] != 0.5 {
		t.Errorf("normalize = %v, want [0.5 -1 0.2]", w)
	}
}

func TestPianoPartials(t *testing.T) {
	partials := PianoPartials(100)
	if len(partials) != 25 {
		t.Fatalf("len = %d, want 25", len(partials))
	}
	if partials[0].Strength != 1.0 {
		t.Errorf("fundamental strength = %v, want 1.0", partials[0].Strength)
	}
	for i, p := range partials {
		n := float64(i + 1)
		want := 100 * n * math.Sqrt(1+0.0005*n*n)
		if math.Abs(p.Freq-want) > 1e-9 {
			t.Errorf("partial %d freq = %v, want %v", i+1, p.Freq, want)
		}
		if i > 0 && p.Freq <= 100*n {
			t.Errorf("partial %d should be stretched above %v, got %v", i+1, 100*n, p.Freq)
		}
		if i > 0 {
			prev := partials[i-1]
			if p.Strength > prev.Strength {
				t.Errorf("partial %d louder than %d: %v > %v", i+1, i, p.Strength, prev.Strength)
			}
			if p.Decay <= prev.Decay {
				t.Errorf("partial %d decays no faster than %d", i+1, i)
			}
		}
	}
}

func TestOrganHarmonics(t *testing.T) {
	partials := OrganHarmonics(200)
	if len(partials) != 20 {
		t.Fatalf("len = %d, want 20", len(partials))
	}
	for i, p := range partials {
		if p.Freq != 200*float64(i+1) {
			t.Errorf("harmonic %d freq = %v, want %v", i+1, p.Freq, 200*float64(i+1))
		}
		if i > 0 && p.Strength > partials[i-1].Strength {
			t.Errorf("harmonic %d louder than %d", i+1, i)
		}
	}
	// near steady state: the 20th harmonic decays at most twice as fast
	if ratio := partials[19].Decay / partials[0].Decay; ratio > 2 {
		t.Errorf("decay spread %v too wide for a sustained tone", ratio)
	}
}

func TestMusicBoxPartialsDecayWithRatio(t *testing.T) {
	partials := MusicBoxPartials(440)
	if len(partials) != 7 {
		t.Fatalf("len = %d, want 7", len(partials))
	}
	for i := 1; i < len(partials); i++ {
		if partials[i].Decay <= partials[i-1].Decay {
			t.Errorf("partial %d decays no faster than %d", i, i-1)
		}
		if math.Mod(partials[i].Freq/440, 1) == 0 {
			t.Errorf("partial %d ratio %v should be non-integer", i, partials[i].Freq/440)
		}
	}
}

func TestNewAndParse(t *testing.T) {
	for _, timbre := range Timbres() {
		parsed, err := ParseTimbre(string(timbre))
		if err != nil || parsed != timbre {
			t.Errorf("ParseTimbre(%q) = %q, %v", timbre, parsed, err)
		}
		if timbre.Description() == "" {
			t.Errorf("%s has no description", timbre)
		}
	}

	if _, err := ParseTimbre("kazoo"); !errors.Is(err, ErrUnknownTimbre) {
		t.Errorf("ParseTimbre(kazoo) error = %v, want ErrUnknownTimbre", err)
	}
	if _, err := New("kazoo", nil); !errors.Is(err, ErrUnknownTimbre) {
		t.Errorf("New(kazoo) error = %v, want ErrUnknownTimbre", err)
	}
}

func TestZeroValueGeneratorsUseRandomNoise(t *testing.T) {
	gens := []Generator{&Piano{}, &MusicBox{}, &PipeOrgan{}}
	for _, gen := range gens {
		w := gen.Generate(440, 0.05, 44100)
		if math.Abs(w.Peak()-1) > 1e-12 {
			t.Errorf("%T peak = %v, want 1", gen, w.Peak())
		}
	}
}
