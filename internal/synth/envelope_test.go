package synth

import (
	"math"
	"testing"
)

func TestLinearAttack(t *testing.T) {
	tests := []struct {
		t, rate, want float64
	}{
		{0, 350, 0},
		{0.001, 1000, 1},
		{0.001, 500, 0.5},
		{1, 5, 1},
		{0.1, 5, 0.5},
	}
	for _, tt := range tests {
		if got := LinearAttack(tt.t, tt.rate); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("LinearAttack(%v, %v) = %v, want %v", tt.t, tt.rate, got, tt.want)
		}
	}
}

func TestExpDecay(t *testing.T) {
	if got := ExpDecay(0, 40); got != 1 {
		t.Errorf("ExpDecay(0, 40) = %v, want 1", got)
	}
	if got := ExpDecay(1, 0); got != 1 {
		t.Errorf("ExpDecay(1, 0) = %v, want 1", got)
	}
	if got, want := ExpDecay(0.5, 2), math.Exp(-1); math.Abs(got-want) > 1e-15 {
		t.Errorf("ExpDecay(0.5, 2) = %v, want %v", got, want)
	}
}

func ones(n int) Waveform {
	w := make(Waveform, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

func TestFadeRamps(t *testing.T) {
	// 10 ms at 1 kHz = 10 samples per edge
	w := ones(50)
	faded := Fade(w, 1000, 0.01)

	if len(faded) != len(w) {
		t.Fatalf("len = %d, want %d", len(faded), len(w))
	}
	if faded[0] != 0 {
		t.Errorf("first sample = %v, want 0", faded[0])
	}
	if faded[9] != 1 {
		t.Errorf("end of fade-in = %v, want 1", faded[9])
	}
	if faded[40] != 1 {
		t.Errorf("start of fade-out = %v, want 1", faded[40])
	}
	if faded[49] != 0 {
		t.Errorf("last sample = %v, want 0", faded[49])
	}
	for i := 10; i < 40; i++ {
		if faded[i] != 1 {
			t.Errorf("middle sample %d = %v, want untouched", i, faded[i])
		}
	}
}

func TestFadeDoesNotModifyInput(t *testing.T) {
	w := ones(50)
	Fade(w, 1000, 0.01)
	for i, s := range w {
		if s != 1 {
			t.Fatalf("input sample %d modified to %v", i, s)
		}
	}
}

func TestFadeShortBufferIsNoop(t *testing.T) {
	w := ones(19) // needs 20 for two 10-sample fades
	faded := Fade(w, 1000, 0.01)
	if len(faded) != 19 {
		t.Fatalf("len = %d, want 19", len(faded))
	}
	for i, s := range faded {
		if s != 1 {
			t.Errorf("sample %d = %v, want 1", i, s)
		}
	}

	if got := Fade(nil, 1000, 0.01); len(got) != 0 {
		t.Errorf("Fade(nil) has %d samples", len(got))
	}
	if got := Fade(Waveform{}, 1000, 0.01); len(got) != 0 {
		t.Errorf("Fade(empty) has %d samples", len(got))
	}
}

func TestFadeZeroDuration(t *testing.T) {
	w := ones(10)
	faded := Fade(w, 1000, 0)
	for i, s := range faded {
		if s != 1 {
			t.Errorf("sample %d = %v, want 1", i, s)
		}
	}
}

func TestFadeSingleSampleRamp(t *testing.T) {
	faded := Fade(ones(4), 1000, 0.001)
	want := Waveform{0, 1, 1, 0}
	for i := range want {
		if faded[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, faded[i], want[i])
		}
	}
}

func TestFadeTwiceStaysMonotonicAndBounded(t *testing.T) {
	const n = 10
	w := ones(60)
	once := Fade(w, 1000, 0.01)
	twice := Fade(once, 1000, 0.01)

	for i := range twice {
		if twice[i] < 0 || twice[i] > once[i] || once[i] > w[i] {
			t.Errorf("sample %d not bounded: %v <= %v <= %v", i, twice[i], once[i], w[i])
		}
	}
	for i := 1; i < n; i++ {
		if twice[i] < twice[i-1] {
			t.Errorf("fade-in not monotonic at %d: %v < %v", i, twice[i], twice[i-1])
		}
	}
	for i := len(twice) - n + 1; i < len(twice); i++ {
		if twice[i] > twice[i-1] {
			t.Errorf("fade-out not monotonic at %d: %v > %v", i, twice[i], twice[i-1])
		}
	}
	for i := n; i < len(twice)-n; i++ {
		if twice[i] != 1 {
			t.Errorf("middle sample %d = %v after two fades", i, twice[i])
		}
	}
}
