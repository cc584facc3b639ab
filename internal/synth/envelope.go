package synth

import "math"

// LinearAttack ramps from 0 at t=0 and saturates at 1 once t*rate reaches 1.
func LinearAttack(t, rate float64) float64 {
	return math.Min(t*rate, 1.0)
}

// ExpDecay returns exp(-t*rate).
func ExpDecay(t, rate float64) float64 {
	return math.Exp(-t * rate)
}

// Fade returns a copy of w with a linear ramp-up over the first fadeDuration
// seconds and a ramp-down over the last fadeDuration seconds. Buffers shorter
// than two fades are returned unchanged.
func Fade(w Waveform, sampleRate int, fadeDuration float64) Waveform {
	out := w.Clone()
	n := SampleCount(sampleRate, fadeDuration)
	if n == 0 || len(out) < 2*n {
		return out
	}

	tail := len(out) - n
	for i := 0; i < n; i++ {
		out[i] *= ramp(i, n)
		out[tail+i] *= ramp(n-1-i, n)
	}
	return out
}

// ramp is the i-th of n evenly spaced points from 0 to 1 inclusive.
func ramp(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}
