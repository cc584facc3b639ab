package synth

import "math"

// MaxSamples bounds a single buffer. Longer (or infinite) durations count
// as degenerate and produce no samples.
const MaxSamples = math.MaxInt32

// SampleCount returns the number of samples covering duration seconds at
// sampleRate. Every buffer length in the module (notes, gaps, pads, fades)
// goes through this so segment sizes add up exactly.
func SampleCount(sampleRate int, duration float64) int {
	if sampleRate <= 0 || !(duration > 0) {
		return 0
	}
	n := math.Round(float64(sampleRate) * duration)
	if !(n <= MaxSamples) {
		return 0
	}
	return int(n)
}

// Clock returns the time in seconds of each sample of a buffer lasting
// duration seconds. The grid is half-open: t[0] is 0 and the endpoint is
// never included.
func Clock(sampleRate int, duration float64) []float64 {
	n := SampleCount(sampleRate, duration)
	t := make([]float64, n)
	rate := float64(sampleRate)
	for i := range t {
		t[i] = float64(i) / rate
	}
	return t
}
