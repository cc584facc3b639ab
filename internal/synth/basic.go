package synth

import "math"

// Sine renders sin(2*pi*f*t).
func Sine(freq, duration float64, sampleRate int) Waveform {
	t := Clock(sampleRate, duration)
	w := make(Waveform, len(t))
	if freq <= 0 {
		return w
	}
	for i, ti := range t {
		w[i] = math.Sin(2 * math.Pi * freq * ti)
	}
	return w
}

// Triangle renders (2/pi)*asin(sin(phase)) with the phase wrapped into
// [0, 2*pi). It has no discontinuities and stays within [-1, 1].
func Triangle(freq, duration float64, sampleRate int) Waveform {
	t := Clock(sampleRate, duration)
	w := make(Waveform, len(t))
	if freq <= 0 {
		return w
	}
	for i, ti := range t {
		phase := math.Mod(2*math.Pi*freq*ti, 2*math.Pi)
		w[i] = 2 / math.Pi * math.Asin(math.Sin(phase))
	}
	return w
}

// Square renders sign(sin(2*pi*f*t)). An exact zero of the sine maps to 0.
func Square(freq, duration float64, sampleRate int) Waveform {
	t := Clock(sampleRate, duration)
	w := make(Waveform, len(t))
	if freq <= 0 {
		return w
	}
	for i, ti := range t {
		w[i] = sign(math.Sin(2 * math.Pi * freq * ti))
	}
	return w
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
