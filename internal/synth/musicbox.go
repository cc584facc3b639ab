package synth

import "math"

// musicBoxPartials are the tine's detuned overtones as (ratio, strength).
var musicBoxPartials = []struct {
	ratio    float64
	strength float64
}{
	{2.01, 0.08},
	{3.02, 0.05},
	{4.03, 0.04},
	{7.97, 0.06},
	{11.1, 0.05},
	{15.3, 0.03},
	{19.7, 0.02},
}

const (
	musicBoxAttackRate   = 250.0
	musicBoxPluckLevel   = 0.3
	musicBoxPluckDecay   = 15.0
	musicBoxSustainLevel = 0.7
	musicBoxSustainDecay = 2.8
	musicBoxSustainFloor = 0.3

	musicBoxClickLevel = 0.008
	musicBoxClickDecay = 100.0
)

// MusicBox models a plucked metal comb tine.
type MusicBox struct {
	Noise NoiseSource
}

// MusicBoxPartials returns the metallic overtones for fundamental f0. The
// fundamental itself is rendered separately at full strength.
func MusicBoxPartials(f0 float64) []Partial {
	partials := make([]Partial, len(musicBoxPartials))
	for i, mp := range musicBoxPartials {
		partials[i] = Partial{
			Freq:     f0 * mp.ratio,
			Strength: mp.strength,
			Decay:    20 + mp.ratio*2,
		}
	}
	return partials
}

// Generate implements Generator.
func (m *MusicBox) Generate(freq, duration float64, sampleRate int) Waveform {
	t := Clock(sampleRate, duration)
	w := make(Waveform, len(t))
	if freq <= 0 || len(t) == 0 {
		return w
	}
	noise := noiseOrRandom(m.Noise)
	partials := MusicBoxPartials(freq)

	for i, ti := range t {
		s := math.Sin(2 * math.Pi * freq * ti)
		for _, pt := range partials {
			s += pt.Strength * math.Sin(2*math.Pi*pt.Freq*ti) * ExpDecay(ti, pt.Decay)
		}
		s += noise.NormFloat64() * musicBoxClickLevel * ExpDecay(ti, musicBoxClickDecay)

		// the sustain never fully dies away: damped but ringing tine
		env := LinearAttack(ti, musicBoxAttackRate) *
			(musicBoxPluckLevel*ExpDecay(ti, musicBoxPluckDecay) +
				musicBoxSustainLevel*ExpDecay(ti, musicBoxSustainDecay) + musicBoxSustainFloor)
		w[i] = s * env
	}
	return normalize(w)
}
