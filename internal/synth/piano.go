package synth

import "math"

const (
	pianoPartials  = 25
	pianoStiffness = 0.0005 // B in fn = f0*n*sqrt(1+B*n^2)

	pianoAttackRate     = 350.0 // full level after ~3 ms
	pianoTransientLevel = 0.4
	pianoTransientDecay = 40.0
	pianoBodyLevel      = 0.6
	pianoBodyDecay      = 4.5

	pianoNoiseLevel = 0.015
	pianoNoiseDecay = 80.0

	pianoResonanceLevel = 0.1
	pianoResonanceDecay = 2.5

	pianoBrightnessFreq  = 2500.0
	pianoBrightnessLevel = 0.03
	pianoBrightnessDecay = 15.0
)

// Piano models a struck stiff string: stretched partials that decay faster
// the higher they are, a hammer transient, mechanical strike noise, a
// sub-harmonic body resonance and a short bright component near 2.5 kHz.
type Piano struct {
	Noise NoiseSource
}

// PianoPartials returns the partial table for fundamental f0.
func PianoPartials(f0 float64) []Partial {
	partials := make([]Partial, 0, pianoPartials)
	for n := 1; n <= pianoPartials; n++ {
		nf := float64(n)
		partials = append(partials, Partial{
			Freq:     f0 * nf * math.Sqrt(1+pianoStiffness*nf*nf),
			Strength: pianoStrength(n),
			Decay:    3.0 + nf*0.8,
		})
	}
	return partials
}

func pianoStrength(n int) float64 {
	nf := float64(n)
	switch {
	case n == 1:
		return 1.0
	case n <= 3:
		return 0.7 / math.Pow(nf, 0.5)
	case n <= 8:
		return 0.5 / math.Pow(nf, 0.7)
	default:
		return 0.3 / math.Pow(nf, 0.9)
	}
}

// Generate implements Generator.
func (p *Piano) Generate(freq, duration float64, sampleRate int) Waveform {
	t := Clock(sampleRate, duration)
	w := make(Waveform, len(t))
	if freq <= 0 || len(t) == 0 {
		return w
	}
	noise := noiseOrRandom(p.Noise)
	partials := PianoPartials(freq)

	for i, ti := range t {
		s := 0.0
		for _, pt := range partials {
			s += pt.Strength * math.Sin(2*math.Pi*pt.Freq*ti) * ExpDecay(ti, pt.Decay)
		}
		s += noise.NormFloat64() * pianoNoiseLevel * ExpDecay(ti, pianoNoiseDecay)
		s += math.Sin(2*math.Pi*freq*0.5*ti) * pianoResonanceLevel * ExpDecay(ti, pianoResonanceDecay)
		s += math.Sin(2*math.Pi*pianoBrightnessFreq*ti) * pianoBrightnessLevel * ExpDecay(ti, pianoBrightnessDecay)

		env := LinearAttack(ti, pianoAttackRate) *
			(pianoTransientLevel*ExpDecay(ti, pianoTransientDecay) + pianoBodyLevel*ExpDecay(ti, pianoBodyDecay))
		w[i] = s * env
	}
	return normalize(w)
}
