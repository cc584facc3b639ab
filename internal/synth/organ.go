package synth

import "math"

const (
	organHarmonics = 20

	organAttackRate   = 5.0 // 200 ms to full wind
	organSustainLevel = 0.3
	organSustainDecay = 1.2
	organSustainFloor = 0.7

	organAirLevel = 0.006
	organAirDecay = 3.0
	organAirSwell = 0.3
	organAirFloor = 0.7
)

// PipeOrgan models a wind-driven flue pipe: many even harmonics that barely
// decay, a slow attack, and a steady bed of air noise.
type PipeOrgan struct {
	Noise NoiseSource
}

// OrganHarmonics returns the harmonic table for fundamental f0.
func OrganHarmonics(f0 float64) []Partial {
	partials := make([]Partial, 0, organHarmonics)
	for n := 1; n <= organHarmonics; n++ {
		nf := float64(n)
		partials = append(partials, Partial{
			Freq:     f0 * nf,
			Strength: organStrength(n),
			Decay:    1.5 + nf*0.05,
		})
	}
	return partials
}

func organStrength(n int) float64 {
	nf := float64(n)
	switch {
	case n == 1:
		return 1.0
	case n <= 4:
		return 0.8 / math.Pow(nf, 0.5)
	case n <= 10:
		return 0.6 / math.Pow(nf, 0.6)
	default:
		return 0.4 / math.Pow(nf, 0.8)
	}
}

// Generate implements Generator.
func (o *PipeOrgan) Generate(freq, duration float64, sampleRate int) Waveform {
	t := Clock(sampleRate, duration)
	w := make(Waveform, len(t))
	if freq <= 0 || len(t) == 0 {
		return w
	}
	noise := noiseOrRandom(o.Noise)
	partials := OrganHarmonics(freq)

	for i, ti := range t {
		s := 0.0
		for _, pt := range partials {
			s += pt.Strength * math.Sin(2*math.Pi*pt.Freq*ti) * ExpDecay(ti, pt.Decay)
		}
		s += noise.NormFloat64() * organAirLevel * (organAirSwell*ExpDecay(ti, organAirDecay) + organAirFloor)

		env := LinearAttack(ti, organAttackRate) *
			(organSustainLevel*ExpDecay(ti, organSustainDecay) + organSustainFloor)
		w[i] = s * env
	}
	return normalize(w)
}
