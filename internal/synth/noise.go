package synth

import "math/rand/v2"

// NoiseSource supplies standard normal samples for the strike, click and air
// noise layers. *rand.Rand satisfies it.
type NoiseSource interface {
	NormFloat64() float64
}

// NewNoise returns a reproducible noise source for seed.
func NewNoise(seed uint64) NoiseSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomNoise returns a noise source seeded from the runtime's entropy.
func RandomNoise() NoiseSource {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// noiseOrRandom lets zero-value generators work without wiring a source.
func noiseOrRandom(src NoiseSource) NoiseSource {
	if src == nil {
		return RandomNoise()
	}
	return src
}
