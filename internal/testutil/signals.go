package testutil

import (
	"math"
	"math/rand/v2"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// HarmonicSeries returns length samples holding cycles periods of a wave
// whose k-th harmonic (k starting at 1) has amplitude amps[k-1].
func HarmonicSeries(length, cycles int, amps ...float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		phase := 2 * math.Pi * float64(cycles) * float64(i) / float64(length)
		for k, a := range amps {
			out[i] += a * math.Sin(float64(k+1)*phase)
		}
	}
	return out
}

// DeterministicNoise generates uniform noise in [-amplitude, amplitude]
// from a fixed PCG seed.
func DeterministicNoise(seed uint64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}
