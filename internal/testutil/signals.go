package testutil

import (
	"math"
	"math/rand/v2"
)

// DeterministicSine returns length samples of amplitude*sin(2*pi*f*n/fs),
// starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	w := 2 * math.Pi * freqHz / sampleRate

	for n := range out {
		out[n] = amplitude * math.Sin(w*float64(n))
	}

	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude).
// The same seed always yields the same samples.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x5f7f))
	out := make([]float64, length)

	for n := range out {
		out[n] = amplitude * (2*rng.Float64() - 1)
	}

	return out
}

// Impulse returns a unit impulse at pos. An out-of-range pos yields silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// Ramp returns 0, 1, ..., length-1. Every sample differs, so shifted
// frames never compare equal by accident.
func Ramp(length int) []float64 {
	out := make([]float64, length)
	for n := range out {
		out[n] = float64(n)
	}

	return out
}

// ToFloat32 narrows a float64 signal for the single-precision engines.
func ToFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for n, v := range in {
		out[n] = float32(v)
	}

	return out
}
