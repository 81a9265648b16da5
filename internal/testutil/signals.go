package testutil

import (
	"math"
	"math/rand/v2"
)

// Sine returns length samples of amplitude*sin(2*pi*freqHz*n/sampleRate).
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// Noise is a seeded uniform white-noise source. Two sources with the same
// seed produce identical streams.
type Noise struct {
	rng       *rand.Rand
	amplitude float64
}

// NewNoise returns a source of uniform samples in [-amplitude, amplitude).
func NewNoise(seed uint64, amplitude float64) *Noise {
	return &Noise{
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		amplitude: amplitude,
	}
}

// Fill overwrites buf with the next len(buf) samples.
func (n *Noise) Fill(buf []float64) {
	for i := range buf {
		buf[i] = (n.rng.Float64()*2 - 1) * n.amplitude
	}
}

// Block returns the next length samples in a new slice.
func (n *Noise) Block(length int) []float64 {
	out := make([]float64, length)
	n.Fill(out)

	return out
}

// Impulse returns a unit impulse at pos.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// Planar returns channels independent copies of src.
func Planar(src []float64, channels int) [][]float64 {
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = append([]float64(nil), src...)
	}

	return out
}

// Clone deep-copies planar channels.
func Clone(channels [][]float64) [][]float64 {
	out := make([][]float64, len(channels))
	for ch, buf := range channels {
		out[ch] = append([]float64(nil), buf...)
	}

	return out
}
