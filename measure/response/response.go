package response

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
)

var (
	// ErrInvalidSampleRate reports a sample rate that is not > 0.
	ErrInvalidSampleRate = errors.New("response: sample rate must be > 0")
	// ErrEmptyImpulse reports an impulse response with no samples.
	ErrEmptyImpulse = errors.New("response: empty impulse response")
)

// BlockProcessor is anything that filters planar channels in place.
type BlockProcessor interface {
	Process(channels [][]float64)
}

// Curve is a magnitude and phase response sampled at the bins of a real FFT,
// from DC to Nyquist.
type Curve struct {
	SampleRate  float64
	Freqs       []float64
	MagnitudeDB []float64
	Phase       []float64
}

// FromImpulse transforms an impulse response into a Curve. The response is
// zero-padded to the next power of two.
func FromImpulse(ir []float64, sampleRate float64) (Curve, error) {
	if len(ir) == 0 {
		return Curve{}, ErrEmptyImpulse
	}

	if !(sampleRate > 0) {
		return Curve{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	n := 2
	for n < len(ir) {
		n <<= 1
	}

	in := make([]complex128, n)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return Curve{}, fmt.Errorf("response: fft plan: %w", err)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return Curve{}, fmt.Errorf("response: fft: %w", err)
	}

	bins := n/2 + 1
	c := Curve{
		SampleRate:  sampleRate,
		Freqs:       make([]float64, bins),
		MagnitudeDB: make([]float64, bins),
		Phase:       make([]float64, bins),
	}

	for k := range bins {
		c.Freqs[k] = float64(k) * sampleRate / float64(n)
		c.MagnitudeDB[k] = 20 * math.Log10(cmplx.Abs(out[k]))
		c.Phase[k] = cmplx.Phase(out[k])
	}

	return c, nil
}

// Measure drives p with an impulse of the given level, collects length
// samples in blocks of blockSize and returns the response normalized to the
// impulse level. A small level keeps nonlinear stages in their linear
// region.
func Measure(p BlockProcessor, sampleRate float64, length, blockSize int, level float64) (Curve, error) {
	if length <= 0 || blockSize <= 0 || level == 0 {
		return Curve{}, fmt.Errorf("response: invalid measurement (length %d, block %d, level %v)", length, blockSize, level)
	}

	ir := make([]float64, length)
	ir[0] = level

	for off := 0; off < length; off += blockSize {
		p.Process([][]float64{ir[off:min(off+blockSize, length)]})
	}

	for i := range ir {
		ir[i] /= level
	}

	return FromImpulse(ir, sampleRate)
}

// At returns the magnitude at freq in dB, interpolated linearly between
// bins. Frequencies outside the curve clamp to its ends.
func (c Curve) At(freq float64) float64 {
	n := len(c.Freqs)
	if n == 0 {
		return math.NaN()
	}

	if freq <= c.Freqs[0] {
		return c.MagnitudeDB[0]
	}

	if freq >= c.Freqs[n-1] {
		return c.MagnitudeDB[n-1]
	}

	step := c.Freqs[1] - c.Freqs[0]
	i := int(freq / step)
	frac := (freq - c.Freqs[i]) / step

	return c.MagnitudeDB[i] + frac*(c.MagnitudeDB[i+1]-c.MagnitudeDB[i])
}

// Peak returns the frequency and level of the loudest bin above DC.
func (c Curve) Peak() (freq, db float64) {
	db = math.Inf(-1)

	for k := 1; k < len(c.Freqs); k++ {
		if c.MagnitudeDB[k] > db {
			freq, db = c.Freqs[k], c.MagnitudeDB[k]
		}
	}

	return freq, db
}

// Cutoff returns the first frequency above ref where the magnitude has
// fallen dropDB below its value at ref, or NaN when it never does.
func (c Curve) Cutoff(ref, dropDB float64) float64 {
	target := c.At(ref) - dropDB

	for k := 1; k < len(c.Freqs); k++ {
		if c.Freqs[k] <= ref || c.MagnitudeDB[k] > target {
			continue
		}

		// Interpolate between the last bin above target and this one.
		prev, cur := c.MagnitudeDB[k-1], c.MagnitudeDB[k]
		if prev == cur || c.Freqs[k-1] < ref {
			return c.Freqs[k]
		}

		return c.Freqs[k-1] + (prev-target)/(prev-cur)*(c.Freqs[k]-c.Freqs[k-1])
	}

	return math.NaN()
}
