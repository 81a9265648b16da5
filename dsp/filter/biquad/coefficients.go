package biquad

import (
	"math"

	"github.com/cwbudde/algo-amp/dsp/core"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section. a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
//
// A first-order section is expressed with B2 = A2 = 0.
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Identity returns pass-through coefficients.
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

// IsFinite reports whether every coefficient is finite.
func (c Coefficients) IsFinite() bool {
	for _, v := range [...]float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if !core.IsFinite(v) {
			return false
		}
	}

	return true
}

// IsStable reports whether both poles lie strictly inside the unit circle,
// using the stability triangle |A2| < 1 and |A1| < 1 + A2.
func (c Coefficients) IsStable() bool {
	if !c.IsFinite() {
		return false
	}

	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}

// IsFirstOrder reports whether the section has no second-order taps.
func (c Coefficients) IsFirstOrder() bool {
	return c.B2 == 0 && c.A2 == 0
}

// DCGain returns H(z=1).
func (c Coefficients) DCGain() float64 {
	den := 1 + c.A1 + c.A2
	if den == 0 {
		return math.Inf(1)
	}

	return (c.B0 + c.B1 + c.B2) / den
}
