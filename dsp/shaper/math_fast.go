//go:build fastmath

package shaper

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// tanh computes the hyperbolic tangent from a fast exponential.
// The magnitude is evaluated on |x| and the sign restored, so the shape
// stays exactly odd.
func tanh(x float64) float64 {
	ax := math.Abs(x)
	if ax > 20 {
		return math.Copysign(1, x)
	}

	return math.Copysign(1-2/(approx.FastExp(2*ax)+1), x)
}
