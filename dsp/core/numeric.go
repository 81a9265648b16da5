package core

import "math"

// denormalFloor is the magnitude below which filter state is treated as
// silence. It sits far above the float64 subnormal range.
const denormalFloor = 1e-30

// Clamp returns value limited to the closed interval spanned by lo and hi.
// The bounds may be given in either order.
func Clamp(value, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}

	return math.Min(math.Max(value, lo), hi)
}

// IsFinite reports whether x is an ordinary number.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// NearlyEqual reports whether a and b agree to within tol, either as an
// absolute difference or relative to the larger magnitude. A non-positive
// tol selects 1e-12.
func NearlyEqual(a, b, tol float64) bool {
	if tol <= 0 {
		tol = 1e-12
	}

	diff := math.Abs(a - b)

	return diff <= tol || diff <= tol*math.Max(math.Abs(a), math.Abs(b))
}

// FlushDenormals returns 0 for |x| < 1e-30 and x otherwise. Filter state
// decaying towards silence goes through it once per block.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < denormalFloor {
		return 0
	}

	return x
}

// LinearToDB converts an amplitude to decibels. Zero gives -Inf and a
// negative amplitude gives NaN.
func LinearToDB(amplitude float64) float64 {
	switch {
	case amplitude < 0:
		return math.NaN()
	case amplitude == 0:
		return math.Inf(-1)
	}

	return 20 * math.Log10(amplitude)
}
