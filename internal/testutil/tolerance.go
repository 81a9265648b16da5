package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-amp/dsp/core"
)

// RequireNearlyEqual fails t if got and want differ in length or any pair
// is not within eps, absolutely or relative to the larger magnitude.
func RequireNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if !core.NearlyEqual(got[i], want[i], eps) {
			t.Fatalf("index %d: got %v, want %v (diff %v, eps %v)", i, got[i], want[i], math.Abs(got[i]-want[i]), eps)
		}
	}
}

// RequireIdentical fails t unless got and want match bit for bit.
func RequireIdentical(t testing.TB, got, want []float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if math.Float64bits(got[i]) != math.Float64bits(want[i]) {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

// RequireBounded fails t if any sample is non-finite or exceeds limit in
// magnitude.
func RequireBounded(t testing.TB, data []float64, limit float64) {
	t.Helper()

	for i, v := range data {
		if !core.IsFinite(v) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}

		if math.Abs(v) > limit {
			t.Fatalf("index %d: |%v| > %v", i, v, limit)
		}
	}
}

// RequireSilent fails t unless every sample is exactly zero.
func RequireSilent(t testing.TB, data []float64) {
	t.Helper()

	for i, v := range data {
		if v != 0 {
			t.Fatalf("index %d: got %v, want silence", i, v)
		}
	}
}

// Peak returns the largest magnitude in data.
func Peak(data []float64) float64 {
	peak := 0.0
	for _, v := range data {
		peak = math.Max(peak, math.Abs(v))
	}

	return peak
}
