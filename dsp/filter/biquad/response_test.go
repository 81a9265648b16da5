package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestMagnitudeSquared_MatchesResponse(t *testing.T) {
	c := testCoefficients()
	sr := 48000.0

	for _, freq := range []float64{100, 500, 1000, 5000, 10000, 20000} {
		h := c.Response(freq, sr)
		fromResponse := real(h)*real(h) + imag(h)*imag(h)

		fromClosed := c.MagnitudeSquared(freq, sr)
		if !almostEqual(fromClosed, fromResponse, 1e-10) {
			t.Errorf("freq=%v: MagnitudeSquared=%.15f, |Response|²=%.15f", freq, fromClosed, fromResponse)
		}
	}
}

func TestPhase_MatchesResponse(t *testing.T) {
	c := testCoefficients()
	sr := 48000.0

	for _, freq := range []float64{100, 1000, 10000} {
		if got, want := c.Phase(freq, sr), cmplx.Phase(c.Response(freq, sr)); !almostEqual(got, want, 1e-12) {
			t.Errorf("freq=%v: Phase=%v, want %v", freq, got, want)
		}
	}
}

func TestCutoffFrequency_TwoTapAverage(t *testing.T) {
	// H(z) = 0.5(1 + z^-1) has |H|^2 = cos^2(w/2); the -3.0103 dB point
	// sits at w = pi/2, i.e. fs/4.
	c := Coefficients{B0: 0.5, B1: 0.5}
	sr := 48000.0

	got := c.CutoffFrequency(1, sr/2-1, 10*math.Log10(2), sr)
	if math.Abs(got-sr/4) > 1 {
		t.Fatalf("cutoff = %v, want %v", got, sr/4)
	}
}

func TestCutoffFrequency_NeverReached(t *testing.T) {
	if got := Identity().CutoffFrequency(10, 20000, 3, 48000); got != 20000 {
		t.Fatalf("cutoff = %v, want upper bound 20000", got)
	}
}
