package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-amp/dsp/filter/biquad"
)

const sr = 48000.0

func requireStable(t *testing.T, name string, c biquad.Coefficients) {
	t.Helper()

	if !c.IsFinite() {
		t.Fatalf("%s: non-finite coefficients %#v", name, c)
	}

	if !c.IsStable() {
		t.Fatalf("%s: unstable coefficients %#v", name, c)
	}
}

func TestLowpassShape(t *testing.T) {
	c := Lowpass(1000, defaultQ, sr)
	requireStable(t, "lowpass", c)

	if db := c.MagnitudeDB(10, sr); math.Abs(db) > 0.01 {
		t.Fatalf("passband = %.4f dB, want ~0", db)
	}

	if db := c.MagnitudeDB(1000, sr); math.Abs(db+3.0103) > 0.05 {
		t.Fatalf("corner = %.4f dB, want -3.01", db)
	}

	if db := c.MagnitudeDB(10000, sr); db > -35 {
		t.Fatalf("stopband = %.4f dB, want < -35", db)
	}
}

func TestPeakGainAtCenter(t *testing.T) {
	for _, gain := range []float64{-8, -2, 0, 3, 9} {
		c := Peak(800, gain, 1.2, sr)
		requireStable(t, "peak", c)

		if db := c.MagnitudeDB(800, sr); math.Abs(db-gain) > 1e-6 {
			t.Fatalf("gain %v: center = %.6f dB", gain, db)
		}

		if db := c.MagnitudeDB(5, sr); math.Abs(db) > 0.01 {
			t.Fatalf("gain %v: DC = %.6f dB, want 0", gain, db)
		}
	}
}

func TestFirstOrderSections(t *testing.T) {
	lp := FirstOrderLowpass(6300, sr)
	hp := FirstOrderHighpass(30, sr)

	requireStable(t, "lp1", lp)
	requireStable(t, "hp1", hp)

	if !lp.IsFirstOrder() || !hp.IsFirstOrder() {
		t.Fatal("expected first-order sections")
	}

	if g := lp.DCGain(); math.Abs(g-1) > 1e-12 {
		t.Fatalf("lowpass DC gain = %v, want 1", g)
	}

	if g := hp.DCGain(); math.Abs(g) > 1e-12 {
		t.Fatalf("highpass DC gain = %v, want 0", g)
	}

	if db := lp.MagnitudeDB(6300, sr); math.Abs(db+3.0103) > 0.01 {
		t.Fatalf("lowpass corner = %.4f dB, want -3.01", db)
	}

	if db := hp.MagnitudeDB(30, sr); math.Abs(db+3.0103) > 0.01 {
		t.Fatalf("highpass corner = %.4f dB, want -3.01", db)
	}
}

func TestInvalidFrequenciesYieldZero(t *testing.T) {
	zero := biquad.Coefficients{}
	cases := map[string]biquad.Coefficients{
		"lp at nyquist":  Lowpass(sr/2, defaultQ, sr),
		"lp negative":    Lowpass(-1, defaultQ, sr),
		"peak zero rate": Peak(1000, 3, 1, 0),
		"peak nan":       Peak(math.NaN(), -6, 1, sr),
		"lp1 above":      FirstOrderLowpass(sr, sr),
		"hp1 zero rate":  FirstOrderHighpass(30, 0),
	}

	for name, c := range cases {
		if c != zero {
			t.Errorf("%s: got %#v, want zero", name, c)
		}
	}
}

func TestNormalizedQFallback(t *testing.T) {
	if Lowpass(1000, 0, sr) != Lowpass(1000, defaultQ, sr) {
		t.Fatal("q=0 should fall back to 1/sqrt(2)")
	}
}

func TestRCCutoff(t *testing.T) {
	got := RCCutoff(10e3, 1.5e-9)
	if math.Abs(got-10610.33) > 0.1 {
		t.Fatalf("RCCutoff = %v, want ~10610.33", got)
	}

	if RCCutoff(0, 1e-9) != 0 {
		t.Fatal("zero resistance should give 0")
	}
}

func TestClampFrequency(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: 1000, want: 1000},
		{in: 0, want: 10},
		{in: -5, want: 10},
		{in: 30000, want: 0.499 * sr},
		{in: math.Inf(1), want: 0.499 * sr},
		{in: math.NaN(), want: 10},
	}

	for _, tt := range tests {
		if got := ClampFrequency(tt.in, 10, 0.499, sr); got != tt.want {
			t.Errorf("ClampFrequency(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
