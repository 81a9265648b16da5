package level

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-amp/internal/testutil"
)

func TestPeakAndRMS(t *testing.T) {
	tests := []struct {
		name      string
		buf       []float64
		peak, rms float64
	}{
		{"empty", nil, 0, 0},
		{"dc", []float64{0.5, 0.5, 0.5, 0.5}, 0.5, 0.5},
		{"alternating", []float64{1, -1, 1, -1}, 1, 1},
		{"negative peak", []float64{0.1, -0.8, 0.2}, 0.8, math.Sqrt((0.01 + 0.64 + 0.04) / 3)},
	}

	for _, tt := range tests {
		if got := Peak(tt.buf); math.Abs(got-tt.peak) > 1e-12 {
			t.Fatalf("%s: Peak = %v, want %v", tt.name, got, tt.peak)
		}

		if got := RMS(tt.buf); math.Abs(got-tt.rms) > 1e-12 {
			t.Fatalf("%s: RMS = %v, want %v", tt.name, got, tt.rms)
		}
	}
}

func TestSineRMS(t *testing.T) {
	// 100 whole periods of 480 Hz at 48 kHz.
	sine := testutil.Sine(480, 48000, 1, 10000)

	if got := RMS(sine); math.Abs(got-1/math.Sqrt2) > 1e-9 {
		t.Fatalf("RMS = %v, want %v", got, 1/math.Sqrt2)
	}
}

func TestMeterMatchesWholeBuffer(t *testing.T) {
	buf := testutil.NewNoise(3, 0.7).Block(1000)

	var m Meter
	for off := 0; off < len(buf); off += 128 {
		m.Add(buf[off:min(off+128, len(buf))])
	}

	if m.Samples() != 1000 {
		t.Fatalf("Samples = %d", m.Samples())
	}

	if m.Peak() != Peak(buf) {
		t.Fatalf("Peak = %v, want %v", m.Peak(), Peak(buf))
	}

	if math.Abs(m.RMS()-RMS(buf)) > 1e-12 {
		t.Fatalf("RMS = %v, want %v", m.RMS(), RMS(buf))
	}

	if math.Abs(m.PeakDBFS()-20*math.Log10(m.Peak())) > 1e-12 {
		t.Fatalf("PeakDBFS = %v", m.PeakDBFS())
	}

	m.Reset()

	if m.Samples() != 0 || !math.IsInf(m.RMSDBFS(), -1) {
		t.Fatalf("after Reset: samples %d rms %v dB", m.Samples(), m.RMSDBFS())
	}
}
