package level

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-amp/dsp/core"
)

// Peak returns the largest magnitude in buf.
func Peak(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}

	return vecmath.MaxAbs(buf)
}

// RMS returns the root mean square of buf.
func RMS(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}

	return math.Sqrt(vecmath.DotProduct(buf, buf) / float64(len(buf)))
}

// Meter accumulates peak and RMS over a stream of blocks.
type Meter struct {
	peak   float64
	sumSq  float64
	frames int
}

// Add folds buf into the running totals.
func (m *Meter) Add(buf []float64) {
	if len(buf) == 0 {
		return
	}

	m.peak = math.Max(m.peak, vecmath.MaxAbs(buf))
	m.sumSq += vecmath.DotProduct(buf, buf)
	m.frames += len(buf)
}

// Peak returns the largest magnitude seen.
func (m *Meter) Peak() float64 { return m.peak }

// RMS returns the RMS over everything added.
func (m *Meter) RMS() float64 {
	if m.frames == 0 {
		return 0
	}

	return math.Sqrt(m.sumSq / float64(m.frames))
}

// PeakDBFS returns Peak in dB relative to full scale 1.0.
func (m *Meter) PeakDBFS() float64 { return core.LinearToDB(m.peak) }

// RMSDBFS returns RMS in dB relative to full scale 1.0.
func (m *Meter) RMSDBFS() float64 { return core.LinearToDB(m.RMS()) }

// Samples returns how many samples were added.
func (m *Meter) Samples() int { return m.frames }

// Reset clears the meter.
func (m *Meter) Reset() { *m = Meter{} }
