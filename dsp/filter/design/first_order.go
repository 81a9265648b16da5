package design

import (
	"math"

	"github.com/cwbudde/algo-amp/dsp/filter/biquad"
)

// FirstOrderLowpass designs a bilinear-transformed one-pole lowpass at freq.
// B2 and A2 are zero, so the result runs on a plain biquad.Section.
func FirstOrderLowpass(freq, sampleRate float64) biquad.Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}

// FirstOrderHighpass designs a bilinear-transformed one-pole highpass at freq.
func FirstOrderHighpass(freq, sampleRate float64) biquad.Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}
}

// RCCutoff returns the -3 dB corner 1/(2πRC) of a passive RC network,
// with r in ohms and c in farads. Non-positive components yield 0.
func RCCutoff(r, c float64) float64 {
	if r <= 0 || c <= 0 {
		return 0
	}

	return 1 / (2 * math.Pi * r * c)
}

// ClampFrequency limits freq to [minHz, maxRatio*sampleRate] so that the
// design functions never see a corner at or beyond Nyquist. NaN maps to
// minHz.
func ClampFrequency(freq, minHz, maxRatio, sampleRate float64) float64 {
	hi := maxRatio * sampleRate
	if freq >= hi {
		return hi
	}

	if freq < minHz || math.IsNaN(freq) {
		return minHz
	}

	return freq
}

// bilinearK computes the bilinear transform frequency warping factor tan(π*freq/sampleRate).
// Returns (k, true) on success, (0, false) if parameters are invalid.
func bilinearK(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 {
		return 0, false
	}

	return math.Tan(math.Pi * freq / sampleRate), true
}
