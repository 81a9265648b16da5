package thd

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-amp/dsp/window"
)

const defaultMaxHarmonics = 9

// ErrNoFundamental reports a fundamental that is missing, non-positive or
// above Nyquist.
var ErrNoFundamental = errors.New("thd: fundamental out of range")

// Config holds THD measurement parameters.
type Config struct {
	SampleRate      float64
	FundamentalFreq float64
	// FFTSize defaults to the next power of two >= len(signal). The signal
	// is zero-padded up to it.
	FFTSize      int
	MaxHarmonics int
	WindowType   window.Type
}

// Result holds the measured levels. Amplitudes are peak values in the
// units of the input signal.
//
//nolint:revive
type Result struct {
	FundamentalFreq  float64
	FundamentalLevel float64
	// Harmonics[i] is the amplitude of harmonic i+2. Harmonics above Nyquist
	// are omitted.
	Harmonics []float64
	THD       float64
	THD_dB    float64
	OddHD     float64
	EvenHD    float64
}

// AnalyzeSignal windows signal, transforms it and measures the fundamental
// and its harmonics.
func AnalyzeSignal(signal []float64, cfg Config) (Result, error) {
	if len(signal) < 2 {
		return Result{}, fmt.Errorf("thd: signal too short (%d samples)", len(signal))
	}

	if !(cfg.SampleRate > 0) || !(cfg.FundamentalFreq > 0) || cfg.FundamentalFreq >= cfg.SampleRate/2 {
		return Result{}, fmt.Errorf("%w: %v Hz at %v Hz", ErrNoFundamental, cfg.FundamentalFreq, cfg.SampleRate)
	}

	fftSize := cfg.FFTSize
	if fftSize < len(signal) {
		fftSize = nextPowerOf2(len(signal))
	}

	maxHarmonics := cfg.MaxHarmonics
	if maxHarmonics <= 0 {
		maxHarmonics = defaultMaxHarmonics
	}

	winType := cfg.WindowType
	if winType == window.TypeRectangular {
		winType = window.TypeHann
	}

	coeffs := window.Generate(winType, len(signal), window.WithPeriodic())
	if coeffs == nil {
		return Result{}, fmt.Errorf("thd: unknown window %v", winType)
	}

	in := make([]complex128, fftSize)

	var winEnergy float64
	for i, x := range signal {
		in[i] = complex(x*coeffs[i], 0)
		winEnergy += coeffs[i] * coeffs[i]
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("thd: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Result{}, fmt.Errorf("thd: fft: %w", err)
	}

	binHz := cfg.SampleRate / float64(fftSize)
	maxBin := fftSize / 2
	// Main-lobe half width in padded bins, plus one for leakage.
	lobe := float64(window.MainLobeBins(winType))
	capture := int(math.Ceil(lobe*float64(fftSize)/float64(len(signal)))) + 1

	// A sinusoid of amplitude A puts A²·N·Σw²/4 into its positive-frequency
	// lobe.
	amplitude := func(center int) float64 {
		var sum float64
		for k := max(1, center-capture); k <= min(maxBin, center+capture); k++ {
			re, im := real(out[k]), imag(out[k])
			sum += re*re + im*im
		}

		return 2 * math.Sqrt(sum/(float64(fftSize)*winEnergy))
	}

	fundBin := peakBin(out, int(math.Round(cfg.FundamentalFreq/binHz)), capture, maxBin)

	res := Result{
		FundamentalFreq:  float64(fundBin) * binHz,
		FundamentalLevel: amplitude(fundBin),
	}

	var odd, even float64

	for h := 2; h <= maxHarmonics+1; h++ {
		nominal := int(math.Round(float64(h) * float64(fundBin)))
		if nominal+capture > maxBin {
			break
		}

		a := amplitude(peakBin(out, nominal, capture, maxBin))
		res.Harmonics = append(res.Harmonics, a)

		if h%2 == 0 {
			even += a * a
		} else {
			odd += a * a
		}
	}

	if res.FundamentalLevel > 0 {
		res.THD = math.Sqrt(odd+even) / res.FundamentalLevel
		res.OddHD = math.Sqrt(odd) / res.FundamentalLevel
		res.EvenHD = math.Sqrt(even) / res.FundamentalLevel
	}

	res.THD_dB = 20 * math.Log10(res.THD)

	return res, nil
}

func peakBin(spec []complex128, center, radius, maxBin int) int {
	best, bestPow := center, -1.0

	for k := max(1, center-radius); k <= min(maxBin, center+radius); k++ {
		re, im := real(spec[k]), imag(spec[k])
		if p := re*re + im*im; p > bestPow {
			best, bestPow = k, p
		}
	}

	return best
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
