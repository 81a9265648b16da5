package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-amp/dsp/amp"
	"github.com/cwbudde/algo-amp/dsp/core"
	"github.com/cwbudde/algo-amp/dsp/window"
	"github.com/cwbudde/algo-amp/measure/response"
	"github.com/cwbudde/algo-amp/measure/thd"
)

const (
	measureLength = 16384
	measureLevel  = 1e-3
)

type responseFlags struct {
	knobFlags

	rate     float64
	points   int
	minFreq  float64
	maxFreq  float64
	measure  bool
	thdFreq  float64
	thdLevel float64
	window   window.Type
}

func runResponse(args []string, stdout, stderr io.Writer) error {
	var f responseFlags

	fs := newFlagSet("response", "", stderr)
	f.knobFlags.register(fs)
	fs.Float64Var(&f.rate, "rate", 48000, "sample rate in Hz")
	fs.IntVar(&f.points, "points", 25, "number of log-spaced frequencies")
	fs.Float64Var(&f.minFreq, "min", 20, "lowest frequency in Hz")
	fs.Float64Var(&f.maxFreq, "max", 20000, "highest frequency in Hz")
	fs.BoolVar(&f.measure, "measure", false, "also measure the processor's impulse response")
	fs.Float64Var(&f.thdFreq, "thd", 0, "measure THD of a sine at this frequency (0 skips)")
	fs.Float64Var(&f.thdLevel, "thd-level", 0.5, "peak level of the THD test sine")
	windowName := fs.String("window", "hann", "THD analysis window: hann, blackman, blackman-harris or flat-top")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 0 || f.points < 2 || !(f.minFreq > 0) || !(f.maxFreq > f.minFreq) {
		fs.Usage()
		return errUsage
	}

	wt, err := window.ParseType(*windowName)
	if err != nil || wt == window.TypeRectangular {
		_, _ = fmt.Fprintf(stderr, "invalid -window %q\n", *windowName)
		fs.Usage()
		return errUsage
	}
	f.window = wt

	return printResponse(stdout, &f)
}

func printResponse(w io.Writer, f *responseFlags) error {
	r, err := f.resolver()
	if err != nil {
		return err
	}

	params, ok := r.Resolve(f.controls(), f.rate)
	if !ok {
		return fmt.Errorf("%w: %v Hz", core.ErrInvalidSampleRate, f.rate)
	}

	var measured response.Curve
	if f.measure {
		p, err := f.mono()
		if err != nil {
			return err
		}

		measured, err = response.Measure(p, f.rate, measureLength, p.Spec().MaxBlockSize, measureLevel)
		if err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header, rule := "Freq [Hz]\tModel [dB]", "---------\t----------"
	if f.measure {
		header += "\tMeasured [dB]\tDiff [dB]"
		rule += "\t-------------\t---------"
	}

	if _, err := fmt.Fprintf(tw, "%s\n%s\n", header, rule); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	ratio := math.Pow(f.maxFreq/f.minFreq, 1/float64(f.points-1))
	for i := range f.points {
		freq := f.minFreq * math.Pow(ratio, float64(i))
		if freq >= f.rate/2 {
			break
		}

		// A bypassed processor passes the signal through untouched.
		model := 0.0
		if !f.bypass {
			model = params.MagnitudeDB(freq)
		}
		row := fmt.Sprintf("%.1f\t%.2f", freq, model)

		if f.measure {
			m := measured.At(freq)
			row += fmt.Sprintf("\t%.2f\t%+.3f", m, m-model)
		}

		if _, err := fmt.Fprintln(tw, row); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	_, _ = fmt.Fprintf(w, "\ntone cutoff: %.1f Hz\n", params.ToneCutoff)

	if f.thdFreq > 0 {
		res, err := f.distortion()
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(w, "THD at %.0f Hz, level %.3g, %s window: %.2f%% (%.1f dB), odd %.2f%%, even %.2f%%\n",
			res.FundamentalFreq, f.thdLevel, f.window, res.THD*100, res.THD_dB, res.OddHD*100, res.EvenHD*100)
	}

	return nil
}

// distortion runs one second of sine through a fresh processor and
// analyzes the second half, after the input high-pass has settled.
func (f *responseFlags) distortion() (thd.Result, error) {
	p, err := f.mono()
	if err != nil {
		return thd.Result{}, err
	}

	n := int(f.rate)
	if n < 2 {
		return thd.Result{}, errors.New("sample rate too low for THD")
	}

	sig := make([]float64, n)
	for i := range sig {
		sig[i] = f.thdLevel * math.Sin(2*math.Pi*f.thdFreq*float64(i)/f.rate)
	}

	block := p.Spec().MaxBlockSize
	for off := 0; off < n; off += block {
		p.Process([][]float64{sig[off:min(off+block, n)]})
	}

	return thd.AnalyzeSignal(sig[n/2:], thd.Config{
		SampleRate:      f.rate,
		FundamentalFreq: f.thdFreq,
		WindowType:      f.window,
	})
}

// mono returns a single-channel processor prepared at the flag rate.
func (f *responseFlags) mono() (*amp.Processor, error) {
	p, err := f.processor(nil)
	if err != nil {
		return nil, err
	}

	if err := p.Prepare(core.NewProcessSpec(core.WithSampleRate(f.rate), core.WithChannels(1))); err != nil {
		return nil, err
	}

	return p, nil
}
