package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-amp/dsp/amp"
)

func runInfo(args []string, stdout, stderr io.Writer) error {
	var f responseFlags

	fs := newFlagSet("info", "", stderr)
	f.knobFlags.register(fs)
	fs.Float64Var(&f.rate, "rate", 48000, "sample rate in Hz")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return errUsage
	}

	p, err := f.mono()
	if err != nil {
		return err
	}

	return printStages(stdout, p)
}

func printStages(w io.Writer, p *amp.Processor) error {
	cs := p.Controls().Snapshot()
	_, _ = fmt.Fprintf(w, "gain %.1f  tone %.1f  volume %.1f  bypass %t  rate %.0f Hz\n\n",
		cs.Gain, cs.Tone, cs.Volume, cs.Bypass, p.Spec().SampleRate)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "#\tStage\tKind\tSettings\n-\t-----\t----\t--------\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for i := range amp.NumStages {
		var kind, settings string

		switch s := p.Chain().Stage(amp.StageIndex(i)).(type) {
		case *amp.FilterStage:
			c := s.Coefficients()
			kind = "biquad"
			settings = fmt.Sprintf("b=[%.6g %.6g %.6g] a=[1 %.6g %.6g] dc=%.4g",
				c.B0, c.B1, c.B2, c.A1, c.A2, c.DCGain())
		case *amp.GainStage:
			kind = "gain"
			settings = fmt.Sprintf("x%.4g", s.Params().Factor())
		case *amp.ShaperStage:
			sh := s.Shaper()
			kind = "shaper"
			settings = fmt.Sprintf("%s drive=%.3g knee=%.3g k=%.3g", sh.Kind, sh.Drive, sh.Knee, sh.K)
		}

		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, amp.StageIndex(i), kind, settings); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	if params, ok := p.Parameters(); ok {
		_, _ = fmt.Fprintf(w, "\n1 kHz small-signal gain: %.2f dB\n", params.MagnitudeDB(1000))
	}

	return nil
}
