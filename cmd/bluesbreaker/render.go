package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/cwbudde/algo-amp/dsp/amp"
	"github.com/cwbudde/algo-amp/dsp/core"
	"github.com/cwbudde/algo-amp/internal/audiofile"
	"github.com/cwbudde/algo-amp/measure/level"
)

// renderFlags configure offline rendering.
type renderFlags struct {
	knobFlags

	block     int
	resample  int
	converter int
	bits      int
	dither    bool
	seed      int64
}

func (r *renderFlags) register(fs *flag.FlagSet) {
	fs.IntVar(&r.block, "block", 512, "processing block size in frames")
	fs.IntVar(&r.resample, "resample", 0, "resample input to this rate before processing (0 keeps the file rate)")
	fs.IntVar(&r.converter, "converter", audiofile.SincMediumQuality, "resampler quality 0 (best) .. 4 (linear)")
	fs.IntVar(&r.bits, "bits", 0, "output bit depth 8, 16, 24 or 32 (0 keeps the input depth)")
	fs.BoolVar(&r.dither, "dither", true, "add TPDF dither before quantizing")
	fs.Int64Var(&r.seed, "seed", 1, "dither seed")
}

func runRender(args []string, stdout, stderr io.Writer) error {
	var f renderFlags

	fs := newFlagSet("render", "<in.wav> <out.wav>", stderr)
	f.knobFlags.register(fs)
	f.register(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return errUsage
	}

	paths, err := expandPaths(fs.Args())
	if err != nil {
		return err
	}

	return renderFile(paths[0], paths[1], &f, f.logger(stderr))
}

// renderFile reads in, runs it through a fresh processor and writes out.
func renderFile(in, out string, f *renderFlags, logger *slog.Logger) error {
	clip, err := audiofile.ReadFile(in)
	if err != nil {
		return err
	}

	if f.resample > 0 {
		clip, err = audiofile.Resample(clip, f.resample, f.converter)
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
	}

	p, err := f.processor(logger)
	if err != nil {
		return err
	}

	meter, err := processClip(p, clip, f.block)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	if f.bits > 0 {
		clip.BitDepth = f.bits
	}

	opts := audiofile.WriteOptions{Dither: f.dither && clip.BitDepth < 32, DitherSeed: f.seed}
	if err := audiofile.WriteFile(out, clip, opts); err != nil {
		return fmt.Errorf("%s: %w", out, err)
	}

	logger.Info("rendered",
		slog.String("in", in),
		slog.String("out", out),
		slog.Int("sample_rate", clip.SampleRate),
		slog.Int("frames", clip.Frames()),
		slog.Float64("peak_dbfs", meter.PeakDBFS()),
		slog.Float64("rms_dbfs", meter.RMSDBFS()),
	)

	return nil
}

// processClip prepares p for clip and processes it in place, block by
// block. Channels beyond the processor's limit pass through unchanged.
func processClip(p *amp.Processor, clip *audiofile.Clip, blockSize int) (*level.Meter, error) {
	nch := min(len(clip.Channels), core.MaxChannels)

	err := p.Prepare(core.NewProcessSpec(
		core.WithSampleRate(float64(clip.SampleRate)),
		core.WithBlockSize(blockSize),
		core.WithChannels(nch),
	))
	if err != nil {
		return nil, err
	}

	var meter level.Meter

	frames := clip.Frames()
	views := make([][]float64, nch)
	block := p.Spec().MaxBlockSize

	for off := 0; off < frames; off += block {
		end := min(off+block, frames)
		for ch := range views {
			views[ch] = clip.Channels[ch][off:end]
		}

		p.Process(views)

		for _, v := range views {
			meter.Add(v)
		}
	}

	return &meter, nil
}
