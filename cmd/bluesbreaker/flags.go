package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/mitchellh/go-homedir"

	"github.com/cwbudde/algo-amp/dsp/amp"
	"github.com/cwbudde/algo-amp/dsp/shaper"
)

// errUsage reports bad command-line arguments after the flag set has
// already printed its message.
var errUsage = errors.New("usage")

// knobFlags are the amp settings shared by every command.
type knobFlags struct {
	gain, tone, volume float64
	bypass             bool
	shaper             string
	drive              float64
	logLevel           string
}

func (k *knobFlags) register(fs *flag.FlagSet) {
	fs.Float64Var(&k.gain, "gain", amp.DefaultControl, "gain knob, 0..10")
	fs.Float64Var(&k.tone, "tone", amp.DefaultControl, "tone knob, 0..10")
	fs.Float64Var(&k.volume, "volume", amp.DefaultControl, "volume knob, 0..10")
	fs.BoolVar(&k.bypass, "bypass", false, "engage true bypass")
	fs.StringVar(&k.shaper, "shaper", shaper.KindCubic.String(), "clipper curve: cubic, arctan, arctan-asym, tanh")
	fs.Float64Var(&k.drive, "drive", 1, "clipper input gain")
	fs.StringVar(&k.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
}

func (k *knobFlags) controls() amp.ControlSet {
	return amp.ControlSet{Gain: k.gain, Tone: k.tone, Volume: k.volume, Bypass: k.bypass}.Clamped()
}

func (k *knobFlags) resolver() (amp.Resolver, error) {
	kind, err := shaper.ParseKind(k.shaper)
	if err != nil {
		return amp.Resolver{}, err
	}

	if !(k.drive > 0) {
		return amp.Resolver{}, fmt.Errorf("drive must be > 0, got %v", k.drive)
	}

	r := amp.DefaultResolver()
	r.ShaperKind = kind
	r.Drive = k.drive

	return r, nil
}

func (k *knobFlags) logger(w io.Writer) *slog.Logger {
	return newLogger(w, k.logLevel)
}

// processor builds an unprepared processor from the flags.
func (k *knobFlags) processor(logger *slog.Logger) (*amp.Processor, error) {
	r, err := k.resolver()
	if err != nil {
		return nil, err
	}

	return amp.New(
		amp.WithLogger(logger),
		amp.WithShaper(r.ShaperKind),
		amp.WithDrive(r.Drive),
		amp.WithInitialControls(k.controls()),
	), nil
}

func newFlagSet(name, args string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: bluesbreaker %s [flags] %s\n\nFlags:\n", name, args)
		fs.PrintDefaults()
	}

	return fs
}

// expandPaths resolves a leading ~ in every path.
func expandPaths(paths []string) ([]string, error) {
	out := make([]string, len(paths))
	for i, p := range paths {
		e, err := homedir.Expand(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}

		out[i] = e
	}

	return out, nil
}
