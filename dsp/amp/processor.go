package amp

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-amp/dsp/core"
	"github.com/cwbudde/algo-amp/dsp/shaper"
)

// Option configures a Processor at construction time.
type Option func(*Processor)

// WithLogger sets the logger used for Prepare and state events. Nothing is
// logged from Process.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithShaper selects the clipper transfer function. Unknown kinds are
// ignored.
func WithShaper(kind shaper.Kind) Option {
	return func(p *Processor) {
		if kind.Valid() {
			p.resolver.ShaperKind = kind
		}
	}
}

// WithDrive sets the clipper input gain. Values <= 0 are ignored.
func WithDrive(drive float64) Option {
	return func(p *Processor) {
		if drive > 0 {
			p.resolver.Drive = drive
		}
	}
}

// WithInitialControls sets the knob positions the processor starts with.
func WithInitialControls(cs ControlSet) Option {
	return func(p *Processor) {
		p.controls.Store(cs)
	}
}

// WithControls makes the processor read an existing set of control cells,
// so several processors can follow one set of knobs.
func WithControls(c *Controls) Option {
	return func(p *Processor) {
		if c != nil {
			p.controls = c
		}
	}
}

// Processor is the amp emulation. Prepare, Release and LoadState belong to
// the host thread and must not overlap Process; the setters may be called
// from any goroutine at any time.
type Processor struct {
	logger   *slog.Logger
	resolver Resolver
	controls *Controls
	chain    *Chain

	spec     core.ProcessSpec
	prepared bool

	applied ControlSet
	params  Parameters

	scratch [][]float64
	views   [][]float64
}

// New returns an unprepared processor with default controls.
func New(opts ...Option) *Processor {
	p := &Processor{
		logger:   slog.New(slog.DiscardHandler),
		resolver: DefaultResolver(),
		controls: NewControls(DefaultControlSet()),
		chain:    NewChain(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

// Prepare validates spec, allocates per-channel state and scratch, clears
// all filter memory and derives coefficients from the current controls.
// On error the processor is left unprepared.
func (p *Processor) Prepare(spec core.ProcessSpec) error {
	if err := spec.Validate(); err != nil {
		p.prepared = false
		return fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}

	p.spec = spec

	// Re-preparing keeps scratch capacity from the previous spec.
	scratch := make([][]float64, spec.NumChannels)
	copy(scratch, p.scratch)
	for ch := range scratch {
		scratch[ch] = core.EnsureLen(scratch[ch], spec.MaxBlockSize)
	}
	p.scratch = scratch

	p.views = make([][]float64, spec.NumChannels)

	p.chain.Reset(spec.NumChannels)
	p.update(p.controls.Snapshot())
	p.prepared = true

	p.logger.Debug("amp prepared",
		slog.Float64("sample_rate", spec.SampleRate),
		slog.Int("max_block_size", spec.MaxBlockSize),
		slog.Int("channels", spec.NumChannels),
		slog.String("shaper", p.resolver.ShaperKind.String()),
	)

	return nil
}

// Prepared reports whether Process will do work.
func (p *Processor) Prepared() bool { return p.prepared }

// Spec returns the spec passed to the last successful Prepare.
func (p *Processor) Spec() core.ProcessSpec { return p.spec }

// Release drops scratch buffers. The processor must be prepared again
// before it processes.
func (p *Processor) Release() {
	p.prepared = false
	p.scratch = nil
	p.views = nil
}

// Reset clears filter memory without changing controls or coefficients.
func (p *Processor) Reset() {
	if p.prepared {
		p.chain.Reset(p.spec.NumChannels)
	}
}

// Latency returns the processing delay in samples.
func (p *Processor) Latency() int { return 0 }

// Process runs planar channels through the chain in place. Channels beyond
// the prepared count are left untouched. While bypassed the block is not
// touched and filter memory does not advance.
func (p *Processor) Process(channels [][]float64) {
	if !p.prepared {
		return
	}

	cs := p.controls.Snapshot()
	if cs.Bypass {
		return
	}

	p.update(cs)

	n := min(len(channels), p.spec.NumChannels)
	for ch := range n {
		p.chain.ProcessBlock(ch, channels[ch])
	}
}

// ProcessInterleaved processes interleaved frames in place through the
// scratch buffers, MaxBlockSize frames at a time. A trailing partial frame
// is left untouched.
func (p *Processor) ProcessInterleaved(buf []float64) {
	if !p.prepared {
		return
	}

	cs := p.controls.Snapshot()
	if cs.Bypass {
		return
	}

	p.update(cs)

	nch := p.spec.NumChannels
	frames := len(buf) / nch

	for off := 0; off < frames; off += p.spec.MaxBlockSize {
		n := min(p.spec.MaxBlockSize, frames-off)
		for ch := range p.views {
			p.views[ch] = p.scratch[ch][:n]
		}

		block := buf[off*nch : (off+n)*nch]
		core.Deinterleave(p.views, block)

		for ch, v := range p.views {
			p.chain.ProcessBlock(ch, v)
		}

		core.Interleave(block, p.views, n)
	}
}

// update re-derives coefficients when the controls moved since the last
// block. Resolution is pure, so skipping an unchanged set is exact.
func (p *Processor) update(cs ControlSet) {
	cs.Bypass = false
	if p.prepared && cs == p.applied && p.params.SampleRate == p.spec.SampleRate {
		return
	}

	params, ok := p.resolver.Resolve(cs, p.spec.SampleRate)
	if !ok {
		return
	}

	p.chain.Apply(params)
	p.applied = cs
	p.params = params
}

// Controls returns the cells the processor reads.
func (p *Processor) Controls() *Controls { return p.controls }

// SetControl sets a knob by its host-facing name.
func (p *Processor) SetControl(name string, value float64) error {
	ctrl, err := ParseControl(name)
	if err != nil {
		return err
	}

	p.controls.Set(ctrl, value)

	return nil
}

// SetGain sets the Gain knob.
func (p *Processor) SetGain(v float64) { p.controls.Set(ControlGain, v) }

// SetTone sets the Tone knob.
func (p *Processor) SetTone(v float64) { p.controls.Set(ControlTone, v) }

// SetVolume sets the Volume knob.
func (p *Processor) SetVolume(v float64) { p.controls.Set(ControlVolume, v) }

// SetBypass engages or releases true bypass.
func (p *Processor) SetBypass(on bool) { p.controls.SetBypass(on) }

// Parameters resolves the current knobs at the prepared sample rate. It
// reports false before the first successful Prepare.
func (p *Processor) Parameters() (Parameters, bool) {
	return p.resolver.Resolve(p.controls.Snapshot(), p.spec.SampleRate)
}

// Chain exposes the stages for inspection.
func (p *Processor) Chain() *Chain { return p.chain }
