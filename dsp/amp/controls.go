package amp

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"github.com/cwbudde/algo-amp/dsp/core"
)

// Knob range shared by Gain, Tone and Volume.
const (
	MinControl     = 0.0
	MaxControl     = 10.0
	DefaultControl = 5.0
	ControlStep    = 0.1
)

// Control names one of the continuous knobs.
type Control int

const (
	ControlGain Control = iota
	ControlTone
	ControlVolume
)

var controlNames = [...]string{
	ControlGain:   "Gain",
	ControlTone:   "Tone",
	ControlVolume: "Volume",
}

// String returns the host-facing parameter name.
func (c Control) String() string {
	if c < 0 || int(c) >= len(controlNames) {
		return fmt.Sprintf("Control(%d)", int(c))
	}

	return controlNames[c]
}

// ParseControl resolves a knob from its name, case-insensitively.
func ParseControl(name string) (Control, error) {
	for i, n := range controlNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Control(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownControl, name)
}

// ControlSet is a per-block snapshot of the user controls.
type ControlSet struct {
	Gain   float64
	Tone   float64
	Volume float64
	Bypass bool
}

// DefaultControlSet returns every knob at noon and bypass off.
func DefaultControlSet() ControlSet {
	return ControlSet{
		Gain:   DefaultControl,
		Tone:   DefaultControl,
		Volume: DefaultControl,
	}
}

// Clamped returns a copy with every knob limited to [MinControl, MaxControl].
// NaN knobs fall back to DefaultControl.
func (c ControlSet) Clamped() ControlSet {
	c.Gain = clampControl(c.Gain, DefaultControl)
	c.Tone = clampControl(c.Tone, DefaultControl)
	c.Volume = clampControl(c.Volume, DefaultControl)

	return c
}

// Normalized maps the clamped knobs to [0, 1].
func (c ControlSet) Normalized() (gain, tone, volume float64) {
	c = c.Clamped()
	span := MaxControl - MinControl

	return (c.Gain - MinControl) / span, (c.Tone - MinControl) / span, (c.Volume - MinControl) / span
}

// Value returns the knob selected by ctrl.
func (c ControlSet) Value(ctrl Control) float64 {
	switch ctrl {
	case ControlGain:
		return c.Gain
	case ControlTone:
		return c.Tone
	case ControlVolume:
		return c.Volume
	default:
		return math.NaN()
	}
}

// Controls stores the knobs as independent atomic cells. Any goroutine may
// write; the audio goroutine snapshots once per block. Reads of different
// knobs are not atomic with respect to each other.
type Controls struct {
	cells  [len(controlNames)]atomic.Uint64
	bypass atomic.Bool
}

// NewControls returns cells initialized from initial (clamped).
func NewControls(initial ControlSet) *Controls {
	c := &Controls{}
	c.Store(initial)

	return c
}

// Set writes one knob, clamping to the knob range. NaN is ignored and an
// unknown control is a no-op.
func (c *Controls) Set(ctrl Control, value float64) {
	if ctrl < 0 || int(ctrl) >= len(c.cells) || math.IsNaN(value) {
		return
	}

	c.cells[ctrl].Store(math.Float64bits(core.Clamp(value, MinControl, MaxControl)))
}

// Get reads one knob.
func (c *Controls) Get(ctrl Control) float64 {
	if ctrl < 0 || int(ctrl) >= len(c.cells) {
		return math.NaN()
	}

	return math.Float64frombits(c.cells[ctrl].Load())
}

// SetBypass engages or releases the bypass switch.
func (c *Controls) SetBypass(on bool) {
	c.bypass.Store(on)
}

// Bypass reports the bypass switch.
func (c *Controls) Bypass() bool {
	return c.bypass.Load()
}

// Snapshot reads every cell once.
func (c *Controls) Snapshot() ControlSet {
	return ControlSet{
		Gain:   c.Get(ControlGain),
		Tone:   c.Get(ControlTone),
		Volume: c.Get(ControlVolume),
		Bypass: c.Bypass(),
	}
}

// Store writes every cell from cs (clamped).
func (c *Controls) Store(cs ControlSet) {
	cs = cs.Clamped()
	c.Set(ControlGain, cs.Gain)
	c.Set(ControlTone, cs.Tone)
	c.Set(ControlVolume, cs.Volume)
	c.SetBypass(cs.Bypass)
}

func clampControl(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}

	return core.Clamp(v, MinControl, MaxControl)
}
