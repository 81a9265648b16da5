package amp

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-amp/dsp/filter/biquad"
	"github.com/cwbudde/algo-amp/dsp/shaper"
)

// Stage is one element of the signal chain. Stages hold per-channel state;
// ch selects the lane and must be below the count passed to Reset.
type Stage interface {
	Name() string
	// Reset sizes the per-channel state for channels lanes and zeroes it.
	Reset(channels int)
	ProcessSample(ch int, x float64) float64
	ProcessBlock(ch int, buf []float64)
}

// FilterStage runs one biquad section per channel with shared coefficients.
type FilterStage struct {
	name     string
	coeffs   biquad.Coefficients
	sections []biquad.Section
}

// NewFilterStage returns a pass-through filter stage.
func NewFilterStage(name string) *FilterStage {
	return &FilterStage{name: name, coeffs: biquad.Identity()}
}

func (s *FilterStage) Name() string { return s.name }

func (s *FilterStage) Reset(channels int) {
	if cap(s.sections) >= channels {
		s.sections = s.sections[:channels]
	} else {
		s.sections = make([]biquad.Section, channels)
	}

	for i := range s.sections {
		s.sections[i].SetCoefficients(s.coeffs)
		s.sections[i].Reset()
	}
}

// SetCoefficients updates every channel and keeps the delay lines.
func (s *FilterStage) SetCoefficients(c biquad.Coefficients) {
	s.coeffs = c
	for i := range s.sections {
		s.sections[i].SetCoefficients(c)
	}
}

// Coefficients returns the coefficients in use.
func (s *FilterStage) Coefficients() biquad.Coefficients { return s.coeffs }

// State returns the delay line of channel ch, or zeros for a channel that
// has not been allocated by Reset.
func (s *FilterStage) State(ch int) [2]float64 {
	if ch < 0 || ch >= len(s.sections) {
		return [2]float64{}
	}

	return s.sections[ch].State()
}

// ProcessSample passes x through unchanged for channels Reset did not
// allocate.
func (s *FilterStage) ProcessSample(ch int, x float64) float64 {
	if ch < 0 || ch >= len(s.sections) {
		return x
	}

	return s.sections[ch].ProcessSample(x)
}

// ProcessBlock filters buf and flushes denormal state afterwards. Channels
// without a section are left untouched.
func (s *FilterStage) ProcessBlock(ch int, buf []float64) {
	if ch < 0 || ch >= len(s.sections) {
		return
	}

	sec := &s.sections[ch]
	sec.ProcessBlock(buf)
	sec.FlushDenormals()
}

// GainStage multiplies by a fixed factor. It has no state.
type GainStage struct {
	name   string
	params GainParams
}

// NewGainStage returns a unity gain stage.
func NewGainStage(name string) *GainStage {
	return &GainStage{name: name, params: GainParams{Gain: 1}}
}

func (s *GainStage) Name() string { return s.name }

func (s *GainStage) Reset(int) {}

// SetParams sets the gain magnitude and polarity.
func (s *GainStage) SetParams(p GainParams) { s.params = p }

// Params returns the current setting.
func (s *GainStage) Params() GainParams { return s.params }

func (s *GainStage) ProcessSample(_ int, x float64) float64 {
	return x * s.params.Factor()
}

func (s *GainStage) ProcessBlock(_ int, buf []float64) {
	vecmath.ScaleBlockInPlace(buf, s.params.Factor())
}

// ShaperStage applies a memoryless waveshaper.
type ShaperStage struct {
	name   string
	shaper shaper.Shaper
}

// NewShaperStage returns a stage using the default cubic shaper.
func NewShaperStage(name string) *ShaperStage {
	return &ShaperStage{name: name, shaper: shaper.New(shaper.KindCubic)}
}

func (s *ShaperStage) Name() string { return s.name }

func (s *ShaperStage) Reset(int) {}

// SetShaper replaces the transfer function.
func (s *ShaperStage) SetShaper(sh shaper.Shaper) { s.shaper = sh.Sanitized() }

// Shaper returns the transfer function in use.
func (s *ShaperStage) Shaper() shaper.Shaper { return s.shaper }

func (s *ShaperStage) ProcessSample(_ int, x float64) float64 {
	return s.shaper.Apply(x)
}

func (s *ShaperStage) ProcessBlock(_ int, buf []float64) {
	s.shaper.ProcessBlock(buf)
}

var (
	_ Stage = (*FilterStage)(nil)
	_ Stage = (*GainStage)(nil)
	_ Stage = (*ShaperStage)(nil)
)
