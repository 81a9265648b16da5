package amp

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-amp/dsp/filter/biquad"
	"github.com/cwbudde/algo-amp/dsp/filter/design"
	"github.com/cwbudde/algo-amp/dsp/shaper"
)

// GainParams is the setting of one linear gain stage. Gain is a magnitude;
// the inverting stage carries its sign in Invert.
type GainParams struct {
	Gain   float64
	Invert bool
}

// Factor returns the signed multiplier.
func (g GainParams) Factor() float64 {
	if g.Invert {
		return -g.Gain
	}

	return g.Gain
}

// Parameters holds the resolved coefficients and gains of every stage for
// one block. It is comparable, so two resolutions can be checked with ==.
type Parameters struct {
	SampleRate float64

	InputHighpass biquad.Coefficients
	FirstGain     GainParams
	Boost         biquad.Coefficients
	Notch         biquad.Coefficients
	PostGain      GainParams
	AntiAlias     biquad.Coefficients
	SoftClip      shaper.Shaper
	PostClip      biquad.Coefficients
	Tone          biquad.Coefficients
	PostTone      biquad.Coefficients
	Volume        GainParams

	// ToneCutoff is the corner the Tone stage was designed at.
	ToneCutoff float64
}

// Filters returns the filter coefficients in chain order.
func (p Parameters) Filters() []biquad.Coefficients {
	return []biquad.Coefficients{
		p.InputHighpass, p.Boost, p.Notch, p.AntiAlias, p.PostClip, p.Tone, p.PostTone,
	}
}

// LinearResponse returns the small-signal complex response of the chain at
// freq: every filter and gain stage, with the clipper treated as its slope
// at the origin.
func (p Parameters) LinearResponse(freq float64) complex128 {
	h := complex(p.FirstGain.Factor()*p.PostGain.Factor()*p.Volume.Factor()*clipperSlope(p.SoftClip), 0)
	for _, c := range p.Filters() {
		h *= c.Response(freq, p.SampleRate)
	}

	return h
}

// MagnitudeDB returns 20*log10|LinearResponse(freq)|.
func (p Parameters) MagnitudeDB(freq float64) float64 {
	return 20 * math.Log10(cmplx.Abs(p.LinearResponse(freq)))
}

// Resolver maps a ControlSet to Parameters. The zero value is not usable;
// start from DefaultResolver.
type Resolver struct {
	ShaperKind shaper.Kind
	Drive      float64
}

// DefaultResolver returns the canonical voicing: cubic clipper at unity
// drive.
func DefaultResolver() Resolver {
	return Resolver{ShaperKind: shaper.KindCubic, Drive: 1}
}

// Resolve is DefaultResolver().Resolve.
func Resolve(cs ControlSet, sampleRate float64) (Parameters, bool) {
	return DefaultResolver().Resolve(cs, sampleRate)
}

// Resolve derives every stage's coefficients from cs at sampleRate. It is
// pure: identical inputs give identical Parameters. It reports false and
// returns the zero Parameters when sampleRate is not > 0 and finite.
func (r Resolver) Resolve(cs ControlSet, sampleRate float64) (Parameters, bool) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Parameters{}, false
	}

	g, t, v := cs.Normalized()

	corner := func(freq float64) float64 {
		return design.ClampFrequency(freq, minCornerHz, maxCornerRatio, sampleRate)
	}

	clip := shaper.New(r.ShaperKind)
	clip.Drive = r.Drive
	clip = clip.Sanitized()

	toneCutoff := corner(toneMinHz + t*(toneMaxHz-toneMinHz))

	return Parameters{
		SampleRate: sampleRate,

		InputHighpass: design.FirstOrderHighpass(corner(inputHighpassHz), sampleRate),
		FirstGain:     GainParams{Gain: nonNegative(nonInvertingGain(g))},
		Boost:         design.Peak(corner(boostFreq.at(g)), boostDB.at(g), boostQ.at(g), sampleRate),
		Notch:         design.Peak(corner(notchFreq.at(g)), notchDB.at(g), notchQ.at(g), sampleRate),
		PostGain:      GainParams{Gain: nonNegative(postStageRf / postStageRin), Invert: true},
		AntiAlias:     design.Lowpass(corner(sampleRate/2-antiAliasMarginHz), butterworthQ, sampleRate),
		SoftClip:      clip,
		PostClip:      design.FirstOrderLowpass(corner(design.RCCutoff(postClipR, postClipC)), sampleRate),
		Tone:          design.Lowpass(toneCutoff, butterworthQ, sampleRate),
		PostTone:      design.FirstOrderLowpass(corner(design.RCCutoff(postToneR, postToneC)), sampleRate),
		Volume:        GainParams{Gain: nonNegative(v)},

		ToneCutoff: toneCutoff,
	}, true
}

// nonInvertingGain is 1 + (R1 + g*Rpot)/R2 with the gain pot at position g.
func nonInvertingGain(g float64) float64 {
	return 1 + (firstStageR1+g*firstStageRpot)/firstStageR2
}

// clipperSlope is the small-signal gain of the shaper around zero. The
// asymmetric arctan has a kink there: slope 1-K above zero and K below.
// The positive branch is reported, matching a positive test impulse.
func clipperSlope(s shaper.Shaper) float64 {
	switch s.Kind {
	case shaper.KindArctan, shaper.KindArctanAsymmetric:
		return s.Drive * (1 - s.K)
	default:
		return s.Drive
	}
}

func nonNegative(x float64) float64 {
	if !(x > 0) {
		return 0
	}

	return x
}
