package amp

import "fmt"

// StageIndex addresses a stage of the chain in signal order.
type StageIndex int

const (
	StageInputHighpass StageIndex = iota
	StageFirstGain
	StageBoost
	StageNotch
	StagePostGain
	StageAntiAlias
	StageSoftClip
	StagePostClip
	StageTone
	StagePostTone
	StageVolume

	NumStages = int(StageVolume) + 1
)

var stageNames = [NumStages]string{
	StageInputHighpass: "input-hpf",
	StageFirstGain:     "first-gain",
	StageBoost:         "boost",
	StageNotch:         "notch",
	StagePostGain:      "post-gain",
	StageAntiAlias:     "anti-alias",
	StageSoftClip:      "soft-clip",
	StagePostClip:      "post-clip",
	StageTone:          "tone",
	StagePostTone:      "post-tone",
	StageVolume:        "volume",
}

func (i StageIndex) String() string {
	if i < 0 || int(i) >= NumStages {
		return fmt.Sprintf("StageIndex(%d)", int(i))
	}

	return stageNames[i]
}

// Chain is the fixed sequence of stages. Stages are stored by concrete type
// so Apply can update them without type assertions; Stage exposes them
// behind the common interface.
type Chain struct {
	inputHighpass *FilterStage
	firstGain     *GainStage
	boost         *FilterStage
	notch         *FilterStage
	postGain      *GainStage
	antiAlias     *FilterStage
	softClip      *ShaperStage
	postClip      *FilterStage
	tone          *FilterStage
	postTone      *FilterStage
	volume        *GainStage

	order [NumStages]Stage
}

// NewChain builds the chain with pass-through settings.
func NewChain() *Chain {
	c := &Chain{
		inputHighpass: NewFilterStage(StageInputHighpass.String()),
		firstGain:     NewGainStage(StageFirstGain.String()),
		boost:         NewFilterStage(StageBoost.String()),
		notch:         NewFilterStage(StageNotch.String()),
		postGain:      NewGainStage(StagePostGain.String()),
		antiAlias:     NewFilterStage(StageAntiAlias.String()),
		softClip:      NewShaperStage(StageSoftClip.String()),
		postClip:      NewFilterStage(StagePostClip.String()),
		tone:          NewFilterStage(StageTone.String()),
		postTone:      NewFilterStage(StagePostTone.String()),
		volume:        NewGainStage(StageVolume.String()),
	}

	c.order = [NumStages]Stage{
		c.inputHighpass, c.firstGain, c.boost, c.notch, c.postGain,
		c.antiAlias, c.softClip, c.postClip, c.tone, c.postTone, c.volume,
	}

	return c
}

// Stage returns the stage at i, or nil when i is out of range.
func (c *Chain) Stage(i StageIndex) Stage {
	if i < 0 || int(i) >= NumStages {
		return nil
	}

	return c.order[i]
}

// Reset sizes every stage for channels lanes and clears all state.
func (c *Chain) Reset(channels int) {
	for _, s := range c.order {
		s.Reset(channels)
	}
}

// Apply pushes resolved parameters into every stage. Filter state is kept.
func (c *Chain) Apply(p Parameters) {
	c.inputHighpass.SetCoefficients(p.InputHighpass)
	c.firstGain.SetParams(p.FirstGain)
	c.boost.SetCoefficients(p.Boost)
	c.notch.SetCoefficients(p.Notch)
	c.postGain.SetParams(p.PostGain)
	c.antiAlias.SetCoefficients(p.AntiAlias)
	c.softClip.SetShaper(p.SoftClip)
	c.postClip.SetCoefficients(p.PostClip)
	c.tone.SetCoefficients(p.Tone)
	c.postTone.SetCoefficients(p.PostTone)
	c.volume.SetParams(p.Volume)
}

// ProcessBlock runs buf through every stage in order, in place.
func (c *Chain) ProcessBlock(ch int, buf []float64) {
	for _, s := range c.order {
		s.ProcessBlock(ch, buf)
	}
}

// ProcessSample runs one sample through every stage.
func (c *Chain) ProcessSample(ch int, x float64) float64 {
	for _, s := range c.order {
		x = s.ProcessSample(ch, x)
	}

	return x
}
