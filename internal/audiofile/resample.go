package audiofile

import (
	"fmt"

	"github.com/dh1tw/gosamplerate"
)

// Converter qualities accepted by Resample, best first.
const (
	SincBestQuality = iota
	SincMediumQuality
	SincFastest
	ZeroOrderHold
	Linear
)

// Resample converts clip to sampleRate with libsamplerate. A clip already
// at sampleRate is returned unchanged.
func Resample(clip *Clip, sampleRate, converter int) (*Clip, error) {
	if sampleRate == clip.SampleRate {
		return clip, nil
	}

	if converter < SincBestQuality || converter > Linear {
		return nil, fmt.Errorf("audiofile: invalid converter %d, must be between 0..4", converter)
	}

	if clip.SampleRate <= 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("audiofile: cannot resample %d Hz to %d Hz", clip.SampleRate, sampleRate)
	}

	ratio := float64(sampleRate) / float64(clip.SampleRate)
	if !gosamplerate.IsValidRatio(ratio) {
		return nil, fmt.Errorf("audiofile: resample ratio %v out of range", ratio)
	}

	nch, frames := len(clip.Channels), clip.Frames()

	in := make([]float32, frames*nch)
	for ch, data := range clip.Channels {
		for i, x := range data[:frames] {
			in[i*nch+ch] = float32(x)
		}
	}

	out, err := gosamplerate.Simple(in, ratio, nch, converter)
	if err != nil {
		return nil, fmt.Errorf("audiofile: resample: %w", err)
	}

	res := NewClip(sampleRate, clip.BitDepth, nch, len(out)/nch)
	for i, x := range out[:res.Frames()*nch] {
		res.Channels[i%nch][i/nch] = float64(x)
	}

	return res, nil
}
