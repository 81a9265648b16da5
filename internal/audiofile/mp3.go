package audiofile

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// mp3 streams always decode to 16-bit little-endian stereo.
const (
	mp3Channels   = 2
	mp3BitDepth   = 16
	mp3FrameBytes = mp3Channels * mp3BitDepth / 8
)

// ReadMP3 decodes an mp3 stream. The clip is stereo at 16 bits even for
// mono sources.
func ReadMP3(r io.Reader) (*Clip, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("audiofile: mp3: %w", err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("audiofile: mp3 decode: %w", err)
	}

	frames := len(pcm) / mp3FrameBytes
	clip := NewClip(dec.SampleRate(), mp3BitDepth, mp3Channels, frames)
	scale := 1 / fullScale(mp3BitDepth)

	for i := range frames {
		for ch := range mp3Channels {
			off := i*mp3FrameBytes + ch*2
			clip.Channels[ch][i] = float64(int16(binary.LittleEndian.Uint16(pcm[off:]))) * scale
		}
	}

	return clip, nil
}
