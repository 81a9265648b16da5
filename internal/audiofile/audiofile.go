package audiofile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-vecmath"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

var (
	// ErrNotWAV reports input that is not a RIFF/WAVE file.
	ErrNotWAV = errors.New("audiofile: not a wav file")
	// ErrBitDepth reports an unsupported sample width.
	ErrBitDepth = errors.New("audiofile: unsupported bit depth")
)

// Clip is decoded audio held as planar float64 samples in [-1, 1).
type Clip struct {
	SampleRate int
	BitDepth   int
	Channels   [][]float64
}

// NewClip allocates a silent clip.
func NewClip(sampleRate, bitDepth, channels, frames int) *Clip {
	c := &Clip{SampleRate: sampleRate, BitDepth: bitDepth, Channels: make([][]float64, channels)}
	for ch := range c.Channels {
		c.Channels[ch] = make([]float64, frames)
	}

	return c
}

// Frames returns the length of the clip in sample frames.
func (c *Clip) Frames() int {
	if len(c.Channels) == 0 {
		return 0
	}

	return len(c.Channels[0])
}

// Read decodes an integer PCM wav stream.
func Read(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotWAV
	}

	bits := int(dec.BitDepth)
	if !validBitDepth(bits) {
		return nil, fmt.Errorf("%w: %d", ErrBitDepth, bits)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audiofile: decode pcm: %w", err)
	}

	nch := buf.Format.NumChannels
	if nch <= 0 {
		return nil, fmt.Errorf("audiofile: %d channels", nch)
	}

	clip := NewClip(buf.Format.SampleRate, bits, nch, len(buf.Data)/nch)
	scale := 1 / fullScale(bits)

	for i, v := range buf.Data[:clip.Frames()*nch] {
		x := float64(v)
		if bits == 8 {
			// 8-bit wav is unsigned.
			x -= 128
		}

		clip.Channels[i%nch][i/nch] = x * scale
	}

	return clip, nil
}

// ReadFile opens and decodes path. Files ending in .mp3 go through ReadMP3;
// everything else is read as wav.
func ReadFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var clip *Clip
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		clip, err = ReadMP3(f)
	} else {
		clip, err = Read(f)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return clip, nil
}

// WriteOptions controls quantization on write.
type WriteOptions struct {
	// Dither adds ±1 LSB TPDF noise before rounding.
	Dither     bool
	DitherSeed int64
}

// Write encodes clip as integer PCM at clip.BitDepth. Samples are clipped to
// full scale.
func Write(w io.WriteSeeker, clip *Clip, opts WriteOptions) error {
	if !validBitDepth(clip.BitDepth) {
		return fmt.Errorf("%w: %d", ErrBitDepth, clip.BitDepth)
	}

	nch, frames := len(clip.Channels), clip.Frames()
	if nch == 0 {
		return errors.New("audiofile: no channels")
	}

	full := fullScale(clip.BitDepth)

	scaled := make([]float64, frames*nch)
	for ch, data := range clip.Channels {
		for i, x := range data[:frames] {
			scaled[i*nch+ch] = x * full
		}
	}

	if opts.Dither {
		vecmath.AddDitherTPDF(scaled, 1, vecmath.NewDitherState(opts.DitherSeed))
	}

	data := make([]int, len(scaled))
	for i, x := range scaled {
		v := int(math.Max(-full, math.Min(full-1, math.Round(x))))
		if clip.BitDepth == 8 {
			v += 128
		}

		data[i] = v
	}

	enc := wav.NewEncoder(w, clip.SampleRate, clip.BitDepth, nch, wavFormatPCM)

	err := enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: nch, SampleRate: clip.SampleRate},
		Data:           data,
		SourceBitDepth: clip.BitDepth,
	})
	if err != nil {
		return fmt.Errorf("audiofile: encode: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("audiofile: finalize: %w", err)
	}

	return nil
}

// WriteFile creates path and encodes clip into it.
func WriteFile(path string, clip *Clip, opts WriteOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Write(f, clip, opts)
}

func validBitDepth(bits int) bool {
	switch bits {
	case 8, 16, 24, 32:
		return true
	default:
		return false
	}
}

func fullScale(bits int) float64 {
	return float64(int64(1) << (bits - 1))
}
