package core

import (
	"errors"
	"fmt"
)

// Limits enforced by ProcessSpec.Validate.
const (
	MinChannels = 1
	MaxChannels = 2
)

var (
	// ErrInvalidSampleRate reports a sample rate that is not > 0 and finite.
	ErrInvalidSampleRate = errors.New("sample rate must be > 0 and finite")
	// ErrInvalidBlockSize reports a maximum block size that is not > 0.
	ErrInvalidBlockSize = errors.New("max block size must be > 0")
	// ErrInvalidChannels reports a channel count outside [MinChannels, MaxChannels].
	ErrInvalidChannels = errors.New("channel count out of range")
)

// ProcessSpec describes the stream a processor is prepared for.
type ProcessSpec struct {
	SampleRate   float64
	MaxBlockSize int
	NumChannels  int
}

// ProcessorOption mutates a ProcessSpec.
type ProcessorOption func(*ProcessSpec)

// DefaultProcessSpec returns sensible defaults for offline and streaming use.
func DefaultProcessSpec() ProcessSpec {
	return ProcessSpec{
		SampleRate:   48000,
		MaxBlockSize: 512,
		NumChannels:  2,
	}
}

// WithSampleRate sets the processing sample rate. The value is stored as
// given; Validate rejects non-positive or non-finite rates.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(spec *ProcessSpec) {
		spec.SampleRate = sampleRate
	}
}

// WithBlockSize sets the maximum processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(spec *ProcessSpec) {
		spec.MaxBlockSize = blockSize
	}
}

// WithChannels sets the channel count.
func WithChannels(channels int) ProcessorOption {
	return func(spec *ProcessSpec) {
		spec.NumChannels = channels
	}
}

// NewProcessSpec applies zero or more options to the default spec.
func NewProcessSpec(opts ...ProcessorOption) ProcessSpec {
	spec := DefaultProcessSpec()
	for _, opt := range opts {
		if opt != nil {
			opt(&spec)
		}
	}

	return spec
}

// Validate checks the spec and returns a wrapped sentinel error on failure.
func (s ProcessSpec) Validate() error {
	if !IsFinite(s.SampleRate) || s.SampleRate <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, s.SampleRate)
	}

	if s.MaxBlockSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, s.MaxBlockSize)
	}

	if s.NumChannels < MinChannels || s.NumChannels > MaxChannels {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidChannels, s.NumChannels, MinChannels, MaxChannels)
	}

	return nil
}

// Nyquist returns half the sample rate.
func (s ProcessSpec) Nyquist() float64 {
	return s.SampleRate / 2
}
