package amp

import "errors"

var (
	// ErrUnknownControl reports a parameter name that is not Gain, Tone or
	// Volume.
	ErrUnknownControl = errors.New("amp: unknown control")
	// ErrInvalidSpec wraps a rejected ProcessSpec passed to Prepare.
	ErrInvalidSpec = errors.New("amp: invalid process spec")
	// ErrInvalidState reports a saved control blob that cannot be decoded.
	ErrInvalidState = errors.New("amp: invalid state")
)
