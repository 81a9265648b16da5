package amp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math"
)

const (
	stateMagic   = "BBAMP"
	stateVersion = uint32(1)
	stateSize    = len(stateMagic) + 4 + 3*8 + 1
)

// MarshalBinary encodes the knobs and bypass switch as a fixed 34-byte
// little-endian record: magic, version, Gain, Tone, Volume, bypass.
func (c ControlSet) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, stateSize)
	buf = append(buf, stateMagic...)
	buf = binary.LittleEndian.AppendUint32(buf, stateVersion)

	for _, v := range [...]float64{c.Gain, c.Tone, c.Volume} {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}

	var bypass byte
	if c.Bypass {
		bypass = 1
	}

	return append(buf, bypass), nil
}

// UnmarshalBinary decodes a record written by MarshalBinary. Decoded knobs
// are clamped; NaN knobs take their default.
func (c *ControlSet) UnmarshalBinary(data []byte) error {
	if len(data) != stateSize {
		return fmt.Errorf("%w: %d bytes, want %d", ErrInvalidState, len(data), stateSize)
	}

	if !bytes.Equal(data[:len(stateMagic)], []byte(stateMagic)) {
		return fmt.Errorf("%w: bad magic %q", ErrInvalidState, data[:len(stateMagic)])
	}

	data = data[len(stateMagic):]
	if v := binary.LittleEndian.Uint32(data); v != stateVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidState, v)
	}

	data = data[4:]

	var knobs [3]float64
	for i := range knobs {
		knobs[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[8*i:]))
	}

	bypass := data[24]
	if bypass > 1 {
		return fmt.Errorf("%w: bypass byte %d", ErrInvalidState, bypass)
	}

	*c = ControlSet{
		Gain:   knobs[0],
		Tone:   knobs[1],
		Volume: knobs[2],
		Bypass: bypass == 1,
	}.Clamped()

	return nil
}

// SaveState writes the current controls to w.
func (p *Processor) SaveState(w io.Writer) error {
	data, err := p.controls.Snapshot().MarshalBinary()
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("amp: save state: %w", err)
	}

	return nil
}

// LoadState restores controls from r and, when prepared, re-derives every
// coefficient before returning. Filter memory is kept.
func (p *Processor) LoadState(r io.Reader) error {
	data := make([]byte, stateSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	var cs ControlSet
	if err := cs.UnmarshalBinary(data); err != nil {
		return err
	}

	p.controls.Store(cs)

	if p.prepared {
		p.update(cs)
	}

	p.logger.Info("amp state loaded",
		slog.Float64("gain", cs.Gain),
		slog.Float64("tone", cs.Tone),
		slog.Float64("volume", cs.Volume),
		slog.Bool("bypass", cs.Bypass),
	)

	return nil
}
