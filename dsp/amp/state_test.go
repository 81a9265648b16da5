package amp

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestControlSetBinaryRoundTrip(t *testing.T) {
	tests := []ControlSet{
		{Gain: 7.5, Tone: 2.0, Volume: 0.8},
		DefaultControlSet(),
		{Gain: 0, Tone: 10, Volume: 10, Bypass: true},
	}

	for _, want := range tests {
		data, err := want.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary() error = %v", err)
		}

		if len(data) != stateSize {
			t.Fatalf("len = %d, want %d", len(data), stateSize)
		}

		var got ControlSet
		if err := got.UnmarshalBinary(data); err != nil {
			t.Fatalf("UnmarshalBinary() error = %v", err)
		}

		if got != want {
			t.Fatalf("round trip = %+v, want %+v", got, want)
		}
	}
}

func TestControlSetBinaryLayout(t *testing.T) {
	data, _ := ControlSet{Gain: 1, Tone: 2, Volume: 3, Bypass: true}.MarshalBinary()

	if string(data[:5]) != "BBAMP" {
		t.Fatalf("magic = %q", data[:5])
	}

	if v := binary.LittleEndian.Uint32(data[5:]); v != 1 {
		t.Fatalf("version = %d", v)
	}

	if g := math.Float64frombits(binary.LittleEndian.Uint64(data[9:])); g != 1 {
		t.Fatalf("gain = %v", g)
	}

	if data[len(data)-1] != 1 {
		t.Fatalf("bypass byte = %d", data[len(data)-1])
	}
}

func TestControlSetUnmarshalClamps(t *testing.T) {
	data, _ := ControlSet{Gain: 99, Tone: math.NaN(), Volume: -4}.MarshalBinary()

	var cs ControlSet
	if err := cs.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}

	if want := (ControlSet{Gain: 10, Tone: 5, Volume: 0}); cs != want {
		t.Fatalf("decoded %+v, want %+v", cs, want)
	}
}

func TestControlSetUnmarshalErrors(t *testing.T) {
	valid, _ := DefaultControlSet().MarshalBinary()

	corrupt := func(mut func([]byte)) []byte {
		b := append([]byte(nil), valid...)
		mut(b)

		return b
	}

	tests := map[string][]byte{
		"empty":     nil,
		"truncated": valid[:stateSize-1],
		"magic":     corrupt(func(b []byte) { b[0] = 'X' }),
		"version":   corrupt(func(b []byte) { b[5] = 9 }),
		"bypass":    corrupt(func(b []byte) { b[stateSize-1] = 2 }),
	}

	for name, data := range tests {
		var cs ControlSet
		if err := cs.UnmarshalBinary(data); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("%s: error = %v, want ErrInvalidState", name, err)
		}
	}
}
