package amp

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestParseControl(t *testing.T) {
	tests := []struct {
		name string
		want Control
	}{
		{"Gain", ControlGain},
		{"tone", ControlTone},
		{" VOLUME ", ControlVolume},
	}

	for _, tt := range tests {
		got, err := ParseControl(tt.name)
		if err != nil {
			t.Fatalf("ParseControl(%q) error = %v", tt.name, err)
		}

		if got != tt.want {
			t.Fatalf("ParseControl(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if _, err := ParseControl("Bass"); !errors.Is(err, ErrUnknownControl) {
		t.Fatalf("ParseControl(Bass) error = %v, want ErrUnknownControl", err)
	}

	if got := Control(7).String(); got != "Control(7)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestControlSetClamped(t *testing.T) {
	tests := []struct {
		in, want ControlSet
	}{
		{ControlSet{Gain: -1, Tone: 11, Volume: 3}, ControlSet{Gain: 0, Tone: 10, Volume: 3}},
		{ControlSet{Gain: math.NaN(), Tone: math.Inf(1), Volume: math.Inf(-1), Bypass: true}, ControlSet{Gain: 5, Tone: 10, Volume: 0, Bypass: true}},
	}

	for _, tt := range tests {
		if got := tt.in.Clamped(); got != tt.want {
			t.Fatalf("Clamped(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestControlSetNormalized(t *testing.T) {
	g, tone, v := ControlSet{Gain: 10, Tone: 2.5, Volume: 0}.Normalized()
	if g != 1 || tone != 0.25 || v != 0 {
		t.Fatalf("Normalized() = %v, %v, %v", g, tone, v)
	}
}

func TestControlsDefaults(t *testing.T) {
	c := NewControls(DefaultControlSet())
	if got := c.Snapshot(); got != DefaultControlSet() {
		t.Fatalf("Snapshot() = %+v, want defaults", got)
	}
}

func TestControlsSetClampsAndIgnoresNaN(t *testing.T) {
	c := NewControls(DefaultControlSet())

	c.Set(ControlGain, 20)
	c.Set(ControlTone, -3)
	c.Set(ControlVolume, 7.5)
	c.Set(ControlVolume, math.NaN())
	c.Set(Control(9), 1)

	want := ControlSet{Gain: 10, Tone: 0, Volume: 7.5}
	if got := c.Snapshot(); got != want {
		t.Fatalf("Snapshot() = %+v, want %+v", got, want)
	}

	if !math.IsNaN(c.Get(Control(-1))) {
		t.Fatal("Get of unknown control should be NaN")
	}
}

func TestControlsConcurrentWriters(t *testing.T) {
	c := NewControls(DefaultControlSet())

	var wg sync.WaitGroup

	for w := range 4 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range 1000 {
				c.Set(Control(w%3), float64(i%11))
				c.SetBypass(i%2 == 0)
				_ = c.Snapshot()
			}
		}()
	}

	wg.Wait()

	got := c.Snapshot()
	for _, v := range []float64{got.Gain, got.Tone, got.Volume} {
		if v < MinControl || v > MaxControl {
			t.Fatalf("knob out of range after concurrent writes: %+v", got)
		}
	}
}
