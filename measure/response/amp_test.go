package response_test

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-amp/dsp/amp"
	"github.com/cwbudde/algo-amp/dsp/core"
	"github.com/cwbudde/algo-amp/measure/response"
)

func TestMeasuredAmpMatchesResolvedResponse(t *testing.T) {
	const sr = 48000

	for _, cs := range []amp.ControlSet{
		{Gain: 0, Tone: 2, Volume: 5},
		{Gain: 5, Tone: 5, Volume: 5},
		{Gain: 10, Tone: 9, Volume: 10},
	} {
		p := amp.New(amp.WithInitialControls(cs))
		if err := p.Prepare(core.ProcessSpec{SampleRate: sr, MaxBlockSize: 512, NumChannels: 1}); err != nil {
			t.Fatalf("Prepare() error = %v", err)
		}

		// 1e-3 keeps the clipper input inside its linear region.
		curve, err := response.Measure(p, sr, 16384, 512, 1e-3)
		if err != nil {
			t.Fatalf("Measure() error = %v", err)
		}

		params, _ := p.Parameters()

		for _, f := range []float64{100, 440, 1000, 3000, 8000} {
			k := int(math.Round(f * 16384 / sr))
			freq := curve.Freqs[k]

			if got, want := curve.MagnitudeDB[k], params.MagnitudeDB(freq); math.Abs(got-want) > 0.05 {
				t.Fatalf("%+v at %v Hz: measured %v dB, resolved %v dB", cs, freq, got, want)
			}
		}
	}
}
