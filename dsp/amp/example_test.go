package amp_test

import (
	"bytes"
	"fmt"

	"github.com/cwbudde/algo-amp/dsp/amp"
	"github.com/cwbudde/algo-amp/dsp/core"
)

func ExampleResolve() {
	params, ok := amp.Resolve(amp.ControlSet{Gain: 5, Tone: 5, Volume: 5}, 48000)

	fmt.Println(ok)
	fmt.Printf("first gain %.1f\n", params.FirstGain.Gain)
	fmt.Printf("post gain %.1f inverted=%v\n", params.PostGain.Gain, params.PostGain.Invert)
	fmt.Printf("tone corner %.0f Hz\n", params.ToneCutoff)
	// Output:
	// true
	// first gain 6.1
	// post gain 2.2 inverted=true
	// tone corner 5050 Hz
}

func ExampleProcessor() {
	p := amp.New()
	if err := p.Prepare(core.NewProcessSpec(core.WithChannels(1), core.WithBlockSize(64))); err != nil {
		fmt.Println(err)
		return
	}

	if err := p.SetControl("Gain", 8); err != nil {
		fmt.Println(err)
		return
	}

	block := make([]float64, 64)
	block[0] = 1
	p.Process([][]float64{block})

	fmt.Println(block[0] != 0)
	// Output: true
}

func ExampleProcessor_SaveState() {
	src := amp.New(amp.WithInitialControls(amp.ControlSet{Gain: 7.5, Tone: 2, Volume: 0.8}))

	var buf bytes.Buffer
	if err := src.SaveState(&buf); err != nil {
		fmt.Println(err)
		return
	}

	dst := amp.New()
	if err := dst.LoadState(&buf); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%+v\n", dst.Controls().Snapshot())
	// Output: {Gain:7.5 Tone:2 Volume:0.8 Bypass:false}
}
