// Package amp models a Bluesbreaker-style overdrive as a fixed chain of
// filters, gain stages and a soft clipper.
//
// A Processor reads three knobs (Gain, Tone, Volume, each 0..10) and a
// bypass switch from lock-free cells. At the top of every block it takes
// one snapshot, resolves the snapshot into stage coefficients and runs each
// channel through the chain in place:
//
//	input-hpf → first-gain → boost → notch → post-gain → anti-alias →
//	soft-clip → post-clip → tone → post-tone → volume
//
// The knobs may be moved from any goroutine. Process, Prepare and
// LoadState share one goroutine.
//
// Resolve is exposed on its own so hosts can inspect the coefficients and
// the small-signal response a knob setting produces without running audio.
package amp
