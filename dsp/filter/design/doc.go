// Package design computes biquad coefficients for the filter stages of the
// amp chain: RBJ cookbook lowpass, highpass, peaking and notch sections,
// bilinear first-order sections, and passive RC corner frequencies.
//
// Every design function returns zero coefficients (silence) for a corner
// at or beyond Nyquist; callers clamp with [ClampFrequency] first.
package design
