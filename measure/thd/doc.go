// Package thd measures total harmonic distortion of a periodic signal from
// its windowed spectrum.
package thd
