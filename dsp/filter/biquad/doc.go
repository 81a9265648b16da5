// Package biquad provides the IIR runtime used by every filter stage of the
// amp chain.
//
// A [Section] runs one second-order (or first-order, with B2 = A2 = 0)
// section in Direct Form II Transposed. Coefficient design lives in
// dsp/filter/design; this package only stores, checks, and runs them.
package biquad
