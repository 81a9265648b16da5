// Package response measures frequency responses from impulse responses.
//
// Measure runs a unit impulse through any in-place block processor and
// transforms the result, which is how the amp's small-signal voicing is
// checked against the coefficients it was designed from.
package response
