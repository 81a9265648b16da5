// Package shaper implements the memoryless soft-clip transfer functions of
// the amp chain.
//
// A [Shaper] is a small tagged variant (kind plus constants) rather than a
// closure, so the parameter resolver can swap shapes per block without
// allocating. Build with -tags fastmath to evaluate tanh through
// algo-approx.
package shaper
