package shaper

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-amp/dsp/core"
)

const (
	// DefaultArctanK is the diode constant of the arctan shapes.
	DefaultArctanK = 0.7
	// DefaultKnee is where the cubic shape leaves its linear region.
	DefaultKnee = 0.5

	maxKnee    = 0.99
	maxArctanK = 0.99
)

// Kind selects the transfer function applied by a Shaper.
type Kind int

const (
	// KindCubic is linear up to the knee, then a cubic that lands on ±1
	// with zero slope, then a hard limit.
	KindCubic Kind = iota
	// KindArctan is x - k*atan(x), odd-symmetric.
	KindArctan
	// KindArctanAsymmetric keeps x - k*atan(x) for x >= 0 and uses
	// -k*atan(-x) below zero, like a diode pair with unequal legs.
	KindArctanAsymmetric
	// KindTanh is the hyperbolic tangent.
	KindTanh
)

var kindNames = map[Kind]string{
	KindCubic:            "cubic",
	KindArctan:           "arctan",
	KindArctanAsymmetric: "arctan-asym",
	KindTanh:             "tanh",
}

// String returns the short name used by ParseKind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Symmetric reports whether f(-x) == -f(x) holds for the kind.
func (k Kind) Symmetric() bool {
	return k != KindArctanAsymmetric
}

// ParseKind resolves a kind from its short name.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}

	return 0, fmt.Errorf("shaper: unknown kind %q", name)
}

// Shaper is a memoryless waveshaper. It is a plain value: copying it is
// cheap and it holds no state, so the resolver rebuilds it every block.
type Shaper struct {
	Kind  Kind
	Drive float64 // input gain applied before the transfer function
	K     float64 // arctan diode constant
	Knee  float64 // cubic linear-region limit
}

// New returns a shaper of the given kind with unity drive and default
// constants.
func New(kind Kind) Shaper {
	return Shaper{
		Kind:  kind,
		Drive: 1,
		K:     DefaultArctanK,
		Knee:  DefaultKnee,
	}
}

// Sanitized returns a copy with every constant clamped into the range the
// transfer functions are defined for.
func (s Shaper) Sanitized() Shaper {
	if !s.Kind.Valid() {
		s.Kind = KindCubic
	}

	if !(s.Drive >= 0) || math.IsInf(s.Drive, 0) {
		s.Drive = 1
	}

	s.K = clamp(s.K, 0, maxArctanK)
	s.Knee = clamp(s.Knee, 0, maxKnee)

	return s
}

// Apply shapes one sample. Non-finite results map to 0.
func (s Shaper) Apply(x float64) float64 {
	x *= s.Drive

	var y float64

	switch s.Kind {
	case KindArctan:
		y = arctan(x, s.K)
	case KindArctanAsymmetric:
		y = arctanAsymmetric(x, s.K)
	case KindTanh:
		y = tanh(x)
	default:
		y = cubic(x, s.Knee)
	}

	if !core.IsFinite(y) {
		return 0
	}

	return y
}

// ProcessBlock shapes buf in place.
func (s Shaper) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = s.Apply(x)
	}
}

// Cubic is the piecewise cubic soft clip with linear region |x| <= knee.
//
// With a = knee and u = (|x|-a)/(3(1-a)) the knee segment is
// 1 - (1-a)(1-u)^3, which meets the linear region with value a and slope 1
// and reaches ±1 at |x| = 3-2a with zero slope and zero curvature.
func Cubic(x, knee float64) float64 {
	return cubic(x, clamp(knee, 0, maxKnee))
}

// Arctan is the odd-symmetric diode shape x - k*atan(x).
func Arctan(x, k float64) float64 {
	return arctan(x, k)
}

// ArctanAsymmetric is x - k*atan(x) for x >= 0 and -k*atan(-x) otherwise.
func ArctanAsymmetric(x, k float64) float64 {
	return arctanAsymmetric(x, k)
}

func cubic(x, a float64) float64 {
	ax := math.Abs(x)
	if ax <= a {
		return x
	}

	if ax >= 3-2*a {
		return math.Copysign(1, x)
	}

	v := 1 - (ax-a)/(3*(1-a))

	return math.Copysign(1-(1-a)*v*v*v, x)
}

func arctan(x, k float64) float64 {
	return x - k*math.Atan(x)
}

func arctanAsymmetric(x, k float64) float64 {
	if x >= 0 {
		return x - k*math.Atan(x)
	}

	return -k * math.Atan(-x)
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}

	if x > hi {
		return hi
	}

	return x
}
