package window

import (
	"fmt"
	"math"
	"strings"
)

// Type selects a cosine-sum window.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeBlackman
	TypeBlackmanHarris4Term
	TypeFlatTop
)

// Cosine-sum coefficients a0, a1, ... for w[n] = Σ (-1)^k a_k cos(2πkn/N).
var cosineTerms = map[Type][]float64{
	TypeRectangular:         {1},
	TypeHann:                {0.5, 0.5},
	TypeBlackman:            {0.42, 0.5, 0.08},
	TypeBlackmanHarris4Term: {0.35875, 0.48829, 0.14128, 0.01168},
	TypeFlatTop:             {0.21557895, 0.41663158, 0.277263158, 0.083578947, 0.006947368},
}

var typeNames = map[Type]string{
	TypeRectangular:         "rectangular",
	TypeHann:                "hann",
	TypeBlackman:            "blackman",
	TypeBlackmanHarris4Term: "blackman-harris",
	TypeFlatTop:             "flat-top",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType resolves a window from its name.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}

	return 0, fmt.Errorf("window: unknown type %q", name)
}

// MainLobeBins returns the half width of the window's main lobe in DFT
// bins. A cosine sum with K terms has its first nulls K bins from the peak.
func MainLobeBins(t Type) int {
	return len(cosineTerms[t])
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic generates the periodic (DFT-even) form used ahead of an FFT.
func WithPeriodic() Option {
	return func(c *config) { c.periodic = true }
}

// Generate returns length coefficients of the window. Unknown types yield
// nil.
func Generate(t Type, length int, opts ...Option) []float64 {
	terms, ok := cosineTerms[t]
	if !ok || length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}

	den := float64(length - 1)
	if cfg.periodic {
		den = float64(length)
	}

	for n := range out {
		phase := 2 * math.Pi * float64(n) / den
		sign, sum := 1.0, 0.0

		for k, a := range terms {
			sum += sign * a * math.Cos(float64(k)*phase)
			sign = -sign
		}

		out[n] = sum
	}

	return out
}
