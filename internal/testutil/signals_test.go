package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	s := Sine(1000, 48000, 0.5, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}

	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	// A quarter period of 1 kHz at 48 kHz is 12 samples.
	if math.Abs(s[12]-0.5) > 1e-12 {
		t.Fatalf("s[12] = %v, want 0.5", s[12])
	}
}

func TestNoiseReproducible(t *testing.T) {
	a := NewNoise(42, 10).Block(256)
	b := NewNoise(42, 10).Block(256)
	RequireIdentical(t, a, b)
	RequireBounded(t, a, 10)

	c := NewNoise(43, 10).Block(256)
	if a[0] == c[0] && a[1] == c[1] {
		t.Fatal("different seeds produced the same stream")
	}
}

func TestNoiseFillContinuesStream(t *testing.T) {
	whole := NewNoise(7, 1).Block(64)

	n := NewNoise(7, 1)
	first, second := make([]float64, 32), make([]float64, 32)
	n.Fill(first)
	n.Fill(second)

	RequireIdentical(t, append(first, second...), whole)
}

func TestImpulse(t *testing.T) {
	imp := Impulse(8, 3)
	for i, v := range imp {
		want := 0.0
		if i == 3 {
			want = 1
		}

		if v != want {
			t.Fatalf("imp[%d] = %v, want %v", i, v, want)
		}
	}

	RequireSilent(t, Impulse(4, 9))
}

func TestPlanarCopiesAreIndependent(t *testing.T) {
	src := []float64{1, 2, 3}
	p := Planar(src, 2)
	p[0][0] = 9

	if p[1][0] != 1 || src[0] != 1 {
		t.Fatal("planar channels share storage")
	}

	c := Clone(p)
	c[1][2] = -1

	if p[1][2] != 3 {
		t.Fatal("clone shares storage")
	}
}
