package shaper

import (
	"math"
	"testing"
)

var allKinds = []Kind{KindCubic, KindArctan, KindArctanAsymmetric, KindTanh}

func sweep(fn func(x float64)) {
	for x := -12.0; x <= 12.0; x += 0.0137 {
		fn(x)
	}

	for _, x := range []float64{0, 1e-300, 0.5, 2, 1e6, 1e150, math.MaxFloat64} {
		fn(x)
		fn(-x)
	}
}

func TestOddSymmetry(t *testing.T) {
	for _, kind := range allKinds {
		if !kind.Symmetric() {
			continue
		}

		s := New(kind)
		s.Drive = 3.3

		sweep(func(x float64) {
			if pos, neg := s.Apply(x), s.Apply(-x); pos != -neg {
				t.Fatalf("%v: f(%v)=%v, f(-x)=%v", kind, x, pos, neg)
			}
		})
	}
}

func TestFiniteForFiniteInput(t *testing.T) {
	for _, kind := range allKinds {
		s := New(kind)
		s.Drive = 10

		sweep(func(x float64) {
			if y := s.Apply(x); math.IsNaN(y) || math.IsInf(y, 0) {
				t.Fatalf("%v: f(%v) = %v", kind, x, y)
			}
		})
	}
}

func TestNonFiniteInputMapsToFiniteOutput(t *testing.T) {
	for _, kind := range allKinds {
		s := New(kind)

		for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			if y := s.Apply(x); math.IsNaN(y) || math.IsInf(y, 0) {
				t.Fatalf("%v: f(%v) = %v", kind, x, y)
			}
		}
	}
}

func TestMonotonic(t *testing.T) {
	for _, kind := range allKinds {
		s := New(kind)
		prev := math.Inf(-1)

		for x := -8.0; x <= 8.0; x += 0.001 {
			y := s.Apply(x)
			if y < prev {
				t.Fatalf("%v: not monotonic at x=%v (%v < %v)", kind, x, y, prev)
			}

			prev = y
		}
	}
}

func TestCubicRegions(t *testing.T) {
	for _, knee := range []float64{0, 0.25, 0.5, 0.8} {
		if got := Cubic(knee/2, knee); got != knee/2 {
			t.Fatalf("knee %v: linear region f(%v) = %v", knee, knee/2, got)
		}

		upper := 3 - 2*knee
		for _, x := range []float64{upper, upper + 0.1, 100} {
			if got := Cubic(x, knee); got != 1 {
				t.Fatalf("knee %v: limit region f(%v) = %v, want 1", knee, x, got)
			}
		}
	}
}

func TestCubicContinuityAtBreakpoints(t *testing.T) {
	const h = 1e-7

	for _, knee := range []float64{0.25, 0.5, 0.8} {
		for _, bp := range []float64{knee, 3 - 2*knee} {
			left, right := Cubic(bp-h, knee), Cubic(bp+h, knee)
			if math.Abs(right-left) > 1e-6 {
				t.Fatalf("knee %v: value jump at %v: %v vs %v", knee, bp, left, right)
			}

			dLeft := (Cubic(bp, knee) - Cubic(bp-h, knee)) / h
			dRight := (Cubic(bp+h, knee) - Cubic(bp, knee)) / h

			if math.Abs(dRight-dLeft) > 1e-4 {
				t.Fatalf("knee %v: slope jump at %v: %v vs %v", knee, bp, dLeft, dRight)
			}
		}
	}
}

func TestCubicBounded(t *testing.T) {
	sweep(func(x float64) {
		if y := Cubic(x, DefaultKnee); math.Abs(y) > 1 {
			t.Fatalf("|f(%v)| = %v > 1", x, y)
		}
	})
}

func TestArctanShapes(t *testing.T) {
	k := DefaultArctanK

	for _, x := range []float64{0, 0.3, 1, 5} {
		want := x - k*math.Atan(x)
		if got := Arctan(x, k); got != want {
			t.Fatalf("Arctan(%v) = %v, want %v", x, got, want)
		}

		if got := ArctanAsymmetric(x, k); got != want {
			t.Fatalf("ArctanAsymmetric(%v) = %v, want %v", x, got, want)
		}
	}

	if got, want := ArctanAsymmetric(-2, k), -k*math.Atan(2); got != want {
		t.Fatalf("ArctanAsymmetric(-2) = %v, want %v", got, want)
	}

	// The negative leg saturates at -k*pi/2 while the positive leg keeps growing.
	if got := ArctanAsymmetric(-1e9, k); got < -k*math.Pi/2-1e-9 {
		t.Fatalf("negative leg below saturation: %v", got)
	}

	if ArctanAsymmetric(-3, k) == -ArctanAsymmetric(3, k) {
		t.Fatal("asymmetric shape should not be odd")
	}
}

func TestTanhBounded(t *testing.T) {
	sweep(func(x float64) {
		if y := New(KindTanh).Apply(x); math.Abs(y) > 1 {
			t.Fatalf("|tanh(%v)| = %v > 1", x, y)
		}
	})
}

func TestDriveScalesInput(t *testing.T) {
	s := New(KindCubic)
	s.Drive = 4

	if got, want := s.Apply(0.1), Cubic(0.4, DefaultKnee); got != want {
		t.Fatalf("Apply(0.1) = %v, want %v", got, want)
	}
}

func TestProcessBlockMatchesApply(t *testing.T) {
	for _, kind := range allKinds {
		s := New(kind)
		s.Drive = 2.5

		buf := make([]float64, 64)
		for i := range buf {
			buf[i] = math.Sin(float64(i)*0.3) * 1.7
		}

		want := make([]float64, len(buf))
		for i, x := range buf {
			want[i] = s.Apply(x)
		}

		s.ProcessBlock(buf)

		for i := range buf {
			if buf[i] != want[i] {
				t.Fatalf("%v: sample %d = %v, want %v", kind, i, buf[i], want[i])
			}
		}
	}
}

func TestSanitized(t *testing.T) {
	s := Shaper{Kind: Kind(42), Drive: math.NaN(), K: 3, Knee: -1}.Sanitized()

	if s.Kind != KindCubic || s.Drive != 1 || s.K != maxArctanK || s.Knee != 0 {
		t.Fatalf("Sanitized() = %#v", s)
	}
}

func TestParseKind(t *testing.T) {
	for _, kind := range allKinds {
		got, err := ParseKind(" " + kind.String() + " ")
		if err != nil {
			t.Fatalf("ParseKind(%q) error = %v", kind.String(), err)
		}

		if got != kind {
			t.Fatalf("ParseKind(%q) = %v, want %v", kind.String(), got, kind)
		}
	}

	if _, err := ParseKind("fuzz"); err == nil {
		t.Fatal("expected error for unknown kind")
	}

	if Kind(99).String() != "Kind(99)" {
		t.Fatalf("unexpected name for unknown kind: %s", Kind(99))
	}
}

func BenchmarkShaperProcessBlock(b *testing.B) {
	buf := make([]float64, 512)
	for i := range buf {
		buf[i] = math.Sin(float64(i) * 0.05)
	}

	for _, kind := range allKinds {
		s := New(kind)

		b.Run(kind.String(), func(b *testing.B) {
			b.ReportAllocs()

			for b.Loop() {
				s.ProcessBlock(buf)
			}
		})
	}
}
