package interp

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-10

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNewSplineErrors(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		ys   []float64
		want error
	}{
		{"mismatch", []float64{1, 2}, []float64{1}, ErrLengthMismatch},
		{"too few", []float64{1}, []float64{1}, ErrKnotCount},
		{"duplicate", []float64{1, 1, 2}, []float64{0, 0, 0}, ErrNotMonotonic},
		{"direction flip", []float64{1, 2, 1.5}, []float64{0, 0, 0}, ErrNotMonotonic},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSpline(tc.xs, tc.ys); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestSplineReproducesLinearData(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{1, 3, 5, 7, 9} // y = 2x + 1

	s, err := NewSpline(xs, ys)
	if err != nil {
		t.Fatal(err)
	}

	for _, x := range []float64{0, 0.3, 1.7, 2.5, 4} {
		got, err := s.Eval(x)
		if err != nil {
			t.Fatal(err)
		}
		if !almostEqual(got, 2*x+1, eps) {
			t.Errorf("Eval(%v): got %v, want %v", x, got, 2*x+1)
		}
	}
}

func TestSplineDescendingSupport(t *testing.T) {
	// Potential sweeps run from high to low; the spline must accept that.
	xs := []float64{4, 3, 2, 1, 0}
	ys := []float64{9, 7, 5, 3, 1}

	s, err := NewSpline(xs, ys)
	if err != nil {
		t.Fatal(err)
	}

	if s.Min() != 0 || s.Max() != 4 {
		t.Fatalf("span: got [%v, %v], want [0, 4]", s.Min(), s.Max())
	}

	got, err := s.Eval(2.5)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got, 6, eps) {
		t.Errorf("Eval(2.5): got %v, want 6", got)
	}
}

func TestSplinePassesThroughKnots(t *testing.T) {
	xs := make([]float64, 20)
	ys := make([]float64, 20)
	for i := range xs {
		xs[i] = float64(i) * 0.3
		ys[i] = math.Sin(xs[i])
	}

	s, err := NewSpline(xs, ys)
	if err != nil {
		t.Fatal(err)
	}

	for i := range xs {
		got, err := s.Eval(xs[i])
		if err != nil {
			t.Fatal(err)
		}
		if !almostEqual(got, ys[i], eps) {
			t.Errorf("knot %d: got %v, want %v", i, got, ys[i])
		}
	}
}

func TestSplineApproximatesSmoothFunction(t *testing.T) {
	xs := make([]float64, 50)
	ys := make([]float64, 50)
	for i := range xs {
		xs[i] = float64(i) * 0.1
		ys[i] = math.Sin(xs[i])
	}

	s, err := NewSpline(xs, ys)
	if err != nil {
		t.Fatal(err)
	}

	for x := 0.05; x < 4.9; x += 0.1 {
		got, err := s.Eval(x)
		if err != nil {
			t.Fatal(err)
		}
		if !almostEqual(got, math.Sin(x), 1e-4) {
			t.Errorf("Eval(%v): got %v, want %v", x, got, math.Sin(x))
		}
	}
}

func TestSplineOutOfDomain(t *testing.T) {
	s, err := NewSpline([]float64{0, 1, 2}, []float64{0, 1, 4})
	if err != nil {
		t.Fatal(err)
	}

	for _, x := range []float64{-0.001, 2.001, -10, 10} {
		if _, err := s.Eval(x); !errors.Is(err, ErrOutOfDomain) {
			t.Errorf("Eval(%v): got %v, want ErrOutOfDomain", x, err)
		}
	}

	// Exact bounds are inside the domain.
	for _, x := range []float64{0, 2} {
		if _, err := s.Eval(x); err != nil {
			t.Errorf("Eval(%v): unexpected error %v", x, err)
		}
	}
}

func TestEvalAll(t *testing.T) {
	s, err := NewSpline([]float64{0, 1, 2, 3}, []float64{0, 2, 4, 6})
	if err != nil {
		t.Fatal(err)
	}

	xs := []float64{0.5, 1.5, 2.5}
	out := make([]float64, len(xs))
	got, err := s.EvalAll(xs, out)
	if err != nil {
		t.Fatal(err)
	}
	if &got[0] != &out[0] {
		t.Error("EvalAll did not reuse the supplied output slice")
	}

	want := []float64{1, 3, 5}
	for i := range want {
		if !almostEqual(got[i], want[i], eps) {
			t.Errorf("[%d]: got %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := s.EvalAll([]float64{0.5, 99}); !errors.Is(err, ErrOutOfDomain) {
		t.Errorf("out-of-domain batch: got %v, want ErrOutOfDomain", err)
	}
}
