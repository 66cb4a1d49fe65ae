package interp

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrKnotCount indicates fewer than two knots.
	ErrKnotCount = errors.New("interp: need at least two knots")
	// ErrLengthMismatch indicates mismatched knot coordinate lengths.
	ErrLengthMismatch = errors.New("interp: xs and ys length mismatch")
	// ErrNotMonotonic indicates a support axis that is not strictly monotonic.
	ErrNotMonotonic = errors.New("interp: support axis not strictly monotonic")
	// ErrOutOfDomain indicates an evaluation point outside the knot span.
	ErrOutOfDomain = errors.New("interp: evaluation point outside knot span")
)

// Spline is a natural cubic spline through a set of knots.
type Spline struct {
	xs []float64 // ascending
	ys []float64
	m  []float64 // second derivatives at the knots
}

// NewSpline constructs a natural cubic spline through (xs[i], ys[i]).
// The support axis must be strictly monotonic; it may run in either
// direction. Both slices are copied.
func NewSpline(xs, ys []float64) (*Spline, error) {
	if len(xs) != len(ys) {
		return nil, ErrLengthMismatch
	}

	n := len(xs)
	if n < 2 {
		return nil, ErrKnotCount
	}

	ascending := xs[1] > xs[0]
	for i := 1; i < n; i++ {
		if ascending && xs[i] <= xs[i-1] {
			return nil, ErrNotMonotonic
		}
		if !ascending && xs[i] >= xs[i-1] {
			return nil, ErrNotMonotonic
		}
	}

	s := &Spline{
		xs: make([]float64, n),
		ys: make([]float64, n),
		m:  make([]float64, n),
	}

	if ascending {
		copy(s.xs, xs)
		copy(s.ys, ys)
	} else {
		for i := range xs {
			s.xs[n-1-i] = xs[i]
			s.ys[n-1-i] = ys[i]
		}
	}

	s.solveMoments()

	return s, nil
}

// solveMoments fills s.m with knot second derivatives using the Thomas
// algorithm on the natural-spline tridiagonal system. The boundary
// moments stay zero.
func (s *Spline) solveMoments() {
	n := len(s.xs)
	if n < 3 {
		return
	}

	// Interior unknowns m[1..n-2].
	sub := make([]float64, n-2)
	diag := make([]float64, n-2)
	sup := make([]float64, n-2)
	rhs := make([]float64, n-2)

	for i := 1; i <= n-2; i++ {
		h0 := s.xs[i] - s.xs[i-1]
		h1 := s.xs[i+1] - s.xs[i]

		sub[i-1] = h0
		diag[i-1] = 2 * (h0 + h1)
		sup[i-1] = h1
		rhs[i-1] = 6 * ((s.ys[i+1]-s.ys[i])/h1 - (s.ys[i]-s.ys[i-1])/h0)
	}

	for i := 1; i < n-2; i++ {
		w := sub[i] / diag[i-1]
		diag[i] -= w * sup[i-1]
		rhs[i] -= w * rhs[i-1]
	}

	s.m[n-2] = rhs[n-3] / diag[n-3]
	for i := n - 4; i >= 0; i-- {
		s.m[i+1] = (rhs[i] - sup[i]*s.m[i+2]) / diag[i]
	}
}

// Min returns the lower bound of the knot span.
func (s *Spline) Min() float64 { return s.xs[0] }

// Max returns the upper bound of the knot span.
func (s *Spline) Max() float64 { return s.xs[len(s.xs)-1] }

// Eval evaluates the spline at x. x must lie inside [Min, Max].
func (s *Spline) Eval(x float64) (float64, error) {
	n := len(s.xs)
	if x < s.xs[0] || x > s.xs[n-1] {
		return 0, fmt.Errorf("%w: %g outside [%g, %g]", ErrOutOfDomain, x, s.xs[0], s.xs[n-1])
	}

	// Segment index i such that xs[i] <= x <= xs[i+1].
	i := sort.SearchFloat64s(s.xs, x)
	if i > 0 {
		i--
	}
	if i > n-2 {
		i = n - 2
	}

	h := s.xs[i+1] - s.xs[i]
	a := (s.xs[i+1] - x) / h
	b := (x - s.xs[i]) / h

	return a*s.ys[i] + b*s.ys[i+1] +
		((a*a*a-a)*s.m[i]+(b*b*b-b)*s.m[i+1])*h*h/6, nil
}

// EvalAll evaluates the spline at each point of xs. An optional output
// slice can be supplied to avoid an allocation; it must match len(xs).
func (s *Spline) EvalAll(xs []float64, out ...[]float64) ([]float64, error) {
	var dst []float64
	if len(out) > 0 && len(out[0]) == len(xs) {
		dst = out[0]
	} else {
		dst = make([]float64, len(xs))
	}

	for i, x := range xs {
		y, err := s.Eval(x)
		if err != nil {
			return nil, err
		}
		dst[i] = y
	}

	return dst, nil
}
