// Package interp provides cubic spline interpolation over an arbitrary
// strictly monotonic support axis.
//
// A [Spline] is built once from knot coordinates and then evaluated at any
// number of points inside the knot span. Evaluation outside the span is an
// error ([ErrOutOfDomain]); the spline never extrapolates.
//
// The support axis may be ascending or descending. Descending axes are
// common in voltammetry, where potential is swept from high to low.
package interp
