// Package grid provides axis generation and small 2D matrix helpers for
// resampling measurement data onto regular plotting grids.
package grid

import "errors"

var (
	// ErrEmptyMatrix indicates a matrix with no rows or no columns.
	ErrEmptyMatrix = errors.New("grid: empty matrix")
	// ErrRaggedMatrix indicates rows of unequal length.
	ErrRaggedMatrix = errors.New("grid: ragged matrix")
)

// Linspace returns n evenly spaced values from start to stop inclusive.
// start > stop yields a descending axis. n <= 0 returns nil; n == 1
// returns [start].
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}

	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	// Pin the endpoint to avoid accumulated rounding drift.
	out[n-1] = stop

	return out
}

// Transpose returns the transpose of m. Rows must have equal length.
func Transpose(m [][]float64) ([][]float64, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return nil, ErrEmptyMatrix
	}

	cols := len(m[0])
	for _, row := range m[1:] {
		if len(row) != cols {
			return nil, ErrRaggedMatrix
		}
	}

	out := make([][]float64, cols)
	for j := range out {
		out[j] = make([]float64, len(m))
		for i := range m {
			out[j][i] = m[i][j]
		}
	}

	return out, nil
}

// Meshgrid expands two axes into coordinate matrices of shape
// (len(y), len(x)), with xs varying along columns and ys along rows.
func Meshgrid(x, y []float64) (xs, ys [][]float64) {
	xs = make([][]float64, len(y))
	ys = make([][]float64, len(y))

	for i := range y {
		xs[i] = make([]float64, len(x))
		copy(xs[i], x)

		ys[i] = make([]float64, len(x))
		for j := range ys[i] {
			ys[i][j] = y[i]
		}
	}

	return xs, ys
}

// ClampNegatives zeroes every negative element of x in place.
func ClampNegatives(x []float64) {
	for i, v := range x {
		if v < 0 {
			x[i] = 0
		}
	}
}

// MinMax returns the smallest and largest values of x.
// It panics on an empty slice.
func MinMax(x []float64) (min, max float64) {
	min, max = x[0], x[0]
	for _, v := range x[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	return min, max
}
