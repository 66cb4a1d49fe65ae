package savgol

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrWindowEven indicates an even window length.
	ErrWindowEven = errors.New("savgol: window length must be odd")
	// ErrWindowOrder indicates a polynomial order not below the window length.
	ErrWindowOrder = errors.New("savgol: polynomial order must be less than window length")
	// ErrShortSignal indicates fewer samples than one window.
	ErrShortSignal = errors.New("savgol: signal shorter than window")
	// ErrSingular indicates an ill-conditioned design (should not occur for
	// valid window/order combinations).
	ErrSingular = errors.New("savgol: singular normal equations")
)

// Filter smooths data with a Savitzky-Golay filter of the given window
// length and polynomial order. It returns a new slice of the same length.
func Filter(data []float64, window, order int) ([]float64, error) {
	if window < 1 || window%2 == 0 {
		return nil, ErrWindowEven
	}
	if order < 0 || order >= window {
		return nil, ErrWindowOrder
	}
	if len(data) < window {
		return nil, ErrShortSignal
	}

	m := window / 2
	n := len(data)
	out := make([]float64, n)

	center, err := Weights(window, order, 0)
	if err != nil {
		return nil, err
	}

	for i := m; i < n-m; i++ {
		out[i] = vecmath.DotProduct(center, data[i-m:i+m+1])
	}

	// Edges: fit the first/last full window, evaluate off center.
	for i := 0; i < m; i++ {
		w, err := Weights(window, order, i-m)
		if err != nil {
			return nil, err
		}
		out[i] = vecmath.DotProduct(w, data[:window])
	}

	for i := n - m; i < n; i++ {
		w, err := Weights(window, order, i-(n-1-m))
		if err != nil {
			return nil, err
		}
		out[i] = vecmath.DotProduct(w, data[n-window:])
	}

	return out, nil
}

// Weights returns the convolution weights that evaluate the window's
// least-squares polynomial fit at integer offset t from the window
// center. t = 0 gives the classic smoothing coefficients; |t| up to
// window/2 evaluates toward the window edges.
func Weights(window, order, t int) ([]float64, error) {
	if window < 1 || window%2 == 0 {
		return nil, ErrWindowEven
	}
	if order < 0 || order >= window {
		return nil, ErrWindowOrder
	}

	m := window / 2
	size := order + 1

	// Normal matrix N[c][d] = sum_r (r-m)^(c+d).
	moments := make([]float64, 2*order+1)
	for r := 0; r < window; r++ {
		x := float64(r - m)
		p := 1.0
		for k := range moments {
			moments[k] += p
			p *= x
		}
	}

	normal := make([][]float64, size)
	for c := range normal {
		normal[c] = make([]float64, size)
		for d := range normal[c] {
			normal[c][d] = moments[c+d]
		}
	}

	inv, err := invert(normal)
	if err != nil {
		return nil, err
	}

	// Row vector v[c] = t^c applied through the inverse.
	v := make([]float64, size)
	p := 1.0
	for c := range v {
		v[c] = p
		p *= float64(t)
	}

	coeffs := make([]float64, size)
	for d := 0; d < size; d++ {
		for c := 0; c < size; c++ {
			coeffs[d] += v[c] * inv[c][d]
		}
	}

	weights := make([]float64, window)
	for r := 0; r < window; r++ {
		x := float64(r - m)
		p := 1.0
		for d := 0; d < size; d++ {
			weights[r] += coeffs[d] * p
			p *= x
		}
	}

	return weights, nil
}

// invert performs in-place Gauss-Jordan inversion with partial pivoting.
// a is destroyed.
func invert(a [][]float64) ([][]float64, error) {
	n := len(a)

	inv := make([][]float64, n)
	for i := range inv {
		inv[i] = make([]float64, n)
		inv[i][i] = 1
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if a[pivot][col] == 0 {
			return nil, ErrSingular
		}

		a[col], a[pivot] = a[pivot], a[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		scale := a[col][col]
		for j := 0; j < n; j++ {
			a[col][j] /= scale
			inv[col][j] /= scale
		}

		for r := 0; r < n; r++ {
			if r == col || a[r][col] == 0 {
				continue
			}
			f := a[r][col]
			for j := 0; j < n; j++ {
				a[r][j] -= f * a[col][j]
				inv[r][j] -= f * inv[col][j]
			}
		}
	}

	return inv, nil
}
