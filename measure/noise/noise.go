// Package noise quantifies the residual left by the smoothing stage.
//
// The residual (raw minus smoothed) approximates the measurement noise
// removed from a differential SWV curve. Its RMS and spectral shape help
// judge whether the smoothing window suits a data set: a residual
// concentrated at high normalized frequencies is plain noise, while a
// strong low-frequency component means the filter is eating signal.
package noise

import (
	"errors"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

var (
	// ErrLengthMismatch indicates raw/smoothed slices of different length.
	ErrLengthMismatch = errors.New("noise: raw and smoothed length mismatch")
	// ErrEmptySignal indicates empty input.
	ErrEmptySignal = errors.New("noise: empty signal")
)

// Report summarizes the smoothing residual.
type Report struct {
	// RMS of the residual.
	RMS float64
	// Peak absolute residual value.
	Peak float64
	// DominantBin is the index of the strongest non-DC residual spectrum
	// bin; DominantFreq is the same as a fraction of the sampling rate
	// (0..0.5).
	DominantBin  int
	DominantFreq float64
	// Residual holds raw[i] - smoothed[i].
	Residual []float64
}

// Analyze compares a raw curve against its smoothed version.
func Analyze(raw, smoothed []float64) (Report, error) {
	if len(raw) == 0 {
		return Report{}, ErrEmptySignal
	}
	if len(raw) != len(smoothed) {
		return Report{}, ErrLengthMismatch
	}

	residual := make([]float64, len(raw))

	var sumSq, peak float64
	for i := range raw {
		r := raw[i] - smoothed[i]
		residual[i] = r
		sumSq += r * r
		if a := math.Abs(r); a > peak {
			peak = a
		}
	}

	rep := Report{
		RMS:      math.Sqrt(sumSq / float64(len(raw))),
		Peak:     peak,
		Residual: residual,
	}

	bin, frac, err := dominantBin(residual)
	if err != nil {
		return Report{}, err
	}
	rep.DominantBin = bin
	rep.DominantFreq = frac

	return rep, nil
}

// dominantBin locates the strongest non-DC bin of the Hann-windowed
// residual spectrum.
func dominantBin(residual []float64) (int, float64, error) {
	fftSize := nextPowerOf2(len(residual))
	if fftSize < 2 {
		fftSize = 2
	}

	in := make([]complex128, fftSize)
	n := len(residual)
	for i, r := range residual {
		// Hann window.
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		if n == 1 {
			w = 1
		}
		in[i] = complex(r*w, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, 0, err
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return 0, 0, err
	}

	best, bestPow := 1, 0.0
	for i := 1; i <= fftSize/2; i++ {
		p := real(out[i])*real(out[i]) + imag(out[i])*imag(out[i])
		if p > bestPow {
			best, bestPow = i, p
		}
	}

	return best, float64(best) / float64(fftSize), nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
