package extract

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sort"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-swv/dsp/grid"
	"github.com/cwbudde/algo-swv/dsp/interp"
	"github.com/cwbudde/algo-swv/dsp/savgol"
	"github.com/cwbudde/algo-swv/swv/trace"
)

// ReferenceOffset converts the instrument's Ag/AgCl potential scale to the
// normal hydrogen electrode scale.
const ReferenceOffset = 0.197

// Smoothing parameters applied to every differential curve.
const (
	SmoothingWindow = 17
	SmoothingOrder  = 3
)

var (
	// ErrNoFiles indicates a directory without measurement exports.
	ErrNoFiles = errors.New("extract: no .txt files in directory")
	// ErrFrequencyCount indicates a file/frequency count mismatch.
	ErrFrequencyCount = errors.New("extract: frequency count does not match file count")
	// ErrOddSamples indicates an unbalanced forward/backward sample split.
	ErrOddSamples = errors.New("extract: odd sample count, unbalanced forward/backward sweep")
	// ErrElectrodeArea indicates a non-positive electrode area.
	ErrElectrodeArea = errors.New("extract: electrode area must be positive")
	// ErrBadFrequency indicates a non-positive experimental frequency.
	ErrBadFrequency = errors.New("extract: experimental frequencies must be positive")
	// ErrEmptyAxis indicates an empty plotting axis.
	ErrEmptyAxis = errors.New("extract: empty plotting axis")
)

// Params configures one extraction run.
type Params struct {
	// Dir holds the per-frequency .txt exports. Files are matched with
	// Frequencies positionally in lexicographic name order.
	Dir string
	// Frequencies are the experimental SWV frequencies in Hz.
	Frequencies []float64
	// PotentialAxis is the target potential axis in V vs NHE. It must lie
	// inside the measured potential span of every file.
	PotentialAxis []float64
	// LogFreqAxis is the target log10(frequency) axis. It must lie inside
	// the span of log10(Frequencies).
	LogFreqAxis []float64
	// ElectrodeArea in cm². Currents are divided by it.
	ElectrodeArea float64
	// DLCCorrection subtracts each curve's minimum, removing the
	// double-layer capacitance baseline.
	DLCCorrection bool
}

// Grid is the extracted response surface.
type Grid struct {
	// Potentials is the potential axis (V vs NHE), copied from Params.
	Potentials []float64
	// LogFreqs is the log10(frequency) axis, copied from Params.
	LogFreqs []float64
	// Z[i][j] holds the frequency-normalized differential current density
	// at Potentials[i], LogFreqs[j]. All values are >= 0.
	Z [][]float64
}

// Response extracts the frequency-normalized response grid for a
// directory of measurement exports.
func Response(p Params) (*Grid, error) {
	if p.ElectrodeArea <= 0 {
		return nil, ErrElectrodeArea
	}
	if len(p.PotentialAxis) == 0 || len(p.LogFreqAxis) == 0 {
		return nil, ErrEmptyAxis
	}
	for _, f := range p.Frequencies {
		if f <= 0 {
			return nil, fmt.Errorf("%w: %g", ErrBadFrequency, f)
		}
	}

	files, err := filepath.Glob(filepath.Join(p.Dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, p.Dir)
	}
	sort.Strings(files)

	if len(files) != len(p.Frequencies) {
		return nil, fmt.Errorf("%w: %d files, %d frequencies",
			ErrFrequencyCount, len(files), len(p.Frequencies))
	}

	curves := make([][]float64, len(files))
	for i, file := range files {
		curve, err := extractCurve(file, p.Frequencies[i], p)
		if err != nil {
			return nil, err
		}
		curves[i] = curve
	}

	logFreqs := make([]float64, len(p.Frequencies))
	for i, f := range p.Frequencies {
		logFreqs[i] = math.Log10(f)
	}

	// Resample each constant-potential row across log10(frequency).
	byPotential, err := grid.Transpose(curves)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	for i, row := range byPotential {
		spline, err := interp.NewSpline(logFreqs, row)
		if err != nil {
			return nil, fmt.Errorf("extract: frequency axis: %w", err)
		}

		resampled, err := spline.EvalAll(p.LogFreqAxis)
		if err != nil {
			return nil, fmt.Errorf("extract: frequency axis: %w", err)
		}
		// The cubic can undershoot between knots; the response is
		// one-sided, so clamp once more.
		grid.ClampNegatives(resampled)
		byPotential[i] = resampled
	}

	z := byPotential

	g := &Grid{
		Potentials: append([]float64(nil), p.PotentialAxis...),
		LogFreqs:   append([]float64(nil), p.LogFreqAxis...),
		Z:          z,
	}

	return g, nil
}

// extractCurve turns one measurement file into a smoothed differential
// current-density curve sampled on the target potential axis.
func extractCurve(file string, frequency float64, p Params) ([]float64, error) {
	tr, err := trace.ParseFile(file)
	if err != nil {
		return nil, err
	}

	if tr.Len()%2 != 0 {
		return nil, fmt.Errorf("%w: %d samples (%s)", ErrOddSamples, tr.Len(), file)
	}

	// Current density and potential vs NHE.
	density := make([]float64, tr.Len())
	vecmath.ScaleBlock(density, tr.Current, 1/p.ElectrodeArea)

	potential := make([]float64, tr.Len())
	for i, e := range tr.Potential {
		potential[i] = e + ReferenceOffset
	}

	// Differential of the interleaved forward/backward samples, scaled to
	// charge density per frequency. The response of interest is one-sided;
	// negative excursions are measurement noise.
	half := tr.Len() / 2
	dj := make([]float64, half)
	for i := range dj {
		dj[i] = -(density[2*i] - density[2*i+1]) * 1000 / frequency
	}
	grid.ClampNegatives(dj)

	smoothed, err := savgol.Filter(dj, SmoothingWindow, SmoothingOrder)
	if err != nil {
		return nil, fmt.Errorf("extract: %w (%s)", err, file)
	}

	// The support axis is rebuilt as a pure linear span between the
	// observed potential extremes rather than from the recorded samples,
	// assuming a dense monotonic sweep. Deriving it from the recorded
	// column instead would change numerical output.
	minE, maxE := grid.MinMax(potential)
	support := grid.Linspace(maxE, minE, len(smoothed))

	spline, err := interp.NewSpline(support, smoothed)
	if err != nil {
		return nil, fmt.Errorf("extract: %w (%s)", err, file)
	}

	curve, err := spline.EvalAll(p.PotentialAxis)
	if err != nil {
		return nil, fmt.Errorf("extract: potential axis: %w (%s)", err, file)
	}
	grid.ClampNegatives(curve)

	if p.DLCCorrection {
		minJ, _ := grid.MinMax(curve)
		for i := range curve {
			curve[i] -= minJ
		}
	}

	return curve, nil
}
