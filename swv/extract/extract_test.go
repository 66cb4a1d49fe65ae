package extract

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cwbudde/algo-swv/dsp/grid"
	"github.com/cwbudde/algo-swv/dsp/interp"
)

const eps = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// writeTrace writes a synthetic export with pairs of forward/backward
// samples. potential holds the raw (unshifted) sweep, one value per pair.
func writeTrace(t *testing.T, dir, name string, forward, backward, potential []float64) {
	t.Helper()

	if len(forward) != len(backward) || len(forward) != len(potential) {
		t.Fatalf("writeTrace: unbalanced synthetic data")
	}

	content := "mode\t<I>/mA\tEwe/V\n"
	for i := range forward {
		content += fmt.Sprintf("1\t%.9f\t%.9f\n", forward[i], potential[i])
		content += fmt.Sprintf("1\t%.9f\t%.9f\n", backward[i], potential[i])
	}

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// constants builds n repeated values.
func constants(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}

// testParams covers a potential window comfortably inside the synthetic
// sweep (raw 0.3 .. -0.7, shifted 0.497 .. -0.503).
func testParams(dir string, freqs []float64) Params {
	logs := make([]float64, len(freqs))
	for i, f := range freqs {
		logs[i] = math.Log10(f)
	}
	lo, hi := grid.MinMax(logs)

	return Params{
		Dir:           dir,
		Frequencies:   freqs,
		PotentialAxis: grid.Linspace(0.4, -0.4, 21),
		LogFreqAxis:   grid.Linspace(hi, lo, 9),
		ElectrodeArea: 1.0,
	}
}

func sweep(n int) []float64 {
	return grid.Linspace(0.3, -0.7, n)
}

func TestResponseShape(t *testing.T) {
	dir := t.TempDir()
	freqs := []float64{10, 100, 1000}
	for _, name := range []string{"f0.txt", "f1.txt", "f2.txt"} {
		writeTrace(t, dir, name, constants(-2, 50), constants(-1, 50), sweep(50))
	}

	g, err := Response(testParams(dir, freqs))
	if err != nil {
		t.Fatal(err)
	}

	if len(g.Z) != 21 {
		t.Fatalf("rows: got %d, want 21", len(g.Z))
	}
	for i, row := range g.Z {
		if len(row) != 9 {
			t.Fatalf("row %d: got %d columns, want 9", i, len(row))
		}
	}
	if len(g.Potentials) != 21 || len(g.LogFreqs) != 9 {
		t.Fatalf("axes: got %d, %d", len(g.Potentials), len(g.LogFreqs))
	}
}

func TestResponseConstantAnalyticValue(t *testing.T) {
	// forward = c1, backward = c2 everywhere: after differencing,
	// normalization and clamping the whole grid must equal
	// max(0, -1000*(c1-c2)/f). Smoothing and both interpolation passes
	// preserve constants exactly at the experimental frequencies.
	dir := t.TempDir()
	c1, c2 := -2.0, -1.0
	freqs := []float64{10, 100, 1000}
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		writeTrace(t, dir, name, constants(c1, 50), constants(c2, 50), sweep(50))
	}

	p := testParams(dir, freqs)
	// Evaluate exactly at the experimental log-frequencies so the spline
	// returns knot values.
	p.LogFreqAxis = []float64{math.Log10(10), math.Log10(100), math.Log10(1000)}

	g, err := Response(p)
	if err != nil {
		t.Fatal(err)
	}

	for i, row := range g.Z {
		for j, got := range row {
			f := math.Pow(10, g.LogFreqs[j])
			want := math.Max(0, -1000*(c1-c2)/f)
			if !almostEqual(got, want, 1e-6) {
				t.Errorf("Z[%d][%d]: got %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestResponseElectrodeAreaNormalization(t *testing.T) {
	dir := t.TempDir()
	freqs := []float64{10, 100}
	for _, name := range []string{"a.txt", "b.txt"} {
		writeTrace(t, dir, name, constants(-2, 50), constants(-1, 50), sweep(50))
	}

	p := testParams(dir, freqs)
	p.LogFreqAxis = []float64{math.Log10(10), math.Log10(100)}
	p.ElectrodeArea = 2.0

	g, err := Response(p)
	if err != nil {
		t.Fatal(err)
	}

	// Halved density: 1000/(2*f).
	if !almostEqual(g.Z[0][0], 50, 1e-6) {
		t.Errorf("Z[0][0]: got %v, want 50", g.Z[0][0])
	}
	if !almostEqual(g.Z[0][1], 5, 1e-6) {
		t.Errorf("Z[0][1]: got %v, want 5", g.Z[0][1])
	}
}

func TestResponseNonNegative(t *testing.T) {
	// A noisy differential with negative excursions must clamp to zero.
	dir := t.TempDir()
	n := 60
	forward := make([]float64, n)
	backward := make([]float64, n)
	for i := range forward {
		forward[i] = -0.5 + 0.6*math.Sin(float64(i)*0.7)
		backward[i] = -0.4
	}

	freqs := []float64{10, 100, 1000}
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		writeTrace(t, dir, name, forward, backward, sweep(n))
	}

	g, err := Response(testParams(dir, freqs))
	if err != nil {
		t.Fatal(err)
	}

	for i, row := range g.Z {
		for j, v := range row {
			if v < 0 {
				t.Errorf("Z[%d][%d] negative: %v", i, j, v)
			}
		}
	}
}

func TestResponseDLCCorrection(t *testing.T) {
	// With a linear differential each per-file curve is linear in
	// potential, so DLC correction must pull its minimum to exactly zero.
	// Evaluating at the experimental frequencies exposes the per-file
	// curves as grid columns.
	dir := t.TempDir()
	n := 50
	forward := make([]float64, n)
	for i := range forward {
		forward[i] = -1 - 0.01*float64(i)
	}
	backward := constants(-0.5, n)

	freqs := []float64{10, 100}
	for _, name := range []string{"a.txt", "b.txt"} {
		writeTrace(t, dir, name, forward, backward, sweep(n))
	}

	p := testParams(dir, freqs)
	p.LogFreqAxis = []float64{math.Log10(10), math.Log10(100)}
	p.DLCCorrection = true

	g, err := Response(p)
	if err != nil {
		t.Fatal(err)
	}

	for j := range g.LogFreqs {
		min := math.Inf(1)
		for i := range g.Z {
			min = math.Min(min, g.Z[i][j])
		}
		if !almostEqual(min, 0, eps) {
			t.Errorf("column %d minimum: got %v, want 0", j, min)
		}
	}
}

func TestResponseIdempotent(t *testing.T) {
	dir := t.TempDir()
	n := 50
	forward := make([]float64, n)
	for i := range forward {
		forward[i] = -1 - 0.3*math.Sin(float64(i)*0.4)
	}
	backward := constants(-0.5, n)

	freqs := []float64{10, 100, 1000}
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		writeTrace(t, dir, name, forward, backward, sweep(n))
	}

	p := testParams(dir, freqs)
	first, err := Response(p)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Response(p)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different grids")
	}
}

func TestResponseFileFrequencyPairing(t *testing.T) {
	// Files pair with frequencies in lexicographic name order regardless
	// of creation order: a.txt takes the first frequency even though
	// b.txt was written first.
	dir := t.TempDir()
	fA, fB := 10.0, 1000.0

	writeTrace(t, dir, "b.txt", constants(-2, 50), constants(-1, 50), sweep(50))
	writeTrace(t, dir, "a.txt", constants(-2, 50), constants(-1, 50), sweep(50))

	p := testParams(dir, []float64{fA, fB})
	p.LogFreqAxis = []float64{math.Log10(fA), math.Log10(fB)}

	g, err := Response(p)
	if err != nil {
		t.Fatal(err)
	}

	// Identical file contents, so the value depends only on which
	// frequency divided it: column 0 must use fA, column 1 fB.
	if !almostEqual(g.Z[0][0], 1000/fA, 1e-6) {
		t.Errorf("column 0: got %v, want %v", g.Z[0][0], 1000/fA)
	}
	if !almostEqual(g.Z[0][1], 1000/fB, 1e-6) {
		t.Errorf("column 1: got %v, want %v", g.Z[0][1], 1000/fB)
	}
}

func TestResponsePotentialAxisOutOfSpan(t *testing.T) {
	dir := t.TempDir()
	freqs := []float64{10, 100}
	for _, name := range []string{"a.txt", "b.txt"} {
		writeTrace(t, dir, name, constants(-2, 50), constants(-1, 50), sweep(50))
	}

	p := testParams(dir, freqs)
	// Shifted span is [-0.503, 0.497]; exceed the top slightly.
	p.PotentialAxis = grid.Linspace(0.51, -0.4, 10)

	if _, err := Response(p); !errors.Is(err, interp.ErrOutOfDomain) {
		t.Fatalf("got %v, want ErrOutOfDomain", err)
	}
}

func TestResponseLogFreqAxisOutOfSpan(t *testing.T) {
	dir := t.TempDir()
	freqs := []float64{10, 100, 1000}
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		writeTrace(t, dir, name, constants(-2, 50), constants(-1, 50), sweep(50))
	}

	p := testParams(dir, freqs)
	p.LogFreqAxis = grid.Linspace(3.1, 1, 10) // above log10(1000)

	if _, err := Response(p); !errors.Is(err, interp.ErrOutOfDomain) {
		t.Fatalf("got %v, want ErrOutOfDomain", err)
	}
}

func TestResponsePreconditionErrors(t *testing.T) {
	dir := t.TempDir()
	writeTrace(t, dir, "a.txt", constants(-2, 50), constants(-1, 50), sweep(50))

	base := testParams(dir, []float64{10})

	t.Run("frequency count mismatch", func(t *testing.T) {
		p := base
		p.Frequencies = []float64{10, 100}
		if _, err := Response(p); !errors.Is(err, ErrFrequencyCount) {
			t.Fatalf("got %v, want ErrFrequencyCount", err)
		}
	})

	t.Run("bad area", func(t *testing.T) {
		p := base
		p.ElectrodeArea = 0
		if _, err := Response(p); !errors.Is(err, ErrElectrodeArea) {
			t.Fatalf("got %v, want ErrElectrodeArea", err)
		}
	})

	t.Run("bad frequency", func(t *testing.T) {
		p := base
		p.Frequencies = []float64{-5}
		if _, err := Response(p); !errors.Is(err, ErrBadFrequency) {
			t.Fatalf("got %v, want ErrBadFrequency", err)
		}
	})

	t.Run("empty axis", func(t *testing.T) {
		p := base
		p.PotentialAxis = nil
		if _, err := Response(p); !errors.Is(err, ErrEmptyAxis) {
			t.Fatalf("got %v, want ErrEmptyAxis", err)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		p := base
		p.Dir = t.TempDir()
		if _, err := Response(p); !errors.Is(err, ErrNoFiles) {
			t.Fatalf("got %v, want ErrNoFiles", err)
		}
	})
}

func TestResponseOddSampleCount(t *testing.T) {
	dir := t.TempDir()

	content := "mode\t<I>/mA\tEwe/V\n"
	for i := 0; i < 41; i++ {
		content += fmt.Sprintf("1\t%.4f\t%.4f\n", -1.0, 0.3-0.01*float64(i))
	}
	if err := os.WriteFile(filepath.Join(dir, "odd.txt"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p := testParams(dir, []float64{10})
	if _, err := Response(p); !errors.Is(err, ErrOddSamples) {
		t.Fatalf("got %v, want ErrOddSamples", err)
	}
}

func TestResponseTooFewSamplesForSmoothing(t *testing.T) {
	// 10 pairs yield a 10-sample differential, below the 17-wide window.
	dir := t.TempDir()
	writeTrace(t, dir, "a.txt", constants(-2, 10), constants(-1, 10), sweep(10))

	p := testParams(dir, []float64{10})
	if _, err := Response(p); err == nil {
		t.Fatal("expected smoothing window error for short trace")
	}
}
