// Command vfswv extracts a variable-frequency SWV response surface from a
// directory of measurement exports and renders it.
//
// Usage:
//
//	vfswv -dir DATA [flags]
//
// The files in DATA are matched with the -freqs (or -steps) values in
// lexicographic name order: the first file pairs with the first frequency.
//
// Examples:
//
//	vfswv -dir ./CuO_pristine -steps 0.4,0.6,0.8,1.0 -out cuo -plot 2d
//	vfswv -dir ./CoPc -freqs 1250,833,625 -dlc -plot 3d -out copc_surface
//	vfswv -dir ./CoPc -freqs 1250,833,625 -xlsx copc.xlsx
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-swv/dsp/grid"
	"github.com/cwbudde/algo-swv/export"
	"github.com/cwbudde/algo-swv/render"
	"github.com/cwbudde/algo-swv/swv/extract"
)

func main() {
	dir := flag.String("dir", "", "directory with per-frequency .txt exports (required)")
	freqs := flag.String("freqs", "", "comma-separated experimental frequencies in Hz")
	steps := flag.String("steps", "", "comma-separated step delays in ms (frequency = 500/step)")
	area := flag.Float64("area", 1.0, "electrode area in cm²")
	dlc := flag.Bool("dlc", false, "apply double-layer capacitance baseline correction")
	eMax := flag.Float64("emax", 0.8, "highest plotting potential, V vs NHE")
	eMin := flag.Float64("emin", -1.0, "lowest plotting potential, V vs NHE")
	eSteps := flag.Int("esteps", 100, "plotting potential axis length")
	lfMax := flag.Float64("lfmax", math.NaN(), "highest plotting log10(frequency)")
	lfMin := flag.Float64("lfmin", math.NaN(), "lowest plotting log10(frequency)")
	lfSteps := flag.Int("lfsteps", 100, "plotting log-frequency axis length")
	out := flag.String("out", "", "output image base name (.png appended); empty renders nothing")
	plot := flag.String("plot", "2d", "plot kind: 2d, 3d or curves")
	xlsx := flag.String("xlsx", "", "also write the grid as a spreadsheet to this path")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vfswv -dir DATA [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Extracts and plots a VF-SWV response surface.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "error: -dir is required")
		flag.Usage()
		os.Exit(2)
	}

	frequencies, err := parseFrequencies(*freqs, *steps)
	if err != nil {
		fatal(err)
	}

	lo, hi := *lfMin, *lfMax
	if math.IsNaN(lo) || math.IsNaN(hi) {
		// Default to the span of the experimental frequencies.
		fLo, fHi := grid.MinMax(frequencies)
		if math.IsNaN(lo) {
			lo = math.Log10(fLo)
		}
		if math.IsNaN(hi) {
			hi = math.Log10(fHi)
		}
	}

	p := extract.Params{
		Dir:           *dir,
		Frequencies:   frequencies,
		PotentialAxis: grid.Linspace(*eMax, *eMin, *eSteps),
		LogFreqAxis:   grid.Linspace(hi, lo, *lfSteps),
		ElectrodeArea: *area,
		DLCCorrection: *dlc,
	}

	g, err := extract.Response(p)
	if err != nil {
		fatal(err)
	}

	printSummary(g, frequencies)

	if *xlsx != "" {
		f, err := os.Create(*xlsx)
		if err != nil {
			fatal(err)
		}
		if err := export.XLSX(f, g); err != nil {
			f.Close()
			fatal(err)
		}
		if err := f.Close(); err != nil {
			fatal(err)
		}
	}

	if *out == "" {
		return
	}

	switch strings.ToLower(*plot) {
	case "2d":
		st := render.DefaultStyle()
		st.DPI = render.ExportDPI
		img, err := render.ContourMap(g, st)
		if err != nil {
			fatal(err)
		}
		if err := render.SavePNG(img, *out); err != nil {
			fatal(err)
		}
	case "3d":
		st := render.SurfaceStyle()
		st.DPI = render.ExportDPI
		img, err := render.Surface(g, st)
		if err != nil {
			fatal(err)
		}
		if err := render.SavePNG(img, *out); err != nil {
			fatal(err)
		}
	case "curves":
		f, err := os.Create(*out + ".png")
		if err != nil {
			fatal(err)
		}
		if err := render.CurvePlot(f, g, 8); err != nil {
			f.Close()
			fatal(err)
		}
		if err := f.Close(); err != nil {
			fatal(err)
		}
	default:
		fatal(fmt.Errorf("unknown -plot kind %q", *plot))
	}
}

// parseFrequencies resolves the -freqs/-steps flags into a frequency array.
// Step delays are in ms; a full square-wave period is two steps, so
// f = 500/step.
func parseFrequencies(freqs, steps string) ([]float64, error) {
	switch {
	case freqs != "" && steps != "":
		return nil, fmt.Errorf("use either -freqs or -steps, not both")
	case freqs != "":
		return parseFloats(freqs)
	case steps != "":
		stepTimes, err := parseFloats(steps)
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(stepTimes))
		for i, s := range stepTimes {
			if s <= 0 {
				return nil, fmt.Errorf("step delay must be positive, got %g", s)
			}
			out[i] = 500 / s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("one of -freqs or -steps is required")
	}
}

func parseFloats(list string) ([]float64, error) {
	parts := strings.Split(list, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		out = append(out, v)
	}

	return out, nil
}

func printSummary(g *extract.Grid, frequencies []float64) {
	fLo, fHi := grid.MinMax(frequencies)
	eLo, eHi := grid.MinMax(g.Potentials)

	var zLo, zHi float64
	zLo, zHi = g.Z[0][0], g.Z[0][0]
	for _, row := range g.Z {
		lo, hi := grid.MinMax(row)
		zLo = math.Min(zLo, lo)
		zHi = math.Max(zHi, hi)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Files\tFrequency span [Hz]\tPotential span [V]\tGrid\tResponse range\n")
	fmt.Fprintf(tw, "%d\t%.3g - %.3g\t%.3g - %.3g\t%dx%d\t%.4g - %.4g\n",
		len(frequencies), fLo, fHi, eLo, eHi, len(g.Potentials), len(g.LogFreqs), zLo, zHi)
	tw.Flush()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
