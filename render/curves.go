package render

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/cwbudde/algo-swv/swv/extract"
)

// curvePalette cycles through series colors for the per-frequency overlay.
var curvePalette = []drawing.Color{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
}

// CurvePlot writes a PNG line chart overlaying the response curve of each
// log-frequency column against potential. Useful as a quick inspection of
// the extracted data before committing to a full contour or surface
// render. At most maxCurves evenly spaced columns are drawn; maxCurves <= 0
// draws all of them.
func CurvePlot(w io.Writer, g *extract.Grid, maxCurves int) error {
	if err := checkGrid(g); err != nil {
		return err
	}

	cols := downsampleIndices(len(g.LogFreqs), pickCurveCount(len(g.LogFreqs), maxCurves))

	series := make([]chart.Series, 0, len(cols))
	for n, j := range cols {
		ys := make([]float64, len(g.Potentials))
		for i := range g.Z {
			ys[i] = g.Z[i][j]
		}

		col := curvePalette[n%len(curvePalette)]
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("log f = %.2f", g.LogFreqs[j]),
			XValues: g.Potentials,
			YValues: ys,
			Style:   chart.Style{StrokeColor: col, StrokeWidth: 1.5},
		})
	}

	ch := chart.Chart{
		XAxis:  chart.XAxis{Name: "E, V vs NHE"},
		YAxis:  chart.YAxis{Name: "-Δj/f, µC/cm²"},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render: curve plot: %w", err)
	}

	return nil
}

func pickCurveCount(n, maxCurves int) int {
	if maxCurves <= 0 || maxCurves > n {
		return n
	}

	return maxCurves - 1
}
