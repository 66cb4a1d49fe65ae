package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/cwbudde/algo-swv/dsp/grid"
	"github.com/cwbudde/algo-swv/swv/extract"
)

var (
	// ErrGridShape indicates a response grid whose axes and values disagree.
	ErrGridShape = errors.New("render: grid shape mismatch")
	// ErrDegenerateAxis indicates an axis without extent.
	ErrDegenerateAxis = errors.New("render: axis needs at least two distinct values")
)

// ContourMap renders the response grid as a filled contour map with
// st.Levels quantized color levels, axis ticks and a colorbar.
// Log-frequency runs along the horizontal axis and potential along the
// vertical axis.
func ContourMap(g *extract.Grid, st Style) (image.Image, error) {
	if err := checkGrid(g); err != nil {
		return nil, err
	}

	w, h := st.pixelSize()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// Plot area with room for the axis labels and the colorbar.
	left := w * 12 / 100
	right := w * 80 / 100
	top := h * 6 / 100
	bottom := h * 88 / 100

	minZ, maxZ := gridMinMax(g.Z)
	span := maxZ - minZ
	if span == 0 {
		span = 1
	}

	levels := st.Levels
	if levels < 1 {
		levels = 1
	}

	lfMin, lfMax := grid.MinMax(g.LogFreqs)
	eMin, eMax := grid.MinMax(g.Potentials)
	if lfMin == lfMax || eMin == eMax {
		return nil, ErrDegenerateAxis
	}

	for py := top; py < bottom; py++ {
		// Vertical axis: highest potential at the top.
		e := eMax - (eMax-eMin)*float64(py-top)/float64(bottom-top-1)
		for px := left; px < right; px++ {
			lf := lfMin + (lfMax-lfMin)*float64(px-left)/float64(right-left-1)

			v := sampleBilinear(g, e, lf)
			t := (v - minZ) / span
			// Quantize to the contour level grid.
			t = float64(int(t*float64(levels))) / float64(levels)
			img.SetRGBA(px, py, st.Colormap(t))
		}
	}

	drawFrame(img, left, top, right, bottom)
	drawXTicks(img, st, left, right, bottom, lfMin, lfMax)
	drawYTicks(img, st, left, top, bottom, eMax, eMin)
	drawText(img, (left+right)/2-textWidth("log[f(Hz)]", st.Face)/2, h-8,
		"log[f(Hz)]", st.Face, color.Black)
	drawText(img, 4, top-4, "E, V vs NHE", st.Face, color.Black)

	drawColorbar(img, st, right+w*3/100, top, right+w*7/100, bottom, minZ, maxZ)

	return img, nil
}

func checkGrid(g *extract.Grid) error {
	if g == nil || len(g.Z) == 0 {
		return ErrGridShape
	}
	if len(g.Z) != len(g.Potentials) {
		return fmt.Errorf("%w: %d rows, %d potentials", ErrGridShape, len(g.Z), len(g.Potentials))
	}
	for _, row := range g.Z {
		if len(row) != len(g.LogFreqs) {
			return fmt.Errorf("%w: %d columns, %d log-frequencies", ErrGridShape, len(row), len(g.LogFreqs))
		}
	}

	return nil
}

func gridMinMax(z [][]float64) (min, max float64) {
	min, max = z[0][0], z[0][0]
	for _, row := range z {
		lo, hi := grid.MinMax(row)
		if lo < min {
			min = lo
		}
		if hi > max {
			max = hi
		}
	}

	return min, max
}

// sampleBilinear evaluates the grid at (potential, log-frequency) by
// bilinear interpolation over the linearly spaced axes.
func sampleBilinear(g *extract.Grid, e, lf float64) float64 {
	ri, rf := axisLookup(g.Potentials, e)
	ci, cf := axisLookup(g.LogFreqs, lf)

	r1 := minInt(ri+1, len(g.Potentials)-1)
	c1 := minInt(ci+1, len(g.LogFreqs)-1)

	top := g.Z[ri][ci]*(1-cf) + g.Z[ri][c1]*cf
	bot := g.Z[r1][ci]*(1-cf) + g.Z[r1][c1]*cf

	return top*(1-rf) + bot*rf
}

// axisLookup finds the cell index and fractional position of value v on a
// linearly spaced axis running in either direction.
func axisLookup(axis []float64, v float64) (int, float64) {
	n := len(axis)
	if n < 2 {
		return 0, 0
	}

	step := (axis[n-1] - axis[0]) / float64(n-1)
	pos := (v - axis[0]) / step
	if pos < 0 {
		pos = 0
	}
	if pos > float64(n-1) {
		pos = float64(n - 1)
	}

	i := int(pos)
	if i > n-2 {
		i = n - 2
	}

	return i, pos - float64(i)
}

func drawFrame(img *image.RGBA, left, top, right, bottom int) {
	drawLine(img, left, top, right, top, color.Black)
	drawLine(img, left, bottom, right, bottom, color.Black)
	drawLine(img, left, top, left, bottom, color.Black)
	drawLine(img, right, top, right, bottom, color.Black)
}

func drawXTicks(img *image.RGBA, st Style, left, right, bottom int, lo, hi float64) {
	const ticks = 5
	for i := 0; i < ticks; i++ {
		f := float64(i) / float64(ticks-1)
		x := left + int(f*float64(right-left))
		v := lo + f*(hi-lo)

		drawLine(img, x, bottom, x, bottom+5, color.Black)
		label := fmt.Sprintf("%.1f", v)
		drawText(img, x-textWidth(label, st.Face)/2, bottom+18, label, st.Face, color.Black)
	}
}

func drawYTicks(img *image.RGBA, st Style, left, top, bottom int, first, last float64) {
	const ticks = 5
	for i := 0; i < ticks; i++ {
		f := float64(i) / float64(ticks-1)
		y := top + int(f*float64(bottom-top))
		v := first + f*(last-first)

		drawLine(img, left-5, y, left, y, color.Black)
		label := fmt.Sprintf("%.1f", v)
		drawText(img, left-8-textWidth(label, st.Face), y+4, label, st.Face, color.Black)
	}
}

func drawColorbar(img *image.RGBA, st Style, left, top, right, bottom int, minZ, maxZ float64) {
	for y := top; y < bottom; y++ {
		t := 1 - float64(y-top)/float64(bottom-top-1)
		col := st.Colormap(t)
		for x := left; x < right; x++ {
			img.SetRGBA(x, y, col)
		}
	}
	drawFrame(img, left, top, right, bottom)

	const ticks = 5
	for i := 0; i < ticks; i++ {
		f := float64(i) / float64(ticks-1)
		y := top + int(f*float64(bottom-top))
		v := maxZ - f*(maxZ-minZ)

		drawLine(img, right, y, right+4, y, color.Black)
		drawText(img, right+7, y+4, fmt.Sprintf("%.0f", v), st.Face, color.Black)
	}

	drawText(img, left, top-4, "-Δj/f, µC/cm²", st.Face, color.Black)
}
