package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// drawText renders s with its baseline starting at (x, y).
func drawText(dst *image.RGBA, x, y int, s string, face font.Face, col color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// textWidth measures s in pixels.
func textWidth(s string, face font.Face) int {
	return font.MeasureString(face, s).Ceil()
}

// drawLine draws a 1 px line from (x0, y0) to (x1, y1).
func drawLine(dst *image.RGBA, x0, y0, x1, y1 int, col color.Color) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)

	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		dst.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}

		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillQuad fills the quadrilateral (x0,y0)-(x1,y1)-(x2,y2)-(x3,y3) given in
// order around its boundary, using a scanline over the bounding box.
func fillQuad(dst *image.RGBA, xs, ys [4]int, col color.Color) {
	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := 1; i < 4; i++ {
		minX = minInt(minX, xs[i])
		maxX = maxInt(maxX, xs[i])
		minY = minInt(minY, ys[i])
		maxY = maxInt(maxY, ys[i])
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if pointInQuad(x, y, xs, ys) {
				dst.Set(x, y, col)
			}
		}
	}
}

// pointInQuad tests containment by requiring a consistent cross-product
// sign along the quad boundary. Degenerate (zero-area) edges count as
// inside, which keeps thin projected quads visible.
func pointInQuad(px, py int, xs, ys [4]int) bool {
	pos, neg := false, false
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		cross := (xs[j]-xs[i])*(py-ys[i]) - (ys[j]-ys[i])*(px-xs[i])
		if cross > 0 {
			pos = true
		}
		if cross < 0 {
			neg = true
		}
	}

	return !(pos && neg)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
