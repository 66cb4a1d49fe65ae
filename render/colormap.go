package render

import "image/color"

// Colormap maps a normalized value in [0, 1] to a color.
type Colormap func(t float64) color.RGBA

// Jet is the classic blue-cyan-yellow-red rainbow map used for the filled
// contour view.
func Jet(t float64) color.RGBA {
	t = clamp01(t)

	r := clamp01(1.5 - abs(4*t-3))
	g := clamp01(1.5 - abs(4*t-2))
	b := clamp01(1.5 - abs(4*t-1))

	return color.RGBA{
		R: uint8(r*255 + 0.5),
		G: uint8(g*255 + 0.5),
		B: uint8(b*255 + 0.5),
		A: 255,
	}
}

// Seismic is a blue-white-red diverging map used for the surface view.
func Seismic(t float64) color.RGBA {
	t = clamp01(t)

	var r, g, b float64
	switch {
	case t < 0.25:
		r, g, b = 0, 0, 0.5+2*t
	case t < 0.5:
		f := (t - 0.25) * 4
		r, g, b = f, f, 1
	case t < 0.75:
		f := (t - 0.5) * 4
		r, g, b = 1, 1-f, 1-f
	default:
		r, g, b = 2.5-2*t, 0, 0
	}

	return color.RGBA{
		R: uint8(clamp01(r)*255 + 0.5),
		G: uint8(clamp01(g)*255 + 0.5),
		B: uint8(clamp01(b)*255 + 0.5),
		A: 255,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}

	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
