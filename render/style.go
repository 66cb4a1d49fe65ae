package render

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Default figure geometry, matching a 6x5 inch figure.
const (
	DefaultWidthInches  = 6.0
	DefaultHeightInches = 5.0
	// DefaultDPI is the on-screen rendering density. Exports intended for
	// publication use [ExportDPI].
	DefaultDPI = 150
	// ExportDPI is the raster density used when a figure is saved to disk.
	ExportDPI = 1200
)

// Style configures one rendering call. The zero value is not usable; start
// from [DefaultStyle].
type Style struct {
	// WidthInches and HeightInches set the figure size; pixel dimensions
	// are the product with DPI.
	WidthInches  float64
	HeightInches float64
	DPI          int
	// Levels is the number of filled contour levels.
	Levels int
	// Colormap maps normalized response values to colors.
	Colormap Colormap
	// MeshRows and MeshCols cap the surface display mesh independent of
	// the data shape.
	MeshRows int
	MeshCols int
	// Face renders axis labels and tick text.
	Face font.Face
}

// DefaultStyle returns the standard contour style: 6x5 inches, 100 levels,
// jet colormap.
func DefaultStyle() Style {
	return Style{
		WidthInches:  DefaultWidthInches,
		HeightInches: DefaultHeightInches,
		DPI:          DefaultDPI,
		Levels:       100,
		Colormap:     Jet,
		MeshRows:     50,
		MeshCols:     50,
		Face:         basicfont.Face7x13,
	}
}

// SurfaceStyle returns the standard surface style: seismic colormap,
// 50x50 display mesh.
func SurfaceStyle() Style {
	st := DefaultStyle()
	st.Colormap = Seismic

	return st
}

func (st Style) pixelSize() (w, h int) {
	w = int(st.WidthInches * float64(st.DPI))
	h = int(st.HeightInches * float64(st.DPI))
	if w < 64 {
		w = 64
	}
	if h < 64 {
		h = 64
	}

	return w, h
}
