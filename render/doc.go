// Package render draws the extracted VF-SWV response grid.
//
// Two views are provided: a filled contour map (100 quantized levels with
// axis ticks and a colorbar) and a shaded wireframe surface projection with
// a display mesh downsampled independently of the data shape. A third,
// lighter view overlays the per-frequency curves as a line chart.
//
// All styling is passed per call through [Style]; the package keeps no
// process-wide state, so concurrent or repeated renders cannot affect each
// other.
package render
