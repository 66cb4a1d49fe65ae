// Package extract converts a directory of per-frequency square-wave
// voltammetry exports into a regular potential-by-frequency response grid.
//
// For each measurement file the differential current (forward minus
// backward half-step) is normalized to charge density per electrode area,
// smoothed, and resampled onto a common potential axis by cubic spline
// interpolation. The per-frequency curves are then resampled across
// log10(frequency) onto a common frequency axis, yielding a grid suitable
// for contour and surface rendering.
//
// Extraction is a pure function of its parameters: identical inputs yield
// identical grids, and no state is kept between calls.
package extract
