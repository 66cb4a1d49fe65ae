// Package trace parses square-wave voltammetry measurement exports.
//
// BioLogic potentiostats export measurements as tab-delimited text tables
// with one header row, encoded in Windows-1252. Samples alternate between
// the forward and backward half of each potential step, so the current
// column is an interleaved forward/backward sequence.
//
// The parser locates the current and working-electrode potential columns
// by header label and ignores any other columns.
package trace
