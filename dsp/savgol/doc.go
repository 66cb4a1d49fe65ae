// Package savgol implements Savitzky-Golay polynomial smoothing.
//
// The filter fits a low-degree polynomial to a sliding window of samples by
// linear least squares and replaces the central sample with the fitted
// value. Unlike a moving average it preserves peak height and width, which
// matters when the smoothed signal feeds a later interpolation stage.
//
// Edge samples are smoothed by fitting the first (or last) full window and
// evaluating the fit at the off-center sample position, so the output has
// the same length as the input.
package savgol
