// Package convert turns decoded range images into calibrated point
// clouds.
//
// Responsibilities: range-to-Cartesian projection through the
// calibration LUT, per-pixel cloud assembly with timestamp clamping,
// row-wise destaggering (and its inverse), and the advisory alignment
// validator.
//
// Conversion is all-or-nothing per frame: fatal configuration errors
// yield no cloud at all, never a partially filled one.
package convert
