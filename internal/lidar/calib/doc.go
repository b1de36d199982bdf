// Package calib owns per-sensor calibration for scan conversion: the
// per-pixel direction/offset lookup table used for range-to-Cartesian
// projection and the per-row pixel shift table used for destaggering.
//
// Calibration is session-scoped. A LUT and shift table are built once
// when a sensor session starts and shared read-only by all conversions
// for that session; nothing in this package mutates them afterwards.
package calib
