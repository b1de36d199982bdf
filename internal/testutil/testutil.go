// Package testutil provides shared test fixtures for the scan
// conversion packages.
//
// This package centralises synthetic frames and calibration tables to
// reduce duplication across test files.
package testutil

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/scancloud/internal/lidar/calib"
	"github.com/banshee-data/scancloud/internal/lidar/frame"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// UniformLUT builds an h×w LUT with every pixel sharing the given
// direction and offset. Tests use direction (1,0,0) with zero offset so
// projected X equals the raw range.
func UniformLUT(t *testing.T, h, w int, direction, offset r3.Vec) *calib.LUT {
	t.Helper()
	dir := make([]r3.Vec, h*w)
	off := make([]r3.Vec, h*w)
	for i := range dir {
		dir[i] = direction
		off[i] = offset
	}
	lut, err := calib.NewLUT(h, w, dir, off)
	if err != nil {
		t.Fatalf("failed to build test LUT: %v", err)
	}
	return lut
}

// XAxisLUT is UniformLUT with direction (1,0,0) and no offset.
func XAxisLUT(t *testing.T, h, w int) *calib.LUT {
	t.Helper()
	return UniformLUT(t, h, w, r3.Vec{X: 1}, r3.Vec{})
}

// FrameOptions tunes SyntheticFrame.
type FrameOptions struct {
	FrameStart uint64
	FrameEnd   uint64
	ColumnTS   []uint64 // default: evenly spaced inside [start, end]
	DualReturn bool     // also populate second-return channels
}

// SyntheticFrame builds a fully populated range image with
// deterministic per-pixel values: range = 1000+i mm, signal = 2*i,
// reflectivity = i mod 65536, near-ir = 3*i mod 65536.
func SyntheticFrame(t *testing.T, h, w int, opts FrameOptions) *frame.RangeImage {
	t.Helper()

	if opts.FrameEnd == 0 {
		opts.FrameStart = 1_000_000_000
		opts.FrameEnd = opts.FrameStart + 100_000_000 // 100ms rotation
	}
	colTS := opts.ColumnTS
	if colTS == nil {
		colTS = make([]uint64, w)
		step := (opts.FrameEnd - opts.FrameStart) / uint64(w)
		for v := range colTS {
			colTS[v] = opts.FrameStart + uint64(v)*step
		}
	}

	ri, err := frame.NewRangeImage(h, w, opts.FrameStart, opts.FrameEnd, colTS)
	if err != nil {
		t.Fatalf("failed to build test frame: %v", err)
	}

	n := h * w
	rangeMM := make([]uint32, n)
	signal := make([]uint32, n)
	refl := make([]uint16, n)
	nearIR := make([]uint16, n)
	for i := 0; i < n; i++ {
		rangeMM[i] = uint32(1000 + i)
		signal[i] = uint32(2 * i)
		refl[i] = uint16(i)
		nearIR[i] = uint16(3 * i)
	}

	AssertNoError(t, ri.SetField(frame.ChanRange, frame.U32Field(rangeMM)))
	AssertNoError(t, ri.SetField(frame.ChanSignal, frame.U32Field(signal)))
	AssertNoError(t, ri.SetField(frame.ChanReflectivity, frame.U16Field(refl)))
	AssertNoError(t, ri.SetField(frame.ChanNearIR, frame.U16Field(nearIR)))

	if opts.DualReturn {
		rangeMM2 := make([]uint32, n)
		signal2 := make([]uint32, n)
		refl2 := make([]uint16, n)
		for i := 0; i < n; i++ {
			rangeMM2[i] = uint32(500 + i)
			signal2[i] = uint32(i)
			refl2[i] = uint16(2 * i)
		}
		AssertNoError(t, ri.SetField(frame.ChanRange2, frame.U32Field(rangeMM2)))
		AssertNoError(t, ri.SetField(frame.ChanSignal2, frame.U32Field(signal2)))
		AssertNoError(t, ri.SetField(frame.ChanReflectivity2, frame.U16Field(refl2)))
	}

	return ri
}
