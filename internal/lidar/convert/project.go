package convert

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/scancloud/internal/lidar/calib"
)

// Cartesian projects a range matrix through the LUT:
//
//	point_mm[i] = direction[i] * range_mm[i] + offset[i]
//
// A zero range means "no return" and projects to the zero vector, not
// to the bare offset. Each pixel is independent; CartesianRows exposes
// the same computation over a row range so callers can shard it.
func Cartesian(rangeMM []uint32, lut *calib.LUT) []r3.Vec {
	out := make([]r3.Vec, len(rangeMM))
	CartesianRows(rangeMM, lut, 0, lut.H, out)
	return out
}

// CartesianRows projects rows [rowStart, rowEnd) into out, which must
// have the full H*W length. Disjoint row ranges may be projected
// concurrently; the result is identical to a sequential pass.
func CartesianRows(rangeMM []uint32, lut *calib.LUT, rowStart, rowEnd int, out []r3.Vec) {
	w := lut.W
	for u := rowStart; u < rowEnd; u++ {
		base := u * w
		for v := 0; v < w; v++ {
			i := base + v
			r := rangeMM[i]
			if r == 0 {
				out[i] = r3.Vec{}
				continue
			}
			out[i] = r3.Add(r3.Scale(float64(r), lut.Direction[i]), lut.Offset[i])
		}
	}
}
