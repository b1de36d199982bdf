package calib

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/scancloud/internal/units"
)

// LUT is the per-pixel projection table: for pixel i,
//
//	point_mm = Direction[i] * range_mm + Offset[i]
//
// Direction holds unit beam direction vectors; Offset holds the beam
// origin displacement in millimeters. Both are immutable after
// construction and safe for concurrent readers.
type LUT struct {
	H, W      int
	Direction []r3.Vec // len H*W, unit vectors
	Offset    []r3.Vec // len H*W, millimeters
}

// NewLUT wraps pre-computed direction and offset tables. Both slices
// must have length h*w.
func NewLUT(h, w int, direction, offset []r3.Vec) (*LUT, error) {
	if h <= 0 || w <= 0 {
		return nil, fmt.Errorf("invalid LUT dimensions %dx%d", h, w)
	}
	if len(direction) != h*w || len(offset) != h*w {
		return nil, fmt.Errorf("LUT table lengths %d/%d do not match %dx%d",
			len(direction), len(offset), h, w)
	}
	return &LUT{H: h, W: w, Direction: direction, Offset: offset}, nil
}

// PixelShiftTable holds the per-row circular shift (in columns) that
// aligns each firing row to a common azimuth index. Length equals the
// sensor's row count. Values may be negative or exceed the width; they
// are reduced modulo width at use.
type PixelShiftTable []int

// Normalize reduces a row shift into [0, width).
func (t PixelShiftTable) Normalize(row, width int) int {
	return ((t[row] % width) + width) % width
}

// BuildLUT computes the projection table from beam intrinsics.
//
// Per pixel (row u, column v): the beam azimuth is the column's encoder
// angle plus the row's azimuth correction, the elevation is the row's
// altitude angle, and the offset displaces the beam origin from the
// lidar origin horizontally along the encoder angle.
func BuildLUT(in *Intrinsics) (*LUT, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	h := len(in.BeamAltitudeDeg)
	w := in.ColumnsPerFrame

	direction := make([]r3.Vec, h*w)
	offset := make([]r3.Vec, h*w)

	for u := 0; u < h; u++ {
		altRad := units.DegreesToRadians(in.BeamAltitudeDeg[u])
		cosAlt := math.Cos(altRad)
		sinAlt := math.Sin(altRad)

		for v := 0; v < w; v++ {
			encoderDeg := 360.0 * float64(v) / float64(w)
			azRad := units.DegreesToRadians(encoderDeg + in.BeamAzimuthDeg[u])
			encRad := units.DegreesToRadians(encoderDeg)

			i := u*w + v
			// X=right, Y=forward, Z=up, matching SphericalToCartesian.
			direction[i] = r3.Vec{
				X: cosAlt * math.Sin(azRad),
				Y: cosAlt * math.Cos(azRad),
				Z: sinAlt,
			}
			offset[i] = r3.Vec{
				X: in.BeamToLidarOriginMM * math.Sin(encRad),
				Y: in.BeamToLidarOriginMM * math.Cos(encRad),
				Z: 0,
			}
		}
	}

	return NewLUT(h, w, direction, offset)
}
