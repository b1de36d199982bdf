package convert

import (
	"fmt"

	"github.com/banshee-data/scancloud/internal/lidar"
	"github.com/banshee-data/scancloud/internal/lidar/calib"
)

// Destagger aligns the cloud's columns to a common azimuth index by
// rotating each row left by its calibrated shift: with o the row's
// shift normalized into [0, width), output column k receives input
// column (k+o) mod width. Rows with o == 0 are copied unchanged.
//
// The result is a new cloud; rotating a row circularly in place is not
// safe. A shift table whose length differs from the cloud height is a
// fatal configuration error and yields no output.
func Destagger(cloud *lidar.Cloud, shifts calib.PixelShiftTable) (*lidar.Cloud, error) {
	return shiftRows(cloud, shifts, false)
}

// Restagger is the inverse of Destagger: it rotates each row right by
// the same normalized shift, so Restagger(Destagger(c)) == c exactly.
func Restagger(cloud *lidar.Cloud, shifts calib.PixelShiftTable) (*lidar.Cloud, error) {
	return shiftRows(cloud, shifts, true)
}

func shiftRows(cloud *lidar.Cloud, shifts calib.PixelShiftTable, invert bool) (*lidar.Cloud, error) {
	if len(shifts) != cloud.H {
		return nil, fmt.Errorf("%w: %d shifts for height %d", ErrShiftTableMismatch, len(shifts), cloud.H)
	}

	w := cloud.W
	out := lidar.NewCloud(cloud.H, w)
	for u := 0; u < cloud.H; u++ {
		o := shifts.Normalize(u, w)
		if invert && o != 0 {
			o = w - o
		}
		src := cloud.Points[u*w : (u+1)*w]
		dst := out.Points[u*w : (u+1)*w]
		if o == 0 {
			copy(dst, src)
			continue
		}
		for k := 0; k < w; k++ {
			dst[k] = src[(k+o)%w]
		}
	}
	return out, nil
}
