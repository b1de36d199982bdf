package convert

import (
	"math"
	"testing"

	"github.com/banshee-data/scancloud/internal/lidar"
)

// alignedCloud builds a cloud whose azimuths decrease across each row
// and whose elevations decrease down column 0, i.e. a well-destaggered
// cloud by the validator's definition.
func alignedCloud(h, w int) *lidar.Cloud {
	cloud := lidar.NewCloud(h, w)
	for u := 0; u < h; u++ {
		// Elevation decreases with row: z shrinks at fixed range.
		z := float32(h - u)
		for v := 0; v < w; v++ {
			// Azimuth decreases with column within (-pi, pi).
			theta := 2.0 - 4.0*float64(v)/float64(w)
			cloud.Set(u, v, lidar.Point{
				X:     float32(10 * math.Cos(theta)),
				Y:     float32(10 * math.Sin(theta)),
				Z:     z,
				Range: 10000,
			})
		}
	}
	return cloud
}

func TestCheckDestaggeredCleanCloud(t *testing.T) {
	if v := CheckDestaggered(alignedCloud(4, 16)); len(v) != 0 {
		t.Errorf("aligned cloud reported %d violations: %+v", len(v), v)
	}
}

func TestCheckDestaggeredDetectsAzimuthDisorder(t *testing.T) {
	cloud := alignedCloud(4, 16)
	// Swap two points in row 2 to break the azimuth ordering.
	a, b := cloud.At(2, 5), cloud.At(2, 10)
	cloud.Set(2, 5, b)
	cloud.Set(2, 10, a)

	violations := CheckDestaggered(cloud)
	if len(violations) == 0 {
		t.Fatal("expected azimuth violations, got none")
	}
	found := false
	for _, v := range violations {
		if v.Kind == "azimuth" && v.Row == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("no azimuth violation reported in row 2: %+v", violations)
	}
}

func TestCheckDestaggeredDetectsElevationDisorder(t *testing.T) {
	cloud := alignedCloud(6, 4)
	// Make row 3's column-0 elevation jump above row 2's.
	p := cloud.At(3, 0)
	p.Z = 100
	cloud.Set(3, 0, p)

	violations := CheckDestaggered(cloud)
	found := false
	for _, v := range violations {
		if v.Kind == "elevation" && v.Row == 3 {
			found = true
		}
	}
	if !found {
		t.Errorf("no elevation violation reported: %+v", violations)
	}
}

func TestCheckDestaggeredSkipsDegenerateSamples(t *testing.T) {
	cloud := alignedCloud(4, 16)
	// Zero out a scattering of points; gaps must not trip the check.
	for _, v := range []int{0, 3, 7, 11} {
		cloud.Set(1, v, lidar.Point{})
	}
	cloud.Set(2, 0, lidar.Point{})

	if v := CheckDestaggered(cloud); len(v) != 0 {
		t.Errorf("cloud with no-return gaps reported %d violations: %+v", len(v), v)
	}
}
