package lidar

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSphericalToCartesian(t *testing.T) {
	tests := []struct {
		name                   string
		distance, azDeg, elDeg float64
		wantX, wantY, wantZ    float64
	}{
		{"forward", 10, 0, 0, 0, 10, 0},
		{"right", 10, 90, 0, 10, 0, 0},
		{"straight up", 5, 0, 90, 0, 0, 5},
		{"behind", 10, 180, 0, 0, -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z := SphericalToCartesian(tt.distance, tt.azDeg, tt.elDeg)
			if !almostEqual(x, tt.wantX) || !almostEqual(y, tt.wantY) || !almostEqual(z, tt.wantZ) {
				t.Errorf("got (%g, %g, %g), want (%g, %g, %g)", x, y, z, tt.wantX, tt.wantY, tt.wantZ)
			}
		})
	}
}

func TestAzimuthOf(t *testing.T) {
	if got := AzimuthOf(Point{X: 1, Y: 0}); !almostEqual(got, 0) {
		t.Errorf("AzimuthOf(+X) = %g, want 0", got)
	}
	if got := AzimuthOf(Point{X: 0, Y: 1}); !almostEqual(got, math.Pi/2) {
		t.Errorf("AzimuthOf(+Y) = %g, want pi/2", got)
	}
}

func TestElevationOfZeroRange(t *testing.T) {
	if got := ElevationOf(Point{Z: 5, Range: 0}); got != 0 {
		t.Errorf("ElevationOf with zero range = %g, want 0", got)
	}
}
