package lidar

import "math"

// SphericalToCartesian converts distance (meters), azimuth (degrees) and
// elevation (degrees) into Cartesian sensor-frame coordinates.
// Coordinate convention: X=right, Y=forward, Z=up.
func SphericalToCartesian(distance, azimuthDeg, elevationDeg float64) (x, y, z float64) {
	azimuthRad := azimuthDeg * math.Pi / 180.0
	elevationRad := elevationDeg * math.Pi / 180.0

	cosElevation := math.Cos(elevationRad)
	sinElevation := math.Sin(elevationRad)
	cosAzimuth := math.Cos(azimuthRad)
	sinAzimuth := math.Sin(azimuthRad)

	x = distance * cosElevation * sinAzimuth
	y = distance * cosElevation * cosAzimuth
	z = distance * sinElevation
	return
}

// AzimuthOf returns the planar azimuth angle (radians) of a point,
// measured with atan2(y, x). Used by the alignment validator.
func AzimuthOf(p Point) float64 {
	return math.Atan2(float64(p.Y), float64(p.X))
}

// ElevationOf returns the elevation angle (radians) of a point computed
// from its height and raw range. Degenerate zero-range points return 0.
func ElevationOf(p Point) float64 {
	if p.Range == 0 {
		return 0
	}
	return math.Atan2(float64(p.Z), float64(p.Range))
}
