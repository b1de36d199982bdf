// Package units provides shared physical conversion constants for the
// scan conversion pipeline.
package units

import "math"

// Physical constants used when scaling raw sensor values.
const (
	// StandardGravity converts raw accelerometer readings (in g) to m/s².
	StandardGravity = 9.80665

	// DegToRad converts degrees to radians.
	DegToRad = math.Pi / 180.0

	// MillimetersPerMeter converts the sensor's native millimeter range
	// values to meters for output coordinates.
	MillimetersPerMeter = 1000.0
)

// MMToMeters converts a millimeter length to meters.
func MMToMeters(mm float64) float64 {
	return mm / MillimetersPerMeter
}

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * DegToRad
}
