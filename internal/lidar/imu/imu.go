// Package imu converts raw inertial readings from the sensor into
// calibrated samples for robotics consumption.
//
// The sensor reports linear acceleration in g and angular velocity in
// degrees per second; output uses m/s² and rad/s. The IMU carries no
// orientation estimate, so orientation is always reported unavailable.
package imu

import (
	"github.com/banshee-data/scancloud/internal/units"
)

// Fixed measurement covariance diagonals for this sensor family.
const (
	LinearAccelCovDiag = 0.01
	AngularVelCovDiag  = 6e-4
)

// RawSample is one inertial reading as the packet decoding layer hands
// it over: accelerometer axes in g, gyro axes in degrees per second,
// and the gyro timestamp in unix nanoseconds.
type RawSample struct {
	GyroTS uint64 // unix nanoseconds

	LaX, LaY, LaZ float64 // linear acceleration (g)
	AvX, AvY, AvZ float64 // angular velocity (deg/s)
}

// Sample is a calibrated inertial sample. Orientation fields follow the
// "unavailable" convention: an all-zero quaternion with
// OrientationCov[0] == -1 tells consumers no estimate exists.
type Sample struct {
	TimestampNS uint64

	// Orientation quaternion; always zero (unavailable).
	QX, QY, QZ, QW float64

	LinearAccel [3]float64 // m/s²
	AngularVel  [3]float64 // rad/s

	OrientationCov [9]float64 // [0] == -1: orientation unavailable
	AngularVelCov  [9]float64 // diagonal AngularVelCovDiag
	LinearAccelCov [9]float64 // diagonal LinearAccelCovDiag
}

// Convert scales a raw reading into a calibrated sample.
func Convert(raw RawSample) Sample {
	s := Sample{
		TimestampNS: raw.GyroTS,
		LinearAccel: [3]float64{
			raw.LaX * units.StandardGravity,
			raw.LaY * units.StandardGravity,
			raw.LaZ * units.StandardGravity,
		},
		AngularVel: [3]float64{
			raw.AvX * units.DegToRad,
			raw.AvY * units.DegToRad,
			raw.AvZ * units.DegToRad,
		},
	}

	s.OrientationCov[0] = -1
	for i := 0; i < 9; i += 4 {
		s.LinearAccelCov[i] = LinearAccelCovDiag
		s.AngularVelCov[i] = AngularVelCovDiag
	}
	return s
}
