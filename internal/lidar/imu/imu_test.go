package imu

import (
	"math"
	"testing"
)

func TestConvertZeroSample(t *testing.T) {
	s := Convert(RawSample{GyroTS: 123456789})

	if s.TimestampNS != 123456789 {
		t.Errorf("timestamp = %d, want 123456789", s.TimestampNS)
	}
	for i := 0; i < 3; i++ {
		if s.LinearAccel[i] != 0 {
			t.Errorf("linear accel[%d] = %v, want 0", i, s.LinearAccel[i])
		}
		if s.AngularVel[i] != 0 {
			t.Errorf("angular vel[%d] = %v, want 0", i, s.AngularVel[i])
		}
	}

	// Orientation unavailable convention.
	if s.QX != 0 || s.QY != 0 || s.QZ != 0 || s.QW != 0 {
		t.Error("orientation quaternion must be all zero")
	}
	if s.OrientationCov[0] != -1 {
		t.Errorf("orientation cov[0] = %v, want -1", s.OrientationCov[0])
	}

	// Fixed diagonal covariances.
	for i := 0; i < 9; i++ {
		wantLA, wantAV := 0.0, 0.0
		if i%4 == 0 {
			wantLA, wantAV = LinearAccelCovDiag, AngularVelCovDiag
		}
		if s.LinearAccelCov[i] != wantLA {
			t.Errorf("linear accel cov[%d] = %v, want %v", i, s.LinearAccelCov[i], wantLA)
		}
		if s.AngularVelCov[i] != wantAV {
			t.Errorf("angular vel cov[%d] = %v, want %v", i, s.AngularVelCov[i], wantAV)
		}
	}
}

func TestConvertScaling(t *testing.T) {
	s := Convert(RawSample{
		LaX: 1, LaY: -2, LaZ: 0.5,
		AvX: 180, AvY: -90, AvZ: 360,
	})

	if got := s.LinearAccel[0]; got != 9.80665 {
		t.Errorf("1g = %v m/s², want 9.80665", got)
	}
	if got := s.LinearAccel[1]; got != -2*9.80665 {
		t.Errorf("-2g = %v m/s², want %v", got, -2*9.80665)
	}
	if got := s.AngularVel[0]; math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("180 deg/s = %v rad/s, want pi", got)
	}
	if got := s.AngularVel[2]; math.Abs(got-2*math.Pi) > 1e-12 {
		t.Errorf("360 deg/s = %v rad/s, want 2pi", got)
	}
}
