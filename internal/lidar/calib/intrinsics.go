package calib

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MaxIntrinsicsFileSize caps calibration file reads. Sensor metadata
// files are a few kilobytes; anything larger is misconfiguration.
const MaxIntrinsicsFileSize = 1 << 20 // 1MB

// Intrinsics is the sensor beam geometry published in the sensor's
// metadata. The JSON schema matches the decoding layer's metadata dump
// so the same file configures both sides.
type Intrinsics struct {
	ColumnsPerFrame     int       `json:"columns_per_frame"`
	BeamAltitudeDeg     []float64 `json:"beam_altitude_angles"`
	BeamAzimuthDeg      []float64 `json:"beam_azimuth_angles"`
	BeamToLidarOriginMM float64   `json:"lidar_origin_to_beam_origin_mm"`
	PixelShiftByRow     []int     `json:"pixel_shift_by_row"`
}

// Validate checks internal consistency of the intrinsics.
func (in *Intrinsics) Validate() error {
	if in.ColumnsPerFrame <= 0 {
		return fmt.Errorf("columns_per_frame must be positive, got %d", in.ColumnsPerFrame)
	}
	if len(in.BeamAltitudeDeg) == 0 {
		return fmt.Errorf("beam_altitude_angles is empty")
	}
	if len(in.BeamAzimuthDeg) != len(in.BeamAltitudeDeg) {
		return fmt.Errorf("beam_azimuth_angles has %d entries, want %d",
			len(in.BeamAzimuthDeg), len(in.BeamAltitudeDeg))
	}
	if len(in.PixelShiftByRow) != 0 && len(in.PixelShiftByRow) != len(in.BeamAltitudeDeg) {
		return fmt.Errorf("pixel_shift_by_row has %d entries, want %d",
			len(in.PixelShiftByRow), len(in.BeamAltitudeDeg))
	}
	return nil
}

// Rows returns the sensor's firing row count.
func (in *Intrinsics) Rows() int {
	return len(in.BeamAltitudeDeg)
}

// ShiftTable returns the per-row destagger shifts. Sensors that omit
// pixel_shift_by_row get an all-zero table (destagger is the identity).
func (in *Intrinsics) ShiftTable() PixelShiftTable {
	if len(in.PixelShiftByRow) == 0 {
		return make(PixelShiftTable, in.Rows())
	}
	out := make(PixelShiftTable, len(in.PixelShiftByRow))
	copy(out, in.PixelShiftByRow)
	return out
}

// LoadIntrinsics loads sensor intrinsics from a JSON metadata file.
// The file must have a .json extension and stay under the size cap.
func LoadIntrinsics(path string) (*Intrinsics, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("intrinsics file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat intrinsics file: %w", err)
	}
	if info.Size() > MaxIntrinsicsFileSize {
		return nil, fmt.Errorf("intrinsics file too large: %d bytes (max %d)", info.Size(), MaxIntrinsicsFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read intrinsics file: %w", err)
	}

	var in Intrinsics
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse intrinsics JSON: %w", err)
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid intrinsics in %s: %w", cleanPath, err)
	}
	return &in, nil
}
