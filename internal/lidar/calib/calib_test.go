package calib

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func testIntrinsics() *Intrinsics {
	return &Intrinsics{
		ColumnsPerFrame:     8,
		BeamAltitudeDeg:     []float64{10, 0, -10},
		BeamAzimuthDeg:      []float64{1.5, 0, -1.5},
		BeamToLidarOriginMM: 15.806,
		PixelShiftByRow:     []int{3, 0, -3},
	}
}

func TestIntrinsicsValidate(t *testing.T) {
	in := testIntrinsics()
	if err := in.Validate(); err != nil {
		t.Fatalf("valid intrinsics rejected: %v", err)
	}

	bad := testIntrinsics()
	bad.ColumnsPerFrame = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero columns_per_frame")
	}

	bad = testIntrinsics()
	bad.BeamAzimuthDeg = bad.BeamAzimuthDeg[:2]
	if err := bad.Validate(); err == nil {
		t.Error("expected error for mismatched azimuth table")
	}

	bad = testIntrinsics()
	bad.PixelShiftByRow = []int{1}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for mismatched pixel shift table")
	}
}

func TestBuildLUTDimensions(t *testing.T) {
	in := testIntrinsics()
	lut, err := BuildLUT(in)
	if err != nil {
		t.Fatalf("BuildLUT failed: %v", err)
	}
	if lut.H != 3 || lut.W != 8 {
		t.Errorf("LUT dimensions = %dx%d, want 3x8", lut.H, lut.W)
	}
	if len(lut.Direction) != 24 || len(lut.Offset) != 24 {
		t.Errorf("LUT table lengths = %d/%d, want 24", len(lut.Direction), len(lut.Offset))
	}
}

func TestBuildLUTDirectionsAreUnit(t *testing.T) {
	lut, err := BuildLUT(testIntrinsics())
	if err != nil {
		t.Fatalf("BuildLUT failed: %v", err)
	}
	for i, d := range lut.Direction {
		if norm := r3.Norm(d); math.Abs(norm-1.0) > 1e-12 {
			t.Fatalf("direction %d has norm %v, want 1", i, norm)
		}
	}
}

func TestBuildLUTZeroAltitudeRowIsHorizontal(t *testing.T) {
	lut, err := BuildLUT(testIntrinsics())
	if err != nil {
		t.Fatalf("BuildLUT failed: %v", err)
	}
	// Row 1 has altitude 0 and azimuth correction 0; column 0 looks
	// straight forward (+Y).
	d := lut.Direction[1*lut.W+0]
	if math.Abs(d.X) > 1e-12 || math.Abs(d.Y-1.0) > 1e-12 || math.Abs(d.Z) > 1e-12 {
		t.Errorf("row 1 col 0 direction = %+v, want (0,1,0)", d)
	}
	// Offset is horizontal along the encoder angle.
	o := lut.Offset[1*lut.W+0]
	if math.Abs(o.Y-15.806) > 1e-9 || math.Abs(o.X) > 1e-9 || o.Z != 0 {
		t.Errorf("row 1 col 0 offset = %+v, want (0,15.806,0)", o)
	}
}

func TestNewLUTRejectsBadLengths(t *testing.T) {
	if _, err := NewLUT(2, 4, make([]r3.Vec, 7), make([]r3.Vec, 8)); err == nil {
		t.Error("expected error for short direction table")
	}
	if _, err := NewLUT(0, 4, nil, nil); err == nil {
		t.Error("expected error for zero height")
	}
}

func TestShiftTableNormalize(t *testing.T) {
	table := PixelShiftTable{3, 0, -3, 19, -19}
	w := 8
	wants := []int{3, 0, 5, 3, 5}
	for row, want := range wants {
		if got := table.Normalize(row, w); got != want {
			t.Errorf("Normalize(row %d, w=%d) = %d, want %d", row, w, got, want)
		}
	}
}

func TestShiftTableDefaultsToZero(t *testing.T) {
	in := testIntrinsics()
	in.PixelShiftByRow = nil
	table := in.ShiftTable()
	if len(table) != in.Rows() {
		t.Fatalf("shift table length = %d, want %d", len(table), in.Rows())
	}
	for row, s := range table {
		if s != 0 {
			t.Errorf("row %d shift = %d, want 0", row, s)
		}
	}
}

func TestLoadIntrinsics(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.json")

	data, err := json.Marshal(testIntrinsics())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	in, err := LoadIntrinsics(path)
	if err != nil {
		t.Fatalf("LoadIntrinsics failed: %v", err)
	}
	if in.ColumnsPerFrame != 8 || in.Rows() != 3 {
		t.Errorf("loaded intrinsics = %d cols, %d rows; want 8, 3", in.ColumnsPerFrame, in.Rows())
	}
}

func TestLoadIntrinsicsRejectsNonJSON(t *testing.T) {
	if _, err := LoadIntrinsics("metadata.yaml"); err == nil {
		t.Error("expected error for non-JSON extension")
	}
}
