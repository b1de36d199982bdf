package frame

import (
	"errors"
	"testing"
)

func newTestImage(t *testing.T, h, w int) *RangeImage {
	t.Helper()
	colTS := make([]uint64, w)
	for v := range colTS {
		colTS[v] = 1_000_000 + uint64(v)*1000
	}
	ri, err := NewRangeImage(h, w, 1_000_000, 1_000_000+uint64(w)*1000, colTS)
	if err != nil {
		t.Fatalf("NewRangeImage failed: %v", err)
	}
	return ri
}

func TestNewRangeImageValidation(t *testing.T) {
	if _, err := NewRangeImage(0, 16, 0, 0, nil); err == nil {
		t.Error("expected error for zero height")
	}
	if _, err := NewRangeImage(4, 16, 0, 0, make([]uint64, 8)); err == nil {
		t.Error("expected error for column timestamp length mismatch")
	}
}

func TestSuitableReturn(t *testing.T) {
	cases := []struct {
		in     ChanField
		second bool
		want   ChanField
	}{
		{ChanRange, false, ChanRange},
		{ChanRange, true, ChanRange2},
		{ChanRange2, false, ChanRange},
		{ChanSignal, true, ChanSignal2},
		{ChanSignal2, true, ChanSignal2},
		{ChanReflectivity, true, ChanReflectivity2},
		{ChanNearIR, false, ChanNearIR},
		{ChanNearIR, true, ChanNearIR}, // no second-return variant
	}
	for _, tc := range cases {
		if got := SuitableReturn(tc.in, tc.second); got != tc.want {
			t.Errorf("SuitableReturn(%v, %v) = %v, want %v", tc.in, tc.second, got, tc.want)
		}
	}
}

func TestSuitableReturnPanicsOnUnknownField(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for channel outside enumeration")
		}
	}()
	SuitableReturn(ChanField(99), false)
}

func TestFieldU32AbsentChannelIsZeroFilled(t *testing.T) {
	ri := newTestImage(t, 4, 16)

	data, err := ri.FieldU32(ChanSignal2)
	if err != nil {
		t.Fatalf("FieldU32 failed: %v", err)
	}
	if len(data) != 4*16 {
		t.Fatalf("got %d values, want %d", len(data), 4*16)
	}
	for i, v := range data {
		if v != 0 {
			t.Fatalf("absent channel value at %d = %d, want 0", i, v)
		}
	}
}

func TestFieldU32WidensNarrowStorage(t *testing.T) {
	ri := newTestImage(t, 2, 4)

	refl := make([]uint16, 8)
	for i := range refl {
		refl[i] = uint16(i * 100)
	}
	if err := ri.SetField(ChanReflectivity, U16Field(refl)); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	data, err := ri.FieldU32(ChanReflectivity)
	if err != nil {
		t.Fatalf("FieldU32 failed: %v", err)
	}
	for i := range refl {
		if data[i] != uint32(refl[i]) {
			t.Errorf("value %d = %d, want %d", i, data[i], refl[i])
		}
	}
}

func TestFieldRejectsUnknownField(t *testing.T) {
	ri := newTestImage(t, 2, 4)

	if _, err := ri.FieldU32(ChanField(-1)); !errors.Is(err, ErrUnknownField) {
		t.Errorf("FieldU32 error = %v, want ErrUnknownField", err)
	}
	if _, err := ri.FieldU16(chanFieldCount); !errors.Is(err, ErrUnknownField) {
		t.Errorf("FieldU16 error = %v, want ErrUnknownField", err)
	}
}

func TestSetFieldDimensionCheck(t *testing.T) {
	ri := newTestImage(t, 2, 4)
	if err := ri.SetField(ChanRange, U32Field(make([]uint32, 7))); err == nil {
		t.Error("expected error for mismatched field size")
	}
}

func TestNearIRSecondaryResolvesToPrimaryData(t *testing.T) {
	ri := newTestImage(t, 2, 4)
	nir := make([]uint16, 8)
	for i := range nir {
		nir[i] = uint16(i + 1)
	}
	if err := ri.SetField(ChanNearIR, U16Field(nir)); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	primary, err := ri.FieldU16(SuitableReturn(ChanNearIR, false))
	if err != nil {
		t.Fatalf("FieldU16 failed: %v", err)
	}
	secondary, err := ri.FieldU16(SuitableReturn(ChanNearIR, true))
	if err != nil {
		t.Fatalf("FieldU16 failed: %v", err)
	}
	for i := range primary {
		if primary[i] != secondary[i] {
			t.Fatalf("NEAR_IR secondary differs from primary at %d: %d != %d", i, secondary[i], primary[i])
		}
	}
}

func TestDuration(t *testing.T) {
	ri := newTestImage(t, 2, 4)
	if got := ri.Duration(); got != 4000 {
		t.Errorf("Duration = %d, want 4000", got)
	}

	// Corrupt frame timing never yields a negative duration.
	ri.FrameEnd = ri.FrameStart - 1
	if got := ri.Duration(); got != 0 {
		t.Errorf("Duration with end before start = %d, want 0", got)
	}
}
