package frame

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when a channel outside the defined
// enumeration is requested. This indicates a caller bug, not a sensor
// configuration issue, and aborts the whole conversion.
var ErrUnknownField = errors.New("unknown channel field")

// FieldKind is the storage width of a channel's per-pixel values.
type FieldKind uint8

const (
	KindU8 FieldKind = iota
	KindU16
	KindU32
)

// FieldData holds one channel's H×W values in its native width.
// Exactly one of the slices is populated, selected by Kind.
type FieldData struct {
	Kind FieldKind
	U8   []uint8
	U16  []uint16
	U32  []uint32
}

func (fd *FieldData) len() int {
	switch fd.Kind {
	case KindU8:
		return len(fd.U8)
	case KindU16:
		return len(fd.U16)
	default:
		return len(fd.U32)
	}
}

// U16Field wraps a uint16 matrix as FieldData.
func U16Field(data []uint16) *FieldData { return &FieldData{Kind: KindU16, U16: data} }

// U32Field wraps a uint32 matrix as FieldData.
func U32Field(data []uint32) *FieldData { return &FieldData{Kind: KindU32, U32: data} }

// U8Field wraps a uint8 matrix as FieldData.
func U8Field(data []uint8) *FieldData { return &FieldData{Kind: KindU8, U8: data} }

// RangeImage is one decoded rotation of the sensor: H×W per-channel
// grids plus per-column timestamps. It is built once by the packet
// decoding layer and treated as immutable afterwards, so concurrent
// readers need no locking.
type RangeImage struct {
	H, W int

	// FrameStart and FrameEnd bound the rotation in sensor time
	// (unix nanoseconds). ColumnTS holds the measurement timestamp of
	// each column, nominally within [FrameStart, FrameEnd] but not
	// trusted to be: conversion clamps.
	FrameStart uint64
	FrameEnd   uint64
	ColumnTS   []uint64 // len W

	fields map[ChanField]*FieldData
}

// NewRangeImage constructs an empty range image with the given
// dimensions and timing. columnTS must have length w.
func NewRangeImage(h, w int, frameStart, frameEnd uint64, columnTS []uint64) (*RangeImage, error) {
	if h <= 0 || w <= 0 {
		return nil, fmt.Errorf("invalid range image dimensions %dx%d", h, w)
	}
	if len(columnTS) != w {
		return nil, fmt.Errorf("column timestamp vector length %d does not match width %d", len(columnTS), w)
	}
	return &RangeImage{
		H:          h,
		W:          w,
		FrameStart: frameStart,
		FrameEnd:   frameEnd,
		ColumnTS:   columnTS,
		fields:     make(map[ChanField]*FieldData),
	}, nil
}

// SetField installs a channel's data. Only the decoding layer calls
// this, before the frame is handed to conversion.
func (ri *RangeImage) SetField(f ChanField, fd *FieldData) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownField, f)
	}
	if fd.len() != ri.H*ri.W {
		return fmt.Errorf("field %v has %d values, want %d", f, fd.len(), ri.H*ri.W)
	}
	ri.fields[f] = fd
	return nil
}

// HasField reports whether the channel is populated in this frame.
// Absence is normal in single-return sensor configurations.
func (ri *RangeImage) HasField(f ChanField) bool {
	_, ok := ri.fields[f]
	return ok
}

// Fields returns the set of populated channels.
func (ri *RangeImage) Fields() []ChanField {
	out := make([]ChanField, 0, len(ri.fields))
	for f := ChanField(0); f < chanFieldCount; f++ {
		if _, ok := ri.fields[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Duration returns the frame's nominal duration in nanoseconds.
func (ri *RangeImage) Duration() uint64 {
	if ri.FrameEnd <= ri.FrameStart {
		return 0
	}
	return ri.FrameEnd - ri.FrameStart
}

// FieldU32 extracts a channel as a uint32 matrix, widening narrower
// storage. An absent channel yields a zero-filled matrix of frame
// dimensions: missing fields are an expected sensor configuration, not
// an error. A channel outside the enumeration is fatal.
func (ri *RangeImage) FieldU32(f ChanField) ([]uint32, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownField, f)
	}
	out := make([]uint32, ri.H*ri.W)
	fd, ok := ri.fields[f]
	if !ok {
		return out, nil
	}
	switch fd.Kind {
	case KindU8:
		for i, v := range fd.U8 {
			out[i] = uint32(v)
		}
	case KindU16:
		for i, v := range fd.U16 {
			out[i] = uint32(v)
		}
	case KindU32:
		copy(out, fd.U32)
	}
	return out, nil
}

// FieldU16 extracts a channel as a uint16 matrix. Wider storage is
// truncated per value, matching the sensor profiles where 16-bit
// channels are never stored wider than 16 significant bits.
func (ri *RangeImage) FieldU16(f ChanField) ([]uint16, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownField, f)
	}
	out := make([]uint16, ri.H*ri.W)
	fd, ok := ri.fields[f]
	if !ok {
		return out, nil
	}
	switch fd.Kind {
	case KindU8:
		for i, v := range fd.U8 {
			out[i] = uint16(v)
		}
	case KindU16:
		copy(out, fd.U16)
	case KindU32:
		for i, v := range fd.U32 {
			out[i] = uint16(v)
		}
	}
	return out, nil
}
