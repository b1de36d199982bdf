package frame

import "fmt"

// ChanField identifies one per-pixel channel of a range image. The
// *2 variants carry the second return in dual-return sensor profiles.
// NearIR is ambient light and has no second-return variant.
type ChanField int

const (
	ChanRange ChanField = iota
	ChanRange2
	ChanSignal
	ChanSignal2
	ChanReflectivity
	ChanReflectivity2
	ChanNearIR

	chanFieldCount
)

var chanFieldNames = map[ChanField]string{
	ChanRange:         "RANGE",
	ChanRange2:        "RANGE2",
	ChanSignal:        "SIGNAL",
	ChanSignal2:       "SIGNAL2",
	ChanReflectivity:  "REFLECTIVITY",
	ChanReflectivity2: "REFLECTIVITY2",
	ChanNearIR:        "NEAR_IR",
}

func (f ChanField) String() string {
	if name, ok := chanFieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("ChanField(%d)", int(f))
}

// Valid reports whether f is within the defined channel enumeration.
func (f ChanField) Valid() bool {
	return f >= ChanRange && f < chanFieldCount
}

// SuitableReturn resolves a logical channel to the concrete channel for
// the requested return. NearIR always resolves to its single channel,
// even when the second return is requested.
//
// Calling this with a channel outside the enumeration is a programming
// error and panics; callers validate external input with Valid first.
func SuitableReturn(f ChanField, second bool) ChanField {
	switch f {
	case ChanRange, ChanRange2:
		if second {
			return ChanRange2
		}
		return ChanRange
	case ChanSignal, ChanSignal2:
		if second {
			return ChanSignal2
		}
		return ChanSignal
	case ChanReflectivity, ChanReflectivity2:
		if second {
			return ChanReflectivity2
		}
		return ChanReflectivity
	case ChanNearIR:
		return ChanNearIR
	default:
		panic(fmt.Sprintf("lidar/frame: unreachable channel %v", f))
	}
}
