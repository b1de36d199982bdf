package convert

import "errors"

// Fatal conversion errors. Both abort the frame entirely; the caller
// owns retry policy.
var (
	// ErrDimensionMismatch reports a calibration table whose dimensions
	// do not match the frame being converted.
	ErrDimensionMismatch = errors.New("calibration dimensions do not match frame")

	// ErrShiftTableMismatch reports a pixel shift table whose length
	// does not match the cloud height.
	ErrShiftTableMismatch = errors.New("pixel shift table length does not match cloud height")

	// ErrInvalidReturn reports a return index outside {0, 1}.
	ErrInvalidReturn = errors.New("return index must be 0 or 1")
)
