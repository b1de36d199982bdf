package convert

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/scancloud/internal/lidar"
	"github.com/banshee-data/scancloud/internal/lidar/calib"
	"github.com/banshee-data/scancloud/internal/lidar/frame"
	"github.com/banshee-data/scancloud/internal/units"
)

// ConverterConfig configures a Converter for one sensor session.
type ConverterConfig struct {
	LUT    *calib.LUT            // projection table, required
	Shifts calib.PixelShiftTable // destagger shifts; empty disables Destagger
	// Workers shards assembly across goroutines by row range.
	// 0 or 1 runs sequentially; both paths produce identical output.
	Workers int
}

// Converter assembles point clouds from range images using a fixed
// sensor calibration. A Converter is immutable after construction and
// safe for concurrent Convert calls; each call owns its output cloud
// exclusively until it returns.
type Converter struct {
	lut     *calib.LUT
	shifts  calib.PixelShiftTable
	workers int
}

// NewConverter validates the session calibration and returns a
// Converter bound to it.
func NewConverter(cfg ConverterConfig) (*Converter, error) {
	if cfg.LUT == nil {
		return nil, fmt.Errorf("converter requires a LUT")
	}
	if len(cfg.Shifts) != 0 && len(cfg.Shifts) != cfg.LUT.H {
		return nil, fmt.Errorf("%w: %d shifts for %d rows", ErrShiftTableMismatch, len(cfg.Shifts), cfg.LUT.H)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Converter{lut: cfg.LUT, shifts: cfg.Shifts, workers: workers}, nil
}

// Shifts returns the converter's destagger table (may be empty).
func (c *Converter) Shifts() calib.PixelShiftTable {
	return c.shifts
}

// Convert assembles one cloud from one range image for the requested
// return (0 = primary, 1 = secondary). The output has exactly H×W
// points in the frame's native pixel order; destaggering is a separate
// step. Fatal errors yield a nil cloud.
func (c *Converter) Convert(ri *frame.RangeImage, returnIndex int) (*lidar.Cloud, error) {
	if returnIndex != 0 && returnIndex != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidReturn, returnIndex)
	}
	if ri.H != c.lut.H || ri.W != c.lut.W {
		return nil, fmt.Errorf("%w: frame %dx%d, LUT %dx%d",
			ErrDimensionMismatch, ri.H, ri.W, c.lut.H, c.lut.W)
	}
	second := returnIndex == 1

	rangeMM, err := ri.FieldU32(frame.SuitableReturn(frame.ChanRange, second))
	if err != nil {
		return nil, err
	}
	signal, err := ri.FieldU32(frame.SuitableReturn(frame.ChanSignal, second))
	if err != nil {
		return nil, err
	}
	reflectivity, err := ri.FieldU16(frame.SuitableReturn(frame.ChanReflectivity, second))
	if err != nil {
		return nil, err
	}
	nearIR, err := ri.FieldU16(frame.SuitableReturn(frame.ChanNearIR, second))
	if err != nil {
		return nil, err
	}

	// Per-column relative timestamps, clamped into [0, duration] so a
	// corrupt or out-of-order column clock can never wrap the unsigned
	// point field. Computed once per column, not per pixel.
	relTS := make([]uint32, ri.W)
	bound := ri.Duration()
	if bound > math.MaxUint32 {
		bound = math.MaxUint32
	}
	for v := 0; v < ri.W; v++ {
		ts := ri.ColumnTS[v]
		var rel uint64
		if ts > ri.FrameStart {
			rel = ts - ri.FrameStart
		}
		if rel > bound {
			rel = bound
		}
		relTS[v] = uint32(rel)
	}

	cloud := lidar.NewCloud(ri.H, ri.W)
	points := make([]r3.Vec, ri.H*ri.W)

	assembleRows := func(rowStart, rowEnd int) {
		CartesianRows(rangeMM, c.lut, rowStart, rowEnd, points)
		w := ri.W
		for u := rowStart; u < rowEnd; u++ {
			base := u * w
			for v := 0; v < w; v++ {
				i := base + v
				xyz := points[i]
				cloud.Points[i] = lidar.Point{
					X:            float32(xyz.X / units.MillimetersPerMeter),
					Y:            float32(xyz.Y / units.MillimetersPerMeter),
					Z:            float32(xyz.Z / units.MillimetersPerMeter),
					Signal:       float32(signal[i]),
					T:            relTS[v],
					Reflectivity: reflectivity[i],
					Ring:         uint16(u),
					NearIR:       nearIR[i],
					Range:        rangeMM[i],
				}
			}
		}
	}

	if c.workers <= 1 || ri.H < 2 {
		assembleRows(0, ri.H)
		return cloud, nil
	}

	// Shard rows across workers. Rows are independent, so the sharded
	// result is bit-identical to the sequential pass.
	workers := c.workers
	if workers > ri.H {
		workers = ri.H
	}
	rowsPer := (ri.H + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < ri.H; start += rowsPer {
		end := start + rowsPer
		if end > ri.H {
			end = ri.H
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			assembleRows(s, e)
		}(start, end)
	}
	wg.Wait()
	return cloud, nil
}
