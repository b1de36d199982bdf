// Package frame owns the parsed range-image representation of one
// sensor rotation and per-channel field extraction.
//
// Responsibilities: the RangeImage type handed over by the packet
// decoding layer, the channel enumeration with dual-return resolution,
// and zero-substituting field extraction.
//
// Dependency rule: frame may depend on internal/lidar only.
package frame
