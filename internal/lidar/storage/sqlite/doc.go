// Package sqlite persists conversion output: session records, per-frame
// cloud summaries, and IMU samples.
//
// Dependency rule: storage may depend on the lidar domain packages but
// never the reverse; no SQL leaks out of this package.
package sqlite
