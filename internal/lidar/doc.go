// Package lidar holds the core point-cloud data model shared by the
// scan conversion layers.
//
// Responsibilities: the Point and Cloud types produced by conversion,
// and coordinate geometry helpers.
//
// Dependency rule: this package sits at the bottom of the layer stack
// and must not import any other internal/lidar subpackage.
package lidar
