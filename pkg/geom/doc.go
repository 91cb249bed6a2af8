// Package geom provides the float64 point, size and rectangle value types
// shared by the treemap and mosaic layout engines.
//
// All coordinates are in user units with the origin at the top-left corner
// and Y increasing downward, matching the coordinate space of the SVG sink.
// The types are plain values: every method returns a new value and nothing
// in this package holds state.
package geom
