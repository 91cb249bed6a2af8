// Package treemap partitions a rectangle into sub-rectangles whose areas are
// proportional to item weights.
//
// # Overview
//
// [Layout] takes a list of weighted items and a container rectangle and
// returns one [Placement] per item, in input order. Every included item
// receives an area of
//
//	weight / totalWeight * container.Area()
//
// and the placements of one call never overlap.
//
// # Algorithms
//
//   - [Squarified] (default): the squarified treemap of Bruls, Huizing and
//     van Wijk. Items are sorted by weight, descending, and grouped into rows
//     laid along the shorter side of the remaining empty area. A row keeps
//     growing while adding the next item does not worsen the row's worst
//     aspect ratio (see [Worst]). Each closed row is sliced off the left or
//     top of the empty area, which shrinks accordingly.
//
//   - [Slice]: every item is placed in a single band across the whole
//     container (slice-and-dice). Cheap and order-preserving, but produces
//     thin slivers for small weights.
//
// # Weights
//
// Weights must be finite. An item whose weight is NaN, or rounds to zero or
// below (round half to even), is excluded: it gets a zero [geom.Rect] at the
// origin and Excluded set. Infinite weights are rejected with an
// INVALID_WEIGHT error.
//
// # Degenerate Input
//
// A container with zero or negative width or height produces no placements;
// a NaN or infinite dimension is an INVALID_SIZE error. When every
// item is excluded the result holds only excluded placements. Floating-point
// rounding may leave a thin unused strip at the far edge of the container;
// it is not corrected.
//
// Layout is a pure function: it keeps no state between calls and is safe for
// concurrent use with distinct inputs.
package treemap
