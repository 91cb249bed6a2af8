package treemap

import (
	"math"

	"github.com/matzehuels/mosaic/pkg/geom"
)

// orientation decides which side of the empty area the next row is cut from.
type orientation int

const (
	// horizontal rows are columns cut off the left edge.
	horizontal orientation = iota
	// vertical rows are bands cut off the top edge.
	vertical
)

func orientationOf(r geom.Rect) orientation {
	if r.W > r.H {
		return horizontal
	}
	return vertical
}

// rowStats tracks the aggregates the worst-ratio metric needs.
type rowStats struct {
	n             int
	sum, min, max float64
}

func (s rowStats) with(area float64) rowStats {
	if s.n == 0 {
		return rowStats{n: 1, sum: area, min: area, max: area}
	}
	s.n++
	s.sum += area
	s.min = math.Min(s.min, area)
	s.max = math.Max(s.max, area)
	return s
}

func (s rowStats) worst(side float64) float64 {
	if s.n == 0 {
		return 0
	}
	return worstRatio(s.sum, s.min, s.max, side)
}

// Worst returns the worst aspect ratio of a row holding the given areas laid
// along a side of the given length:
//
//	max(side²·maxArea / sum², sum² / (side²·minArea))
//
// An empty row has worst 0.
func Worst(areas []float64, side float64) float64 {
	var s rowStats
	for _, a := range areas {
		s = s.with(a)
	}
	return s.worst(side)
}

func worstRatio(sum, min, max, side float64) float64 {
	s2 := side * side
	sum2 := sum * sum
	return math.Max(s2*max/sum2, sum2/(s2*min))
}

// squarify consumes entries row by row, threading the empty area through
// each step.
func squarify(entries []entry, empty geom.Rect, place func(entry, geom.Rect)) {
	for len(entries) > 0 {
		n := rowLength(entries, math.Min(empty.W, empty.H))
		empty = layoutRow(entries[:n], empty, place)
		entries = entries[n:]
	}
}

// rowLength returns how many leading entries make up the next row. The row
// grows while appending the next entry does not make it worse.
func rowLength(entries []entry, side float64) int {
	row := rowStats{}.with(entries[0].area)
	n := 1
	for n < len(entries) {
		grown := row.with(entries[n].area)
		if grown.worst(side) > row.worst(side) {
			break
		}
		row = grown
		n++
	}
	return n
}

// layoutRow places a closed row inside empty and returns the area left over.
func layoutRow(row []entry, empty geom.Rect, place func(entry, geom.Rect)) geom.Rect {
	var sum float64
	for _, e := range row {
		sum += e.area
	}

	orient := orientationOf(empty)
	var strip geom.Rect
	switch orient {
	case horizontal:
		if empty.H <= 0 {
			placeDegenerate(row, empty, place)
			return empty
		}
		strip = geom.Rect{X: empty.X, Y: empty.Y, W: sum / empty.H, H: empty.H}
		empty = geom.Rect{X: empty.X + strip.W, Y: empty.Y, W: math.Max(0, empty.W-strip.W), H: empty.H}
	default:
		if empty.W <= 0 {
			placeDegenerate(row, empty, place)
			return empty
		}
		strip = geom.Rect{X: empty.X, Y: empty.Y, W: empty.W, H: sum / empty.W}
		empty = geom.Rect{X: empty.X, Y: empty.Y + strip.H, W: empty.W, H: math.Max(0, empty.H-strip.H)}
	}

	x, y := strip.X, strip.Y
	for _, e := range row {
		var r geom.Rect
		if orient == horizontal {
			r = geom.Rect{X: x, Y: y, W: strip.W, H: e.area / strip.W}
			y += r.H
		} else {
			r = geom.Rect{X: x, Y: y, W: e.area / strip.H, H: strip.H}
			x += r.W
		}
		place(e, r)
	}
	return empty
}

// placeDegenerate handles rows left over after rounding collapsed the empty
// area to a line.
func placeDegenerate(row []entry, empty geom.Rect, place func(entry, geom.Rect)) {
	for _, e := range row {
		place(e, geom.Rect{X: empty.X, Y: empty.Y})
	}
}

// slice lays every entry out in one band spanning the container.
func slice(entries []entry, container geom.Rect, place func(entry, geom.Rect)) {
	x, y := container.X, container.Y
	horiz := orientationOf(container) == horizontal
	for _, e := range entries {
		var r geom.Rect
		if horiz {
			r = geom.Rect{X: x, Y: y, W: e.area / container.H, H: container.H}
			x += r.W
		} else {
			r = geom.Rect{X: x, Y: y, W: container.W, H: e.area / container.W}
			y += r.H
		}
		place(e, r)
	}
}
