package mosaic

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/geom"
)

// DefaultMaxItemSize is the cap applied to the larger side of each item
// when Options.MaxItemSize is zero.
const DefaultMaxItemSize = 300.0

// ClampMode selects how [Justify] treats rows that the equal-delta
// adjustment would collapse.
type ClampMode int

const (
	// ClampProportional falls back to uniform scaling for rows whose
	// adjusted width or height would drop to zero or below.
	ClampProportional ClampMode = iota
	// ClampNone applies the equal delta unconditionally.
	ClampNone
)

// String returns the mode name used in config files and flags.
func (m ClampMode) String() string {
	if m == ClampNone {
		return "none"
	}
	return "proportional"
}

// ParseClampMode converts a flag or config value into a ClampMode.
// The empty string selects [ClampProportional].
func ParseClampMode(s string) (ClampMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "proportional":
		return ClampProportional, nil
	case "none":
		return ClampNone, nil
	}
	return ClampProportional, errors.New(errors.ErrCodeInvalidInput, "unknown clamp mode %q (must be proportional or none)", s)
}

// Item is an input element with its natural size, e.g. an image in pixels.
type Item struct {
	ID      string
	Natural geom.Size
}

// Options configures [Layout].
type Options struct {
	// ContainerWidth is the width every row is justified to.
	ContainerWidth float64

	// MaxItemSize caps the larger side of each item before flowing.
	// Zero selects DefaultMaxItemSize.
	MaxItemSize float64

	Clamp ClampMode
}

// Placement is the final rectangle of one item.
type Placement struct {
	ID    string
	Index int // position in the input
	Row   int // index into Result.Rows
	Rect  geom.Rect
}

// Row is one horizontal band of the mosaic.
type Row struct {
	Index  int
	Top    float64
	Height float64

	// Width is the summed item width. After Justify it equals the
	// container width up to rounding.
	Width float64

	// Items lists placement indices left to right.
	Items []int
}

// Result holds placements in input order and the rows they form.
type Result struct {
	Placements []Placement
	Rows       []Row

	// Height is the total height of all rows.
	Height float64
}

// Layout measures, flows and justifies items into rows of
// opts.ContainerWidth.
func Layout(items []Item, opts Options) (Result, error) {
	maxSize := opts.MaxItemSize
	if err := errors.ValidateDimension("max item size", maxSize); err != nil {
		return Result{}, err
	}
	if maxSize == 0 {
		maxSize = DefaultMaxItemSize
	}
	width := opts.ContainerWidth
	if math.IsNaN(width) || math.IsInf(width, 0) {
		return Result{}, errors.New(errors.ErrCodeInvalidSize, "container width must be finite, got %v", width)
	}
	for i, it := range items {
		if err := errors.ValidateSize(it.Natural.W, it.Natural.H); err != nil {
			return Result{}, fmt.Errorf("item %d (%s): %w", i, it.ID, err)
		}
	}
	if width <= 0 || len(items) == 0 {
		return Result{}, nil
	}

	res := Justify(Flow(Measure(items, maxSize), width), width, opts.Clamp)
	for i := range res.Placements {
		res.Placements[i].ID = items[res.Placements[i].Index].ID
	}
	return res, nil
}

// Measure returns each item's natural size, downscaled uniformly so that
// neither side exceeds limit.
func Measure(items []Item, limit float64) []geom.Size {
	sizes := make([]geom.Size, len(items))
	for i, it := range items {
		sizes[i] = capSize(it.Natural, limit)
	}
	return sizes
}

func capSize(s geom.Size, limit float64) geom.Size {
	if s.W <= limit && s.H <= limit {
		return s
	}
	return s.Scale(limit / math.Max(s.W, s.H))
}

// FitToRow rescales s uniformly to the given row height.
func FitToRow(s geom.Size, height float64) geom.Size {
	return s.Scale(height / s.H)
}

// Flow packs sizes into rows no wider than width, except that the item
// which overflows a row stays in it. Rows are stacked by their unjustified
// height.
func Flow(sizes []geom.Size, width float64) Result {
	res := Result{Placements: make([]Placement, len(sizes))}

	var row Row
	open := false
	var x float64
	for i, s := range sizes {
		if !open {
			row = Row{Index: len(res.Rows), Top: res.Height, Height: s.H}
			open = true
			x = 0
		} else {
			s = FitToRow(s, row.Height)
		}

		res.Placements[i] = Placement{
			Index: i,
			Row:   row.Index,
			Rect:  geom.Rect{X: x, Y: row.Top, W: s.W, H: s.H},
		}
		row.Items = append(row.Items, i)
		x += s.W
		row.Width = x

		if x > width {
			res.Rows = append(res.Rows, row)
			res.Height += row.Height
			open = false
		}
	}
	if open {
		res.Rows = append(res.Rows, row)
		res.Height += row.Height
	}
	return res
}

// Justify returns a copy of flow in which every row spans exactly width and
// rows are stacked contiguously from y=0.
func Justify(flow Result, width float64, clamp ClampMode) Result {
	res := Result{
		Placements: slices.Clone(flow.Placements),
		Rows:       make([]Row, len(flow.Rows)),
	}

	for ri, row := range flow.Rows {
		out := row
		out.Items = slices.Clone(row.Items)
		out.Top = res.Height

		// adjust maps an item's flowed size to its justified size.
		adjust := func(s geom.Size) geom.Size { return s }
		if n := float64(len(row.Items)); row.Width != width && n > 0 {
			delta := (row.Width - width) / n
			if clamp == ClampProportional && collapses(res.Placements, row, delta) {
				f := width / row.Width
				out.Height = row.Height * f
				adjust = func(s geom.Size) geom.Size { return s.Scale(f) }
			} else {
				out.Height = row.Height - delta
				adjust = func(s geom.Size) geom.Size { return geom.Size{W: s.W - delta, H: s.H - delta} }
			}
		}

		var x float64
		for _, idx := range out.Items {
			p := &res.Placements[idx]
			s := adjust(p.Rect.Size())
			p.Row = ri
			p.Rect = geom.Rect{X: x, Y: out.Top, W: s.W, H: s.H}
			x += s.W
		}
		out.Width = x

		res.Rows[ri] = out
		res.Height += out.Height
	}
	return res
}

// collapses reports whether subtracting delta would leave the row or any of
// its items without positive extent.
func collapses(placements []Placement, row Row, delta float64) bool {
	if row.Height-delta <= 0 {
		return true
	}
	for _, idx := range row.Items {
		if placements[idx].Rect.W-delta <= 0 {
			return true
		}
	}
	return false
}
