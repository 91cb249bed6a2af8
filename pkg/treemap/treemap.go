package treemap

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/geom"
)

// Algorithm selects how rows are formed.
type Algorithm int

const (
	// Squarified groups items into rows that minimise the worst aspect ratio.
	Squarified Algorithm = iota
	// Slice places all items in one band across the container.
	Slice
)

// String returns the algorithm name used in config files and flags.
func (a Algorithm) String() string {
	switch a {
	case Slice:
		return "slice"
	default:
		return "squarified"
	}
}

// ParseAlgorithm converts a flag or config value into an Algorithm.
// The empty string selects [Squarified].
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "squarified", "squarify":
		return Squarified, nil
	case "slice":
		return Slice, nil
	}
	return Squarified, errors.New(errors.ErrCodeInvalidInput, "unknown treemap algorithm %q (must be squarified or slice)", s)
}

// Item is a weighted input to the treemap.
type Item struct {
	ID     string
	Weight float64
}

// Placement is the computed rectangle for one input item.
type Placement struct {
	ID     string
	Weight float64

	// Rect is the assigned rectangle. Zero for excluded items.
	Rect geom.Rect

	// Area is the target area weight/total*containerArea.
	Area float64

	// AspectRatio is Rect.W/Rect.H, kept as a diagnostic.
	AspectRatio float64

	// Excluded is set when the weight was NaN or rounded to <= 0.
	Excluded bool
}

// Result is the output of [Layout].
type Result struct {
	Container   geom.Rect
	Placements  []Placement
	TotalWeight float64
}

// ByID maps item IDs to their rectangles. Later duplicates win.
func (r Result) ByID() map[string]geom.Rect {
	m := make(map[string]geom.Rect, len(r.Placements))
	for _, p := range r.Placements {
		m[p.ID] = p.Rect
	}
	return m
}

// Option configures a [Layout] call.
type Option func(*config)

type config struct {
	algorithm Algorithm
}

// WithAlgorithm selects the row-forming algorithm (default [Squarified]).
func WithAlgorithm(a Algorithm) Option {
	return func(c *config) { c.algorithm = a }
}

// Eligible reports whether an item with weight w takes part in the layout.
func Eligible(w float64) bool {
	return !math.IsNaN(w) && math.RoundToEven(w) > 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// entry is an included item with its precomputed target area.
type entry struct {
	index  int
	weight float64
	area   float64
}

// Layout assigns each item a rectangle inside container whose area is
// proportional to its weight. See the package documentation for the rules
// applied to excluded items and degenerate containers.
func Layout(items []Item, container geom.Rect, opts ...Option) (Result, error) {
	cfg := config{algorithm: Squarified}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !isFinite(container.W) || !isFinite(container.H) {
		return Result{}, errors.New(errors.ErrCodeInvalidSize, "container must be finite, got %vx%v", container.W, container.H)
	}
	for i, it := range items {
		if err := errors.ValidateWeight(it.Weight); err != nil {
			return Result{}, fmt.Errorf("item %d (%s): %w", i, it.ID, err)
		}
	}

	res := Result{Container: container}
	if container.IsEmpty() || len(items) == 0 {
		return res, nil
	}

	res.Placements = make([]Placement, len(items))
	entries := make([]entry, 0, len(items))
	for i, it := range items {
		res.Placements[i] = Placement{ID: it.ID, Weight: it.Weight}
		if !Eligible(it.Weight) {
			res.Placements[i].Excluded = true
			continue
		}
		res.TotalWeight += it.Weight
		entries = append(entries, entry{index: i, weight: it.Weight})
	}
	if res.TotalWeight <= 0 {
		return res, nil
	}

	total := container.Area()
	for i := range entries {
		entries[i].area = total * entries[i].weight / res.TotalWeight
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		return cmp.Compare(b.weight, a.weight)
	})

	place := func(e entry, r geom.Rect) {
		p := &res.Placements[e.index]
		p.Rect = r
		p.Area = e.area
		p.AspectRatio = r.AspectRatio()
	}

	switch cfg.algorithm {
	case Slice:
		slice(entries, container, place)
	default:
		squarify(entries, container, place)
	}
	return res, nil
}
