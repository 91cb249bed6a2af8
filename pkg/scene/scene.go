package scene

import (
	"math"

	"github.com/matzehuels/mosaic/pkg/geom"
	"github.com/matzehuels/mosaic/pkg/mosaic"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

// =============================================================================
// Constants
// =============================================================================

// Layout kinds.
const (
	KindTreemap = "treemap"
	KindMosaic  = "mosaic"
)

// Visual styles for rendering.
const (
	StyleSimple  = "simple"
	StyleOutline = "outline"
)

// =============================================================================
// Layout - Unified Layout Format
// =============================================================================

// Layout is the serialized form of a computed treemap or mosaic.
type Layout struct {
	// Discriminator
	Kind string `json:"kind"`

	// ID is assigned by the API and the pipeline; empty for ad-hoc layouts.
	ID string `json:"id,omitempty"`

	// Frame dimensions
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Style  string  `json:"style,omitempty"`

	Tiles []Tile `json:"tiles"`

	// Treemap-specific
	Algorithm   string  `json:"algorithm,omitempty"`
	TotalWeight float64 `json:"total_weight,omitempty"`

	// Mosaic-specific
	Rows        []Row   `json:"rows,omitempty"`
	MaxItemSize float64 `json:"max_item_size,omitempty"`
	Clamp       string  `json:"clamp,omitempty"`
}

// IsTreemap returns true if this is a treemap layout.
func (l *Layout) IsTreemap() bool { return l.Kind == KindTreemap }

// IsMosaic returns true if this is a mosaic layout.
func (l *Layout) IsMosaic() bool { return l.Kind == KindMosaic }

// Bounds returns the frame rectangle anchored at the origin.
func (l *Layout) Bounds() geom.Rect { return geom.Rect{W: l.Width, H: l.Height} }

// Visible returns the tiles that cover area, in input order.
func (l *Layout) Visible() []Tile {
	out := make([]Tile, 0, len(l.Tiles))
	for _, t := range l.Tiles {
		if !t.Excluded && !t.Rect().IsEmpty() {
			out = append(out, t)
		}
	}
	return out
}

// =============================================================================
// Tile - Positioned Item
// =============================================================================

// Tile is one positioned input item.
type Tile struct {
	ID     string  `json:"id"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Treemap
	Weight   float64 `json:"weight,omitempty"`
	Excluded bool    `json:"excluded,omitempty"`

	// Mosaic
	Row    int    `json:"row,omitempty"`
	Source string `json:"source,omitempty"` // image path or URL
}

// Rect returns the tile's rectangle.
func (t Tile) Rect() geom.Rect { return geom.Rect{X: t.X, Y: t.Y, W: t.Width, H: t.Height} }

// DisplayLabel returns the label if set, otherwise the ID.
func (t Tile) DisplayLabel() string {
	if t.Label != "" {
		return t.Label
	}
	return t.ID
}

// Row is one band of a mosaic layout.
type Row struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
	Tiles  []int   `json:"tiles"`
}

// =============================================================================
// Conversion
// =============================================================================

// FromTreemap converts a treemap result. NaN weights of excluded items are
// stored as zero so the document stays valid JSON.
func FromTreemap(res treemap.Result, alg treemap.Algorithm) Layout {
	l := Layout{
		Kind:        KindTreemap,
		Width:       res.Container.W,
		Height:      res.Container.H,
		Algorithm:   alg.String(),
		TotalWeight: res.TotalWeight,
		Tiles:       make([]Tile, len(res.Placements)),
	}
	for i, p := range res.Placements {
		w := p.Weight
		if math.IsNaN(w) {
			w = 0
		}
		l.Tiles[i] = tileFromRect(p.ID, p.Rect)
		l.Tiles[i].Weight = w
		l.Tiles[i].Excluded = p.Excluded
	}
	return l
}

// FromMosaic converts a mosaic result computed with opts.
func FromMosaic(res mosaic.Result, opts mosaic.Options) Layout {
	maxSize := opts.MaxItemSize
	if maxSize == 0 {
		maxSize = mosaic.DefaultMaxItemSize
	}
	l := Layout{
		Kind:        KindMosaic,
		Width:       math.Max(0, opts.ContainerWidth),
		Height:      res.Height,
		MaxItemSize: maxSize,
		Clamp:       opts.Clamp.String(),
		Tiles:       make([]Tile, len(res.Placements)),
		Rows:        make([]Row, len(res.Rows)),
	}
	for i, p := range res.Placements {
		l.Tiles[i] = tileFromRect(p.ID, p.Rect)
		l.Tiles[i].Row = p.Row
	}
	for i, r := range res.Rows {
		l.Rows[i] = Row{Top: r.Top, Height: r.Height, Tiles: append([]int(nil), r.Items...)}
	}
	return l
}

func tileFromRect(id string, r geom.Rect) Tile {
	return Tile{ID: id, X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}
