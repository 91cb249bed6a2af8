// Package styles defines how tiles are drawn by the SVG sink.
package styles

import (
	"bytes"
	"strings"

	"github.com/matzehuels/mosaic/pkg/errors"
)

// Style defines the visual appearance of a rendered layout.
// Implementations control how tiles and their labels are drawn.
type Style interface {
	// Name returns the identifier used in config files and layout documents.
	Name() string
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderTile writes the SVG for a single tile shape.
	RenderTile(buf *bytes.Buffer, t Tile)
	// RenderText writes the SVG for a tile's label text.
	RenderText(buf *bytes.Buffer, t Tile)
}

// Tile contains all data needed to render a single tile.
type Tile struct {
	ID         string  // Item identifier
	Label      string  // Display text
	Index      int     // Position in the layout's tile list
	X, Y, W, H float64 // Position and dimensions after gap inset
	CX, CY     float64 // Center coordinates (for text)
}

// ByName returns the style registered under name. The empty name selects
// [Simple].
func ByName(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "simple":
		return Simple{}, nil
	case "outline":
		return Outline{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (must be simple or outline)", name)
}

// Names lists the available styles.
func Names() []string { return []string{"simple", "outline"} }
