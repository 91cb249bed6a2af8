package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/mosaic/pkg/scene"
	"github.com/matzehuels/mosaic/pkg/sink/styles"
)

const tileInteractionCSS = `
    .tile { transition: opacity 0.2s ease; }
    .tile:hover { opacity: 0.75; }
    .tile-text { pointer-events: none; }`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	gap         float64
	labels      bool
	images      bool
	interactive bool
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithoutLabels() SVGOption           { return func(r *svgRenderer) { r.labels = false } }
func WithImages() SVGOption              { return func(r *svgRenderer) { r.images = true } }
func WithInteraction() SVGOption         { return func(r *svgRenderer) { r.interactive = true } }

// WithGap insets every tile by g/2 on each side. Negative values are ignored.
func WithGap(g float64) SVGOption {
	return func(r *svgRenderer) {
		if g > 0 {
			r.gap = g
		}
	}
}

// RenderSVG renders the visible tiles of l as a standalone SVG document.
func RenderSVG(l scene.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	tiles := buildTiles(l, r.gap)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	r.style.RenderDefs(&buf)
	for _, t := range tiles {
		r.style.RenderTile(&buf, t)
	}
	if r.images {
		renderImages(&buf, l, tiles)
	}
	if r.labels {
		for _, t := range tiles {
			r.style.RenderText(&buf, t)
		}
	}
	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", tileInteractionCSS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func buildTiles(l scene.Layout, gap float64) []styles.Tile {
	tiles := make([]styles.Tile, 0, len(l.Tiles))
	for i, t := range l.Tiles {
		if t.Excluded {
			continue
		}
		x, y, w, h := t.X+gap/2, t.Y+gap/2, t.Width-gap, t.Height-gap
		if w <= 0 || h <= 0 {
			continue
		}
		tiles = append(tiles, styles.Tile{
			ID:    t.ID,
			Label: t.DisplayLabel(),
			Index: i,
			X:     x, Y: y,
			W: w, H: h,
			CX: x + w/2, CY: y + h/2,
		})
	}
	return tiles
}

func renderImages(buf *bytes.Buffer, l scene.Layout, tiles []styles.Tile) {
	for _, t := range tiles {
		src := l.Tiles[t.Index].Source
		if src == "" {
			continue
		}
		fmt.Fprintf(buf, `  <image href="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="xMidYMid slice"/>`+"\n",
			styles.EscapeXML(src), t.X, t.Y, t.W, t.H)
	}
}
