// Package sink provides output format renderers for computed layouts.
//
// # Overview
//
// A "sink" transforms a [scene.Layout] into a final output format. This
// package provides renderers for:
//
//   - SVG: vector output with one rect per visible tile
//   - JSON: the layout document itself, for external tools and caching
//
// Pixel formats are out of scope; convert the SVG with an external tool if
// a raster is needed.
//
// # SVG Output
//
// [RenderSVG] draws every visible tile (excluded and zero-area tiles are
// skipped) in input order:
//
//	svg := sink.RenderSVG(layout,
//	    sink.WithStyle(styles.Outline{}),
//	    sink.WithGap(4),
//	    sink.WithImages(),
//	)
//
// # SVG Options
//
//   - [WithStyle]: Visual style ([styles.Simple] or [styles.Outline])
//   - [WithGap]: Inset every tile by half the gap on each side
//   - [WithoutLabels]: Omit tile labels
//   - [WithImages]: Draw mosaic tiles that carry a Source as <image> elements
//   - [WithInteraction]: Add hover highlighting CSS
//
// # JSON Output
//
// [RenderJSON] exports the layout document. Re-reading it with
// [scene.Unmarshal] and rendering again produces the same SVG.
//
// [scene.Layout]: github.com/matzehuels/mosaic/pkg/scene.Layout
// [scene.Unmarshal]: github.com/matzehuels/mosaic/pkg/scene.Unmarshal
package sink
