// Package io reads layout input from files, readers and image directories,
// and writes it back out.
//
// # Overview
//
// Both layout engines consume flat item lists. This package decodes those
// lists from JSON or YAML documents and derives them from directories of
// images, then converts them into [treemap.Item] or [mosaic.Item] values.
//
// # Item Format
//
// A document is either a bare array or an object with an "items" array:
//
//	{
//	  "items": [
//	    {"id": "src", "label": "Source", "weight": 120},
//	    {"id": "docs", "weight": 30},
//	    {"id": "hero", "width": 1920, "height": 1080, "source": "img/hero.jpg"}
//	  ]
//	}
//
// The YAML form uses the same keys. Fields:
//
//   - id: identifier; positional "item-N" IDs are assigned when empty
//   - label: display text (defaults to id)
//   - weight: treemap weight
//   - width, height: natural mosaic size
//   - source: image path or URL, embedded by the SVG sink
//
// # Images
//
// [ScanImages] walks one directory level and reads only the header of each
// PNG, JPEG, GIF, BMP, TIFF or WebP file to learn its pixel size. Pixel data
// is never decoded. Files that are not images are skipped.
//
// # Import
//
// [ImportFile] dispatches on the path: directories are scanned for images,
// ".yaml"/".yml" files are read as YAML and everything else as JSON.
//
//	recs, err := io.ImportFile("items.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	items, err := io.TreemapItems(recs)
//
// [treemap.Item]: github.com/matzehuels/mosaic/pkg/treemap.Item
// [mosaic.Item]: github.com/matzehuels/mosaic/pkg/mosaic.Item
package io
