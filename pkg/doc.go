// Package pkg provides the core libraries for mosaic rectangle layouts.
//
// # Overview
//
// Mosaic places items inside a container. Weighted items become a
// squarified treemap that tiles a fixed rectangle; sized items (usually
// photos) become justified rows that exactly fill the container width.
// The pkg directory is organized into three areas:
//
//  1. Engines: [geom], [treemap] and [mosaic] are pure geometry with no I/O
//  2. Documents: [io] reads items, [scene] holds computed layouts, [sink]
//     renders them
//  3. Orchestration: [pipeline], [cache], [config], [api] and
//     [observability]
//
// # Architecture
//
// The typical data flow through mosaic:
//
//	items.yaml / image directory
//	         ↓
//	    [io] package (records, natural sizes from image headers)
//	         ↓
//	    [treemap] or [mosaic] package (placements)
//	         ↓
//	    [scene] package (layout document)
//	         ↓
//	    [sink] package (SVG or JSON)
//
// # Quick Start
//
// Lay out three photos in rows 900 units wide:
//
//	import (
//	    "github.com/matzehuels/mosaic/pkg/geom"
//	    "github.com/matzehuels/mosaic/pkg/mosaic"
//	)
//
//	res, err := mosaic.Layout([]mosaic.Item{
//	    {ID: "p1", Natural: geom.Size{W: 400, H: 300}},
//	    {ID: "p2", Natural: geom.Size{W: 300, H: 300}},
//	    {ID: "p3", Natural: geom.Size{W: 300, H: 100}},
//	}, mosaic.Options{ContainerWidth: 900})
//	// res.Height == 162.5
//
// The [pipeline] package wraps the same steps with validation, caching and
// rendering, and is what the CLI and the HTTP API call.
//
// [geom]: github.com/matzehuels/mosaic/pkg/geom
// [treemap]: github.com/matzehuels/mosaic/pkg/treemap
// [mosaic]: github.com/matzehuels/mosaic/pkg/mosaic
// [io]: github.com/matzehuels/mosaic/pkg/io
// [scene]: github.com/matzehuels/mosaic/pkg/scene
// [sink]: github.com/matzehuels/mosaic/pkg/sink
// [pipeline]: github.com/matzehuels/mosaic/pkg/pipeline
// [cache]: github.com/matzehuels/mosaic/pkg/cache
// [config]: github.com/matzehuels/mosaic/pkg/config
// [api]: github.com/matzehuels/mosaic/pkg/api
// [observability]: github.com/matzehuels/mosaic/pkg/observability
package pkg
