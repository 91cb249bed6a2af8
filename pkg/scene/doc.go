// Package scene defines the serialization format shared by every mosaic
// output: the CLI's layout files, the HTTP API responses and the cache.
//
// # Layout Document
//
// [Layout] is a discriminated union keyed by Kind:
//
//	Treemap ("treemap"):
//	  - Algorithm, TotalWeight
//	  - Tiles carry Weight and Excluded
//
//	Mosaic ("mosaic"):
//	  - MaxItemSize, Clamp
//	  - Rows: horizontal bands with their tile indices
//	  - Tiles carry Row and, when built from images, Source
//
// Tiles are always stored in input order, so tile i describes input item i.
//
// # Conversion
//
// [FromTreemap] and [FromMosaic] convert layout engine results into a
// Layout. The document is self-contained: rendering it with pkg/sink does
// not need the original input.
//
// # Serialization
//
// [Marshal], [Unmarshal], [ReadFile] and [WriteFile] move layouts to and from
// JSON. Unmarshal validates the discriminator and the frame dimensions.
package scene
