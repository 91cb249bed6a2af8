// Package api serves treemap and mosaic layouts over HTTP.
//
// # Routes
//
//	GET  /healthz              liveness and build information
//	POST /v1/treemap           squarified treemap of weighted items
//	POST /v1/mosaic            justified mosaic of sized items
//	POST /v1/render            re-render a previously computed layout
//
// Layout endpoints accept a JSON body:
//
//	{
//	  "items":   [{"id": "a", "weight": 40}, {"id": "b", "weight": 10}],
//	  "options": {"width": 400, "height": 300}
//	}
//
// The response is a JSON envelope holding the layout document, or the raw
// SVG when the request carries ?format=svg. Unset options fall back to the
// server defaults. Validation failures map to 400 responses carrying the
// machine-readable error code.
//
// The server runs every request through a [pipeline.Runner], so identical
// requests are answered from the cache. Use [NewRunner] to build a runner
// whose keys do not collide with CLI entries in a shared cache.
package api
