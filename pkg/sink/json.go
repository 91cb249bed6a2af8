package sink

import "github.com/matzehuels/mosaic/pkg/scene"

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style string
	id    string
}

// WithJSONStyle records the style name in the JSON output for round-trip
// rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONID stamps the document with a layout identifier.
func WithJSONID(id string) JSONOption { return func(r *jsonRenderer) { r.id = id } }

// RenderJSON exports the layout as a pretty-printed JSON document. It does
// not modify l and is safe to call concurrently.
func RenderJSON(l scene.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style != "" {
		l.Style = r.style
	}
	if r.id != "" {
		l.ID = r.id
	}
	return scene.Marshal(l)
}
