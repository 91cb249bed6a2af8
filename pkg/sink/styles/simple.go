package styles

import (
	"bytes"
	"fmt"
	"hash/fnv"
)

// palette holds muted fills that keep dark labels readable.
var palette = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072",
	"#80b1d3", "#fdb462", "#b3de69", "#fccde5",
	"#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
}

// Simple fills each tile with a palette color derived from its ID.
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderTile(buf *bytes.Buffer, t Tile) {
	fmt.Fprintf(buf, `  <rect id="tile-%d" class="tile" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="#ffffff" stroke-width="1"><title>%s</title></rect>`+"\n",
		t.Index, t.X, t.Y, t.W, t.H, ColorFor(t.ID), EscapeXML(t.Label))
}

func (Simple) RenderText(buf *bytes.Buffer, t Tile) { writeText(buf, t, "#222222") }

// ColorFor returns the palette color for an item ID. The mapping is stable
// across runs.
func ColorFor(id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	return palette[h.Sum32()%uint32(len(palette))]
}
