package styles

import (
	"bytes"
	"fmt"
)

// Outline draws unfilled tiles with a thin dark border.
type Outline struct{}

func (Outline) Name() string { return "outline" }

func (Outline) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n    <style>.tile { fill: none; stroke: #333333; stroke-width: 1; }</style>\n  </defs>\n")
}

func (Outline) RenderTile(buf *bytes.Buffer, t Tile) {
	fmt.Fprintf(buf, `  <rect id="tile-%d" class="tile" x="%.2f" y="%.2f" width="%.2f" height="%.2f"><title>%s</title></rect>`+"\n",
		t.Index, t.X, t.Y, t.W, t.H, EscapeXML(t.Label))
}

func (Outline) RenderText(buf *bytes.Buffer, t Tile) { writeText(buf, t, "#333333") }
