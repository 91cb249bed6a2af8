package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"unicode/utf8"
)

const (
	fontHeightRatio  = 0.6
	fontWidthRatio   = 0.85
	fontCharWidth    = 0.55
	fontSizeMin      = 8.0
	fontSizeMax      = 24.0
	rotateSizeDampen = 0.75
)

// labelLen counts characters, not bytes.
func labelLen(t Tile) int { return utf8.RuneCountInString(t.Label) }

func FontSize(t Tile) float64        { return fontSizeFor(t.W, t.H, labelLen(t)) }
func FontSizeRotated(t Tile) float64 { return fontSizeFor(t.H*rotateSizeDampen, t.W, labelLen(t)) }

func fontSizeFor(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// HasRoom reports whether the tile can hold at least a truncated label at
// the minimum font size.
func HasRoom(t Tile) bool {
	short, long := min(t.W, t.H), max(t.W, t.H)
	return short >= fontSizeMin/fontHeightRatio && long*fontWidthRatio >= 3*fontSizeMin*fontCharWidth
}

func ShouldRotate(t Tile) bool {
	n := labelLen(t)
	horizSize := fontSizeFor(t.W, t.H, n)
	rotSize := fontSizeFor(t.H, t.W, n)
	if n > 10 {
		return rotSize*1.1 >= horizSize
	}
	return rotSize > horizSize
}

func TruncateLabel(t Tile, rotated bool) string {
	label := t.Label
	availW := t.W * fontWidthRatio
	if rotated {
		availW = t.H * fontWidthRatio
	}

	fontSize := FontSize(t)
	if rotated {
		fontSize = FontSizeRotated(t)
	}

	charWidth := fontSize * fontCharWidth
	maxChars := int(availW / charWidth)
	if maxChars < 3 {
		maxChars = 3
	}

	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// writeText draws the label centered in the tile, rotating it for tall
// narrow tiles.
func writeText(buf *bytes.Buffer, t Tile, fill string) {
	if t.Label == "" || !HasRoom(t) {
		return
	}
	rotated := ShouldRotate(t)
	size := FontSize(t)
	if rotated {
		size = FontSizeRotated(t)
	}
	transform := ""
	if rotated {
		transform = fmt.Sprintf(` transform="rotate(-90 %.2f %.2f)"`, t.CX, t.CY)
	}
	fmt.Fprintf(buf, `  <text class="tile-text" data-tile="%d" x="%.2f" y="%.2f" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="central" font-family="sans-serif"%s>%s</text>`+"\n",
		t.Index, t.CX, t.CY, size, fill, transform, EscapeXML(TruncateLabel(t, rotated)))
}
