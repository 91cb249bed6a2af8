package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mosaic/pkg/pipeline"
)

// =============================================================================
// Palette
// =============================================================================

// Terminal colors (ANSI 256). Tiles in the explorer reuse the same set.
var (
	colorCyan   = lipgloss.Color("36")  // selection, numbers
	colorGreen  = lipgloss.Color("35")  // written files, cache hits
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // failures
	colorBlue   = lipgloss.Color("75")  // suggested commands
	colorWhite  = lipgloss.Color("255") // paths and values
	colorGray   = lipgloss.Color("245") // labels, table headers
	colorDim    = lipgloss.Color("240") // hints and separators
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle renders command and explorer headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight renders the active algorithm or clamp mode.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim renders hints and stats.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue renders file paths and config values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber renders dimensions and counts.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning renders warning text.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey      = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"

	labelCached = "cached"
	labelFresh  = "fresh"
)

// =============================================================================
// Status Lines
// =============================================================================

// status prints msg behind a colored marker.
func status(marker lipgloss.Style, icon, msg string) {
	fmt.Println(marker.Render(icon) + " " + msg)
}

func printSuccess(format string, args ...any) {
	status(styleIconSuccess, iconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	status(styleIconError, iconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(styleIconWarning, iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(styleIconInfo, iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written artifact.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints one aligned setting, as used by serve.
func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Layout Summary
// =============================================================================

// printStats prints item, tile and row counts and whether the layout came
// from the cache.
func printStats(stats pipeline.Stats, cached bool) {
	fmt.Println("  " + statsLine(stats, cached))
}

func statsLine(stats pipeline.Stats, cached bool) string {
	var parts []string
	if stats.ItemCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d items", stats.ItemCount)))
	}
	parts = append(parts, StyleDim.Render(fmt.Sprintf("%d tiles", stats.TileCount)))
	if stats.RowCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d rows", stats.RowCount)))
	}
	if cached {
		parts = append(parts, styleCached.Render(labelCached))
	} else {
		parts = append(parts, styleComputed.Render(labelFresh))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// printNextStep suggests the command to run next, e.g. explore after a
// layout was written.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}
