package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	mio "github.com/matzehuels/mosaic/pkg/io"
	"github.com/matzehuels/mosaic/pkg/mosaic"
	"github.com/matzehuels/mosaic/pkg/pipeline"
	"github.com/matzehuels/mosaic/pkg/scene"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

// Explorer styles
var (
	exploreSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	exploreDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	exploreErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// tileGlyphs label tiles in the preview grid; they repeat after 62 tiles.
const tileGlyphs = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		kind   string
		f      layoutFlags
		step   float64
		listed int
	)

	cmd := &cobra.Command{
		Use:   "explore [items.json|items.yaml|image-dir]",
		Short: "Resize a layout interactively",
		Long: `Resize a layout interactively.

The explorer draws the layout as a character grid and recomputes it on every
key press, so you can see how rows and tiles reflow as the container changes.

Keys:
  ←/→  shrink/grow the container width
  ↑/↓  shrink/grow the container height (treemap)
  a    switch algorithm (treemap) or clamp mode (mosaic)
  tab  select the next tile
  q    quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateKind(kind); err != nil {
				return err
			}
			opts := c.defaultOptions(kind)
			f.apply(cmd, &opts)
			return c.runExplore(cmd.Context(), args[0], opts, step, listed)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", scene.KindTreemap, "layout kind: treemap, mosaic")
	cmd.Flags().Float64Var(&f.width, "width", pipeline.DefaultWidth, "initial container width")
	cmd.Flags().Float64Var(&f.height, "height", pipeline.DefaultHeight, "initial container height (treemap)")
	cmd.Flags().Float64Var(&f.maxItemSize, "max-size", 300, "cap on the larger item side (mosaic)")
	cmd.Flags().Float64Var(&step, "step", 0.1, "fraction of the width added or removed per key press")
	cmd.Flags().IntVar(&listed, "table", 8, "number of tiles listed under the preview")

	return cmd
}

// runExplore loads the input and runs the explorer until the user quits.
func (c *CLI) runExplore(ctx context.Context, input string, opts pipeline.Options, step float64, rows int) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	recs, err := pipeline.LoadFile(ctx, input)
	if err != nil {
		return err
	}

	m := newExploreModel(recs, opts, step, rows)
	if m.err != nil {
		return m.err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// exploreModel - Interactive resize
// =============================================================================

// exploreModel is the bubbletea model for the explorer.
type exploreModel struct {
	recs   []mio.Record
	opts   pipeline.Options
	layout scene.Layout
	err    error

	step      float64
	cursor    int
	cols      int
	rows      int
	tableRows int
}

func newExploreModel(recs []mio.Record, opts pipeline.Options, step float64, tableRows int) exploreModel {
	if step <= 0 || step >= 1 {
		step = 0.1
	}
	m := exploreModel{
		recs:      recs,
		opts:      opts,
		step:      step,
		cols:      80,
		rows:      20,
		tableRows: tableRows,
	}
	m.relayout()
	return m
}

// relayout recomputes the layout for the current options.
func (m *exploreModel) relayout() {
	m.layout, m.err = pipeline.GenerateLayout(m.recs, m.opts)
	if n := len(m.layout.Tiles); m.cursor >= n {
		m.cursor = 0
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.opts.Width = math.Max(1, math.Round(m.opts.Width*(1-m.step)))
			m.relayout()
		case "right", "l":
			m.opts.Width = math.Round(m.opts.Width * (1 + m.step))
			m.relayout()
		case "up", "k":
			if m.opts.IsTreemap() {
				m.opts.Height = math.Max(1, math.Round(m.opts.Height*(1-m.step)))
				m.relayout()
			}
		case "down", "j":
			if m.opts.IsTreemap() {
				m.opts.Height = math.Round(m.opts.Height * (1 + m.step))
				m.relayout()
			}
		case "a":
			m.toggleMode()
			m.relayout()
		case "tab":
			if n := len(m.layout.Tiles); n > 0 {
				m.cursor = (m.cursor + 1) % n
			}
		}
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-2, 10)
		m.rows = max(msg.Height-m.tableRows-10, 5)
	}
	return m, nil
}

// toggleMode switches the treemap algorithm or the mosaic clamp mode.
func (m *exploreModel) toggleMode() {
	if m.opts.IsMosaic() {
		if mode, _ := m.opts.ClampMode(); mode == mosaic.ClampProportional {
			m.opts.Clamp = mosaic.ClampNone.String()
		} else {
			m.opts.Clamp = mosaic.ClampProportional.String()
		}
		return
	}
	if alg, _ := m.opts.TreemapAlgorithm(); alg == treemap.Squarified {
		m.opts.Algorithm = treemap.Slice.String()
	} else {
		m.opts.Algorithm = treemap.Squarified.String()
	}
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore " + m.opts.Kind))
	b.WriteString("\n")
	b.WriteString(exploreDimStyle.Render("←/→ width  ↑/↓ height  a mode  tab select  q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(exploreErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	for _, line := range renderPreview(m.layout, m.cols, m.rows) {
		b.WriteString(m.highlight(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.tileTable())
	b.WriteString("\n")

	return b.String()
}

// statusLine summarizes the container and the current layout.
func (m exploreModel) statusLine() string {
	parts := []string{
		fmt.Sprintf("width %s", StyleNumber.Render(fmt.Sprintf("%.0f", m.opts.Width))),
		fmt.Sprintf("height %s", StyleNumber.Render(fmt.Sprintf("%.1f", m.layout.Height))),
		fmt.Sprintf("tiles %s", StyleNumber.Render(fmt.Sprint(len(m.layout.Visible())))),
	}
	if m.opts.IsMosaic() {
		mode, _ := m.opts.ClampMode()
		parts = append(parts,
			fmt.Sprintf("rows %s", StyleNumber.Render(fmt.Sprint(len(m.layout.Rows)))),
			fmt.Sprintf("clamp %s", StyleHighlight.Render(mode.String())))
	} else {
		alg, _ := m.opts.TreemapAlgorithm()
		parts = append(parts, fmt.Sprintf("algorithm %s", StyleHighlight.Render(alg.String())))
	}
	return strings.Join(parts, exploreDimStyle.Render(" · "))
}

// highlight renders the selected tile's glyph in the selection style.
func (m exploreModel) highlight(line string) string {
	if len(m.layout.Tiles) == 0 {
		return line
	}
	g := string(glyphFor(m.cursor))
	return strings.ReplaceAll(line, g, exploreSelectedStyle.Render(g))
}

// tileTable lists the tiles around the cursor.
func (m exploreModel) tileTable() string {
	n := len(m.layout.Tiles)
	if n == 0 || m.tableRows <= 0 {
		return exploreDimStyle.Render("  no tiles")
	}
	start := max(0, min(m.cursor-m.tableRows/2, n-m.tableRows))
	end := min(n, start+m.tableRows)

	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		t := m.layout.Tiles[i]
		aspect := "-"
		if t.Height > 0 {
			aspect = fmt.Sprintf("%.2f", t.Width/t.Height)
		}
		rows = append(rows, []string{
			string(glyphFor(i)),
			t.DisplayLabel(),
			fmt.Sprintf("%.1f", t.X),
			fmt.Sprintf("%.1f", t.Y),
			fmt.Sprintf("%.1f", t.Width),
			fmt.Sprintf("%.1f", t.Height),
			aspect,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Tile", "X", "Y", "W", "H", "W/H").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := start + row
			if idx == m.cursor {
				return exploreSelectedStyle
			}
			if idx < n && m.layout.Tiles[idx].Excluded {
				return exploreDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render() + "\n" + exploreDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, n))
}

// =============================================================================
// Preview
// =============================================================================

// renderPreview rasterizes the visible tiles of l into at most cols×rows
// character cells. Terminal cells are about twice as tall as wide, so one
// row covers twice the vertical distance of one column.
func renderPreview(l scene.Layout, cols, rows int) []string {
	if l.Width <= 0 || l.Height <= 0 || cols <= 0 || rows <= 0 {
		return nil
	}
	s := math.Min(float64(cols)/l.Width, 2*float64(rows)/l.Height)
	sx, sy := s, s/2

	gw := min(cols, int(math.Ceil(l.Width*sx-1e-9)))
	gh := min(rows, int(math.Ceil(l.Height*sy-1e-9)))
	grid := make([][]byte, gh)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", gw))
	}

	for i, t := range l.Tiles {
		if t.Excluded || t.Rect().IsEmpty() {
			continue
		}
		c0, c1 := span(t.X, t.Width, sx, gw)
		r0, r1 := span(t.Y, t.Height, sy, gh)
		g := glyphFor(i)
		for r := r0; r < r1; r++ {
			for c := c0; c < c1; c++ {
				grid[r][c] = g
			}
		}
	}

	lines := make([]string, gh)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return lines
}

// span maps [pos, pos+size) onto cell indices, covering at least one cell.
func span(pos, size, scale float64, limit int) (int, int) {
	lo := int(math.Round(pos * scale))
	hi := int(math.Round((pos + size) * scale))
	lo = min(max(lo, 0), limit)
	hi = min(max(hi, lo), limit)
	if hi == lo && lo < limit {
		hi = lo + 1
	}
	return lo, hi
}

func glyphFor(i int) byte {
	return tileGlyphs[i%len(tileGlyphs)]
}
