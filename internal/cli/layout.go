package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/pipeline"
	"github.com/matzehuels/mosaic/pkg/scene"
)

// layoutFlags holds the flags shared by the treemap and mosaic commands.
// Flags override config values only when set explicitly.
type layoutFlags struct {
	output  string
	formats string
	noCache bool
	refresh bool

	// Layout
	width       float64
	height      float64
	algorithm   string
	maxItemSize float64
	clamp       string

	// Render
	style       string
	gap         float64
	noLabels    bool
	images      bool
	interactive bool
}

// register binds the flags for kind to cmd.
func (f *layoutFlags) register(cmd *cobra.Command, kind string) {
	flags := cmd.Flags()

	// Common flags
	flags.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	flags.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	flags.BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")

	// Layout flags
	flags.Float64Var(&f.width, "width", pipeline.DefaultWidth, "container width")
	if kind == scene.KindTreemap {
		flags.Float64Var(&f.height, "height", pipeline.DefaultHeight, "container height")
		flags.StringVar(&f.algorithm, "algorithm", "squarified", "treemap algorithm: squarified, slice")
	} else {
		flags.Float64Var(&f.maxItemSize, "max-size", 300, "cap on the larger side of each item before flowing")
		flags.StringVar(&f.clamp, "clamp", "proportional", "overflow correction when a row would collapse: proportional, none")
		flags.BoolVar(&f.images, "images", false, "embed item sources as <image> elements")
	}

	// Render flags
	flags.StringVar(&f.style, "style", pipeline.DefaultStyle, "visual style: simple, outline")
	flags.Float64Var(&f.gap, "gap", 0, "gap between tiles in pixels")
	flags.BoolVar(&f.noLabels, "no-labels", false, "omit tile labels")
	flags.BoolVar(&f.interactive, "interactive", false, "add hover highlighting to the SVG")
}

// apply copies explicitly set flags onto opts.
func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	changed := cmd.Flags().Changed
	if changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	if changed("algorithm") {
		opts.Algorithm = f.algorithm
	}
	if changed("max-size") {
		opts.MaxItemSize = f.maxItemSize
	}
	if changed("clamp") {
		opts.Clamp = f.clamp
	}
	if changed("style") {
		opts.Style = f.style
	}
	if changed("gap") {
		opts.Gap = f.gap
	}
	if changed("no-labels") {
		opts.NoLabels = f.noLabels
	}
	if changed("images") {
		opts.Images = f.images
	}
	if changed("interactive") {
		opts.Interactive = f.interactive
	}
	opts.Refresh = f.refresh
}

// treemapCommand creates the treemap command.
func (c *CLI) treemapCommand() *cobra.Command {
	var f layoutFlags

	cmd := &cobra.Command{
		Use:   "treemap [items.json|items.yaml]",
		Short: "Lay out weighted items as a squarified treemap",
		Long: `Lay out weighted items as a squarified treemap.

Each item's area is proportional to its weight. Items are placed largest
first in rows that keep tiles as close to square as possible. Items whose
weight rounds to zero or below are left out of the drawing.

The input is a JSON or YAML list of items ({id, label, weight}), either bare
or under an "items" key. Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.defaultOptions(scene.KindTreemap)
			f.apply(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], opts, f.output, f.noCache)
		},
	}
	f.register(cmd, scene.KindTreemap)
	return cmd
}

// mosaicCommand creates the mosaic command.
func (c *CLI) mosaicCommand() *cobra.Command {
	var f layoutFlags

	cmd := &cobra.Command{
		Use:   "mosaic [items.json|items.yaml|image-dir]",
		Short: "Lay out sized items as justified rows",
		Long: `Lay out sized items as justified rows.

Items keep their aspect ratio and are flowed left to right into rows of equal
height; each row is then stretched or shrunk to exactly fill the container
width. The container height follows from the content.

The input is a JSON or YAML list of items ({id, label, width, height,
source}) or a directory of images, whose pixel sizes are read from the file
headers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.defaultOptions(scene.KindMosaic)
			f.apply(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], opts, f.output, f.noCache)
		},
	}
	f.register(cmd, scene.KindMosaic)
	return cmd
}

// runLayout loads the input, computes and renders the layout, and writes
// the artifacts.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s...", opts.Kind))
	spinner.Start()

	result, err := runner.ExecuteFile(ctx, input, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}

	printSuccess("%s complete", kindTitle(opts.Kind))
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Explore", fmt.Sprintf("%s explore --kind %s %s", appName, opts.Kind, input))

	return nil
}

func kindTitle(kind string) string {
	if kind == scene.KindMosaic {
		return "Mosaic"
	}
	return "Treemap"
}
