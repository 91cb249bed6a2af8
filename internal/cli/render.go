package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/pipeline"
	"github.com/matzehuels/mosaic/pkg/scene"
)

// renderCommand creates the render command for rendering a saved layout.
func (c *CLI) renderCommand() *cobra.Command {
	var f layoutFlags

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a saved layout",
		Long: `Render a saved layout.

The render command takes a layout document (produced by 'treemap -f json' or
'mosaic -f json') and renders it again, for example with another style or
gap. The layout contains all positioning information, so this step never
recomputes positions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	flags.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	flags.StringVar(&f.style, "style", pipeline.DefaultStyle, "visual style: simple, outline (default: the layout's style)")
	flags.Float64Var(&f.gap, "gap", 0, "gap between tiles in pixels")
	flags.BoolVar(&f.noLabels, "no-labels", false, "omit tile labels")
	flags.BoolVar(&f.images, "images", false, "embed item sources as <image> elements")
	flags.BoolVar(&f.interactive, "interactive", false, "add hover highlighting to the SVG")

	return cmd
}

// runRender loads the layout and renders it.
func (c *CLI) runRender(cmd *cobra.Command, input string, f *layoutFlags) error {
	ctx := cmd.Context()
	layout, err := scene.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	opts := c.defaultOptions(layout.Kind)
	if layout.Style != "" {
		opts.Style = layout.Style
	}
	f.apply(cmd, &opts)
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	artifacts, cacheHit, err := c.render(ctx, layout, opts, f.noCache)
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    f.output,
	})
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(pipeline.Stats{TileCount: len(layout.Visible()), RowCount: len(layout.Rows)}, cacheHit)
	return nil
}

func (c *CLI) render(ctx context.Context, layout scene.Layout, opts pipeline.Options, noCache bool) (map[string][]byte, bool, error) {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, false, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return nil, false, fmt.Errorf("render: %w", err)
	}
	spinner.Stop()
	return artifacts, cacheHit, nil
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each requested format and returns the paths written.
// With a single format, output is used verbatim; otherwise it is a base path.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	var paths []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return nil, fmt.Errorf("no %s artifact produced", format)
		}

		path := p.output
		if path == "" || len(p.formats) > 1 {
			path = artifactPath(basePath(p.output, p.input), format)
		}
		if filepath.Clean(path) == filepath.Clean(p.input) {
			return nil, fmt.Errorf("refusing to overwrite input %s (use --output)", p.input)
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactPath returns the file name for a format. Layout documents use the
// ".layout.json" suffix so they are not mistaken for item files.
func artifactPath(base, format string) string {
	if format == pipeline.FormatJSON {
		return base + ".layout.json"
	}
	return base + "." + format
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension (and a ".layout" suffix) from
// input. If output has a format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		base := filepath.Clean(input)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		return strings.TrimSuffix(base, ".layout")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(strings.TrimSuffix(output, ext), ".layout")
	}
	return output
}
