package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/mosaic/pkg/scene"
	"github.com/matzehuels/mosaic/pkg/sink"
	"github.com/matzehuels/mosaic/pkg/sink/styles"
)

// RenderFromLayout generates output artifacts in the requested formats.
// Formats are rendered concurrently; the first failure cancels the rest.
func RenderFromLayout(ctx context.Context, l scene.Layout, opts Options) (map[string][]byte, error) {
	style, err := styles.ByName(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := BuildSVGOptions(style, opts)

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))

	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := renderFormat(l, format, style, svgOpts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(l scene.Layout, format string, style styles.Style, svgOpts []sink.SVGOption) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatJSON:
		return sink.RenderJSON(l, sink.WithJSONStyle(style.Name()))
	}
	return nil, ValidateFormat(format)
}

// BuildSVGOptions translates render options into sink options.
func BuildSVGOptions(style styles.Style, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithStyle(style)}
	if opts.Gap > 0 {
		svgOpts = append(svgOpts, sink.WithGap(opts.Gap))
	}
	if opts.NoLabels {
		svgOpts = append(svgOpts, sink.WithoutLabels())
	}
	if opts.Images {
		svgOpts = append(svgOpts, sink.WithImages())
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	return svgOpts
}
