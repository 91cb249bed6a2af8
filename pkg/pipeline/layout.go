package pipeline

import (
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/geom"
	mio "github.com/matzehuels/mosaic/pkg/io"
	"github.com/matzehuels/mosaic/pkg/mosaic"
	"github.com/matzehuels/mosaic/pkg/scene"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout runs the layout engine selected by opts.Kind over recs and
// returns the layout document. Tile labels and image sources are copied
// from the records. opts must already be validated.
func GenerateLayout(recs []mio.Record, opts Options) (scene.Layout, error) {
	var (
		l   scene.Layout
		err error
	)
	switch opts.Kind {
	case scene.KindTreemap:
		l, err = generateTreemap(recs, opts)
	case scene.KindMosaic:
		l, err = generateMosaic(recs, opts)
	default:
		return scene.Layout{}, errors.New(errors.ErrCodeInvalidKind, "invalid kind: %q", opts.Kind)
	}
	if err != nil {
		return scene.Layout{}, err
	}

	annotate(&l, recs)
	return l, nil
}

// =============================================================================
// Treemap
// =============================================================================

func generateTreemap(recs []mio.Record, opts Options) (scene.Layout, error) {
	items, err := mio.TreemapItems(recs)
	if err != nil {
		return scene.Layout{}, err
	}
	alg, err := opts.TreemapAlgorithm()
	if err != nil {
		return scene.Layout{}, err
	}
	res, err := treemap.Layout(items, geom.Rect{W: opts.Width, H: opts.Height}, treemap.WithAlgorithm(alg))
	if err != nil {
		return scene.Layout{}, err
	}
	return scene.FromTreemap(res, alg), nil
}

// =============================================================================
// Mosaic
// =============================================================================

func generateMosaic(recs []mio.Record, opts Options) (scene.Layout, error) {
	items, err := mio.MosaicItems(recs)
	if err != nil {
		return scene.Layout{}, err
	}
	clamp, err := opts.ClampMode()
	if err != nil {
		return scene.Layout{}, err
	}
	mopts := mosaic.Options{
		ContainerWidth: opts.Width,
		MaxItemSize:    opts.MaxItemSize,
		Clamp:          clamp,
	}
	res, err := mosaic.Layout(items, mopts)
	if err != nil {
		return scene.Layout{}, err
	}
	return scene.FromMosaic(res, mopts), nil
}

// annotate copies display metadata from the input records onto the tiles.
// Tiles are in input order, so tile i belongs to record i.
func annotate(l *scene.Layout, recs []mio.Record) {
	if len(l.Tiles) != len(recs) {
		return
	}
	for i := range l.Tiles {
		l.Tiles[i].Label = recs[i].Label
		l.Tiles[i].Source = recs[i].Source
	}
}
