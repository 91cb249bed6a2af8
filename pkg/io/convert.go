package io

import (
	"fmt"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/geom"
	"github.com/matzehuels/mosaic/pkg/mosaic"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

// Normalize validates record IDs and assigns positional IDs ("item-N") to
// records without one. It returns a new slice.
func Normalize(recs []Record) ([]Record, error) {
	out := make([]Record, len(recs))
	for i, r := range recs {
		if err := errors.ValidateID(r.ID); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if r.ID == "" {
			r.ID = fmt.Sprintf("item-%d", i)
		}
		out[i] = r
	}
	return out, nil
}

// TreemapItems converts records into treemap input. Weight validation is
// left to the layout.
func TreemapItems(recs []Record) ([]treemap.Item, error) {
	recs, err := Normalize(recs)
	if err != nil {
		return nil, err
	}
	items := make([]treemap.Item, len(recs))
	for i, r := range recs {
		items[i] = treemap.Item{ID: r.ID, Weight: r.Weight}
	}
	return items, nil
}

// MosaicItems converts records into mosaic input using their natural
// width and height.
func MosaicItems(recs []Record) ([]mosaic.Item, error) {
	recs, err := Normalize(recs)
	if err != nil {
		return nil, err
	}
	items := make([]mosaic.Item, len(recs))
	for i, r := range recs {
		items[i] = mosaic.Item{ID: r.ID, Natural: geom.Size{W: r.Width, H: r.Height}}
	}
	return items, nil
}
