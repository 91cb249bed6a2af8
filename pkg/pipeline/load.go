package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	mio "github.com/matzehuels/mosaic/pkg/io"
	"github.com/matzehuels/mosaic/pkg/observability"
)

// LoadFile reads records from a JSON/YAML file or an image directory.
func LoadFile(ctx context.Context, path string) ([]mio.Record, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	recs, err := mio.ImportFile(path)
	if err == nil {
		recs, err = mio.Normalize(recs)
	}
	hooks.OnLoadComplete(ctx, path, len(recs), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// LoadReader reads records from r in the given format. name is used for
// events and error messages only.
func LoadReader(ctx context.Context, r io.Reader, name string, format mio.Format) ([]mio.Record, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, name)
	start := time.Now()

	recs, err := mio.Read(r, format)
	if err == nil {
		recs, err = mio.Normalize(recs)
	}
	hooks.OnLoadComplete(ctx, name, len(recs), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return recs, nil
}
