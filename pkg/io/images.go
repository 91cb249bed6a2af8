package io

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/mosaic/pkg/errors"
)

// scanConcurrency bounds the number of image headers read in parallel.
const scanConcurrency = 8

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

// ImageSize reads the pixel dimensions from the header of the image at path.
func ImageSize(path string) (width, height int, format string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode header of %s", path)
	}
	return cfg.Width, cfg.Height, format, nil
}

// ScanImages returns one record per image file in dir, sorted by file name.
// Only the image headers are read. Files whose extension is not a known
// image type are skipped; known extensions with unreadable headers fail the
// scan.
func ScanImages(dir string) ([]Record, error) {
	return ScanImagesContext(context.Background(), dir)
}

// ScanImagesContext is [ScanImages] with cancellation.
func ScanImagesContext(ctx context.Context, dir string) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image directory %s", dir)
		}
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	recs := make([]Record, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(scanConcurrency)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, name)
			w, h, _, err := ImageSize(path)
			if err != nil {
				return err
			}
			recs[i] = Record{
				ID:     strings.TrimSuffix(name, filepath.Ext(name)),
				Label:  name,
				Width:  float64(w),
				Height: float64(h),
				Source: path,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return recs, nil
}
