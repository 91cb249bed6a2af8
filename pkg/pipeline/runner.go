package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/mosaic/pkg/cache"
	mio "github.com/matzehuels/mosaic/pkg/io"
	"github.com/matzehuels/mosaic/pkg/observability"
	"github.com/matzehuels/mosaic/pkg/scene"
)

// layoutNamespace seeds the name-based UUIDs assigned to layout documents.
var layoutNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/mosaic/layout"))

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ExecuteFile loads records from path and runs the layout and render stages.
func (r *Runner) ExecuteFile(ctx context.Context, path string, opts Options) (*Result, error) {
	loadStart := time.Now()
	recs, err := LoadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	loadTime := time.Since(loadStart)

	r.Logger.Info("loaded items",
		"source", path,
		"items", len(recs),
		"duration", loadTime)

	result, err := r.Execute(ctx, recs, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// Execute runs the layout → render pipeline over recs with caching.
func (r *Runner) Execute(ctx context.Context, recs []mio.Record, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		InputHash: InputHash(recs),
		Artifacts: make(map[string][]byte),
	}
	result.Stats.ItemCount = len(recs)

	// Stage 1: Layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, recs, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.TileCount = len(layout.Visible())
	result.Stats.RowCount = len(layout.Rows)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"kind", layout.Kind,
		"tiles", result.Stats.TileCount,
		"height", layout.Height,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.sortedFormats(),
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
// The returned layout carries a name-based UUID derived from its cache key
// and the style requested in opts.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, recs []mio.Record, opts Options) (scene.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return scene.Layout{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(InputHash(recs), opts.LayoutKeyOpts())
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := scene.Unmarshal(data)
			if err == nil {
				cacheHooks.OnCacheHit(ctx, cacheKey)
				cached.Style = opts.Style
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
			opts.Logger.Debug("discarding unreadable cache entry", "key", cacheKey, "error", err)
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "key", cacheKey, "error", err)
		}
		cacheHooks.OnCacheMiss(ctx, cacheKey)
	}

	hooks.OnLayoutStart(ctx, opts.Kind, len(recs))
	start := time.Now()
	layout, err := GenerateLayout(recs, opts)
	hooks.OnLayoutComplete(ctx, opts.Kind, len(layout.Tiles), time.Since(start), err)
	if err != nil {
		return scene.Layout{}, false, err
	}
	layout.ID = uuid.NewSHA1(layoutNamespace, []byte(cacheKey)).String()

	// Cache the result
	if data, err := scene.Marshal(layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			opts.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, cacheKey, len(data))
		}
	}

	layout.Style = opts.Style
	return layout, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, recs []mio.Record, opts Options) (scene.Layout, error) {
	layout, _, err := r.ComputeLayoutWithCacheInfo(ctx, recs, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout scene.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Compute cache key from layout data
	layoutData, err := scene.Marshal(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)
	cacheHooks := observability.Cache()

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				cacheHooks.OnCacheMiss(ctx, cacheKey)
				break
			}
			cacheHooks.OnCacheHit(ctx, cacheKey)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	hooks := observability.Pipeline()
	formats := opts.sortedFormats()
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()
	rendered, err := RenderFromLayout(ctx, layout, opts)
	hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, cacheKey, len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout scene.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// InputHash returns the content hash of a record list.
func InputHash(recs []mio.Record) string {
	data, err := json.Marshal(recs)
	if err != nil {
		// NaN weights from YAML input are not representable in JSON.
		data = fmt.Appendf(nil, "%+v", recs)
	}
	return cache.Hash(data)
}
