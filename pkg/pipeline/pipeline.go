// Package pipeline provides the load → layout → render pipeline shared by
// the CLI and the HTTP API.
//
// By centralizing this logic, both entry points validate options, apply
// defaults, cache results and emit observability events the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read item records from a JSON/YAML file, a reader or an image directory
//  2. Layout: Run the treemap or mosaic engine and build a [scene.Layout]
//  3. Render: Generate output in the requested formats (SVG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Kind:    "mosaic",
//	    Width:   1200,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.ExecuteFile(ctx, "photos/", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	recs, err := pipeline.LoadFile(ctx, "items.yaml")
//	layout, err := runner.ComputeLayout(ctx, recs, opts)
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/mosaic"
	"github.com/matzehuels/mosaic/pkg/scene"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default container width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default treemap container height in pixels.
	DefaultHeight = 600.0
)

// DefaultKind is the default layout kind.
const DefaultKind = scene.KindTreemap

// DefaultStyle is the default visual style.
const DefaultStyle = scene.StyleSimple

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	scene.StyleSimple:  true,
	scene.StyleOutline: true,
}

// ValidKinds is the set of supported layout kinds.
var ValidKinds = map[string]bool{
	scene.KindTreemap: true,
	scene.KindMosaic:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Kind        string  `json:"kind,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`        // treemap only
	Algorithm   string  `json:"algorithm,omitempty"`     // treemap: squarified, slice
	MaxItemSize float64 `json:"max_item_size,omitempty"` // mosaic only
	Clamp       string  `json:"clamp,omitempty"`         // mosaic: proportional, none

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	Gap         float64  `json:"gap,omitempty"`
	NoLabels    bool     `json:"no_labels,omitempty"`
	Images      bool     `json:"images,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// InputHash is the content hash of the loaded records.
	InputHash string

	// Layout is the computed layout document. Layout.ID is derived from
	// the cache key, so identical requests yield identical IDs.
	Layout scene.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount  int
	TileCount  int
	RowCount   int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, outline)", style)
	}
	return nil
}

// ValidateKind checks that a layout kind is valid.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return errors.New(errors.ErrCodeInvalidKind, "invalid kind: %q (must be one of: treemap, mosaic)", kind)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Kind == "" {
		o.Kind = DefaultKind
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 && o.IsTreemap() {
		o.Height = DefaultHeight
	}
	if o.MaxItemSize == 0 && o.IsMosaic() {
		o.MaxItemSize = mosaic.DefaultMaxItemSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if err := errors.ValidateDimension("width", o.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("height", o.Height); err != nil {
		return err
	}
	if err := errors.ValidateDimension("max item size", o.MaxItemSize); err != nil {
		return err
	}
	if _, err := o.TreemapAlgorithm(); err != nil {
		return err
	}
	_, err := o.ClampMode()
	return err
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateDimension("gap", o.Gap); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// IsTreemap returns true if this is a treemap layout.
func (o *Options) IsTreemap() bool {
	return o.Kind == "" || o.Kind == scene.KindTreemap
}

// IsMosaic returns true if this is a mosaic layout.
func (o *Options) IsMosaic() bool {
	return o.Kind == scene.KindMosaic
}

// TreemapAlgorithm parses the Algorithm option.
func (o *Options) TreemapAlgorithm() (treemap.Algorithm, error) {
	return treemap.ParseAlgorithm(o.Algorithm)
}

// ClampMode parses the Clamp option.
func (o *Options) ClampMode() (mosaic.ClampMode, error) {
	return mosaic.ParseClampMode(o.Clamp)
}

// LayoutKeyOpts returns cache key options for layout computation.
// Options that do not apply to the selected kind are left out so they do
// not split the cache.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{Kind: o.Kind, Width: o.Width}
	if o.IsMosaic() {
		clamp, _ := o.ClampMode()
		k.MaxItemSize = o.MaxItemSize
		k.Clamp = clamp.String()
		return k
	}
	alg, _ := o.TreemapAlgorithm()
	k.Height = o.Height
	k.Algorithm = alg.String()
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	if format == FormatJSON {
		return cache.ArtifactKeyOpts{Format: format, Style: o.Style}
	}
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Gap:    o.Gap,
		Labels: !o.NoLabels,
		Images: o.Images,
	}
}

// sortedFormats returns the formats in a stable order for logging.
func (o *Options) sortedFormats() []string {
	f := slices.Clone(o.Formats)
	slices.Sort(f)
	return slices.Compact(f)
}
