// Package config provides TOML-based configuration for the mosaic CLI and
// HTTP server.
//
// Configuration is read from $XDG_CONFIG_HOME/mosaic/config.toml (falling
// back to ~/.config/mosaic/config.toml). Missing files are not an error:
// [DefaultConfig] is used instead. Command-line flags override file values.
//
// Example file:
//
//	[layout]
//	kind = "mosaic"
//	width = 1200
//	max_item_size = 240
//
//	[render]
//	style = "outline"
//	gap = 2
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	request_timeout = "30s"
package config

import (
	"fmt"
	"time"

	"github.com/matzehuels/mosaic/pkg/pipeline"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the root configuration document.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig holds layout defaults.
type LayoutConfig struct {
	Kind        string  `toml:"kind"`
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	Algorithm   string  `toml:"algorithm"`
	MaxItemSize float64 `toml:"max_item_size"`
	Clamp       string  `toml:"clamp"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Formats []string `toml:"formats"`
	Style   string   `toml:"style"`
	Gap     float64  `toml:"gap"`
	Labels  bool     `toml:"labels"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	RequestTimeout  Duration `toml:"request_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
}

// Validate checks the configuration for unsupported values.
func (c *Config) Validate() error {
	opts := c.PipelineOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone, "":
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("config: cache backend %q requires redis_url", CacheRedis)
		}
	default:
		return fmt.Errorf("config: unknown cache backend %q (must be file, redis or none)", c.Cache.Backend)
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("config: max_body_bytes must not be negative")
	}
	return nil
}

// PipelineOptions converts the layout and render sections into pipeline
// options. Defaults are not applied.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Kind:        c.Layout.Kind,
		Width:       c.Layout.Width,
		Height:      c.Layout.Height,
		Algorithm:   c.Layout.Algorithm,
		MaxItemSize: c.Layout.MaxItemSize,
		Clamp:       c.Layout.Clamp,
		Formats:     append([]string(nil), c.Render.Formats...),
		Style:       c.Render.Style,
		Gap:         c.Render.Gap,
		NoLabels:    !c.Render.Labels,
	}
}

// Duration wraps time.Duration with TOML-friendly string parsing.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("negative duration %q not allowed", s)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML serialization.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
