package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Layout.Kind != "treemap" || cfg.Layout.Width != 800 {
		t.Errorf("layout defaults = %+v", cfg.Layout)
	}
	if cfg.Cache.Backend != CacheFile {
		t.Errorf("cache backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Server.RequestTimeout.Duration != 30*time.Second {
		t.Errorf("request timeout = %v", cfg.Server.RequestTimeout)
	}
}

func TestLoadFromReader(t *testing.T) {
	t.Setenv("MOSAIC_REDIS_URL", "")
	t.Setenv("MOSAIC_ADDR", "")
	t.Setenv("MOSAIC_CACHE_DIR", "")

	doc := `
[layout]
kind = "mosaic"
width = 1200
max_item_size = 240
clamp = "none"

[render]
formats = ["svg", "json"]
style = "outline"
gap = 2.5

[server]
addr = "127.0.0.1:9000"
request_timeout = "5s"
`
	cfg, err := LoadFromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Layout.Kind != "mosaic" || cfg.Layout.Width != 1200 || cfg.Layout.MaxItemSize != 240 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	// Untouched keys keep their defaults.
	if cfg.Layout.Height != 600 {
		t.Errorf("height = %v, want default 600", cfg.Layout.Height)
	}
	if !cfg.Render.Labels {
		t.Error("labels default lost")
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.RequestTimeout.Duration != 5*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}

	opts := cfg.PipelineOptions()
	if opts.Clamp != "none" || opts.Style != "outline" || opts.Gap != 2.5 || len(opts.Formats) != 2 {
		t.Errorf("pipeline options = %+v", opts)
	}
}

func TestLoadFromReaderErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", "[layout\nwidth = 1"},
		{"unknown key", "[layout]\ncolumns = 3"},
		{"bad kind", "[layout]\nkind = \"tower\""},
		{"negative width", "[layout]\nwidth = -10"},
		{"bad duration", "[server]\nrequest_timeout = \"soon\""},
		{"negative duration", "[server]\nrequest_timeout = \"-1s\""},
		{"bad backend", "[cache]\nbackend = \"memcached\""},
		{"redis without url", "[cache]\nbackend = \"redis\""},
	}
	t.Setenv("MOSAIC_REDIS_URL", "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFromReader(strings.NewReader(tt.doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MOSAIC_REDIS_URL", "redis://cache:6379/1")
	t.Setenv("MOSAIC_ADDR", ":9999")
	t.Setenv("MOSAIC_CACHE_DIR", "/tmp/mosaic-test")

	cfg, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.RedisURL != "redis://cache:6379/1" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Dir != "/tmp/mosaic-test" {
		t.Errorf("dir = %q", cfg.Cache.Dir)
	}
}

func TestEnvRedisKeepsExplicitNone(t *testing.T) {
	t.Setenv("MOSAIC_REDIS_URL", "redis://cache:6379/1")
	cfg, err := LoadFromReader(strings.NewReader("[cache]\nbackend = \"none\""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != CacheNone {
		t.Errorf("backend = %q, want none", cfg.Cache.Backend)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("MOSAIC_REDIS_URL", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[render]\nstyle = \"outline\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.Style != "outline" {
		t.Errorf("style = %q", cfg.Render.Style)
	}

	missing, err := LoadFromFile(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if missing.Render.Style != "simple" {
		t.Errorf("style = %q, want simple", missing.Render.Style)
	}
}

func TestLoadUsesXDG(t *testing.T) {
	t.Setenv("MOSAIC_REDIS_URL", "")
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "mosaic"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "mosaic", "config.toml"), []byte("[layout]\nwidth = 640\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Layout.Width != 640 {
		t.Errorf("width = %v, want 640", cfg.Layout.Width)
	}
	if paths := SearchPaths(); paths[0] != filepath.Join(dir, "mosaic", "config.toml") {
		t.Errorf("SearchPaths()[0] = %q", paths[0])
	}
}

func TestDurationRoundTrip(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatal(err)
	}
	text, _ := d.MarshalText()
	if string(text) != "1m30s" {
		t.Errorf("MarshalText = %q", text)
	}
}
