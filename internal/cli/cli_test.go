package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/config"
	"github.com/matzehuels/mosaic/pkg/pipeline"
	"github.com/matzehuels/mosaic/pkg/scene"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	for _, name := range []string{"treemap", "mosaic", "render", "explore", "scan", "serve", "cache", "completion"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
}

func TestLayoutFlagsPerKind(t *testing.T) {
	c := New(io.Discard, LogInfo)
	tm := c.treemapCommand()
	if tm.Flags().Lookup("algorithm") == nil || tm.Flags().Lookup("clamp") != nil {
		t.Error("treemap should have --algorithm and no --clamp")
	}
	mc := c.mosaicCommand()
	if mc.Flags().Lookup("clamp") == nil || mc.Flags().Lookup("max-size") == nil || mc.Flags().Lookup("algorithm") != nil {
		t.Error("mosaic should have --clamp and --max-size and no --algorithm")
	}
}

func TestLayoutFlagsApplyOnlyChanged(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config = config.DefaultConfig()
	c.Config.Layout.Width = 1200
	c.Config.Render.Style = "outline"

	var f layoutFlags
	cmd := &cobra.Command{Use: "mosaic"}
	f.register(cmd, scene.KindMosaic)
	if err := cmd.Flags().Parse([]string{"--clamp", "none", "--gap", "2", "--refresh"}); err != nil {
		t.Fatal(err)
	}

	opts := c.defaultOptions(scene.KindMosaic)
	f.apply(cmd, &opts)

	if opts.Width != 1200 {
		t.Errorf("Width = %v, want config value 1200", opts.Width)
	}
	if opts.Style != "outline" {
		t.Errorf("Style = %q, want config value outline", opts.Style)
	}
	if opts.Clamp != "none" || opts.Gap != 2 || !opts.Refresh {
		t.Errorf("flags not applied: clamp=%q gap=%v refresh=%v", opts.Clamp, opts.Gap, opts.Refresh)
	}
	if opts.MaxItemSize != 300 {
		t.Errorf("MaxItemSize = %v, want 300", opts.MaxItemSize)
	}
}

func TestLoadConfigFromFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[layout]\nkind = \"mosaic\"\nwidth = 640\n\n[cache]\nbackend = \"none\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	c.configPath = path
	if err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if c.Config.Layout.Width != 640 || c.Config.Cache.Backend != config.CacheNone {
		t.Errorf("config = %+v", c.Config)
	}

	opts := c.defaultOptions(scene.KindMosaic)
	if opts.Width != 640 || opts.Formats[0] != pipeline.FormatSVG {
		t.Errorf("options = %+v", opts)
	}
}

func TestNewCacheBackends(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config = config.DefaultConfig()
	c.Config.Cache.Dir = t.TempDir()

	store, err := c.newCache(t.Context(), false)
	if err != nil {
		t.Fatalf("file cache: %v", err)
	}
	if _, ok := store.(*cache.FileCache); !ok {
		t.Errorf("got %T, want file cache", store)
	}

	store, err = c.newCache(t.Context(), true)
	if err != nil {
		t.Fatalf("null cache: %v", err)
	}
	if _, ok := store.(*cache.NullCache); !ok {
		t.Errorf("got %T, want null cache", store)
	}
}
