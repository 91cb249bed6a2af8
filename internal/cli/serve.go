package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/api"
	"github.com/matzehuels/mosaic/pkg/config"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve treemap and mosaic layouts over HTTP",
		Long: `Serve treemap and mosaic layouts over HTTP.

Endpoints:
  GET  /healthz
  POST /v1/treemap   {"items": [...], "options": {...}}
  POST /v1/mosaic    {"items": [...], "options": {...}}
  POST /v1/render    {"layout": {...}, "options": {...}}

Add ?format=svg to receive an SVG document instead of JSON. The cache backend,
listen address and request limits come from the [cache] and [server] config
sections; MOSAIC_REDIS_URL and MOSAIC_ADDR override them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.settings().Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe starts the API server and blocks until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cfg := c.settings()

	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}

	srv := api.NewServer(api.NewRunner(store, c.Logger), c.Logger,
		api.WithDefaults(cfg.PipelineOptions()),
		api.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
		api.WithRequestTimeout(cfg.Server.RequestTimeout.Duration),
		api.WithShutdownTimeout(cfg.Server.ShutdownTimeout.Duration),
	)

	backend := cfg.Cache.Backend
	if noCache {
		backend = config.CacheNone
	}
	printInfo("Serving mosaic API")
	printKeyValue("address", addr)
	printKeyValue("cache", backend)
	if backend == config.CacheNone {
		printWarning("Caching disabled; every request is recomputed")
	}
	printNewline()

	return srv.ListenAndServe(ctx, addr)
}
