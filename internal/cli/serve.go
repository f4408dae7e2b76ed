package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/emojiwall/internal/server"
	"github.com/matzehuels/emojiwall/pkg/cache"
	"github.com/matzehuels/emojiwall/pkg/observability"
	"github.com/matzehuels/emojiwall/pkg/pipeline"
	"github.com/matzehuels/emojiwall/pkg/render"
)

// serveOpts holds the flags for the serve command.
type serveOpts struct {
	addr     string
	redisURL string
	font     string
	noCache  bool
}

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve wallpapers over HTTP",
		Long: `Serve wallpapers over HTTP.

Endpoints:
  GET /healthz
  GET /modes
  GET /wallpaper.{png,svg,pdf,json}?glyphs=...&mode=...&density=...

Query parameters mirror the render flags. Deterministic renders are cached
in Redis when --redis is set, otherwise in the local cache directory.`,
		Example: `  emojiwall serve --addr :8080
  emojiwall serve --redis redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for a shared render cache")
	cmd.Flags().StringVar(&opts.font, "font", "", "TrueType font for PNG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	backend, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(backend, cache.NewScopedKeyer(nil, "api:"), logger)
	defer runner.Close()

	observability.NewLogHooks(logger).Install()
	defer observability.Reset()

	if !render.ConverterAvailable() {
		printWarning("rsvg-convert not found: /wallpaper.pdf will answer 501")
	}
	printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(opts.addr)))

	srv := server.New(runner, logger, server.WithFont(opts.font))
	err = srv.ListenAndServe(ctx, opts.addr)
	if errors.Is(err, context.Canceled) {
		printSuccess("Server stopped")
		return nil
	}
	return err
}

// serveCache picks the cache backend for the server.
func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		printDetail("Cache: %s", opts.redisURL)
		return rc, nil
	}
	return newCache(false)
}

// displayAddr fills in a host for addresses like ":8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
