package cli

import (
	"github.com/spf13/cobra"

	"github.com/pixelczar/tangle-map/internal/server"
	"github.com/pixelczar/tangle-map/pkg/cache"
	"github.com/pixelczar/tangle-map/pkg/gallery"
	"github.com/pixelczar/tangle-map/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	redisAddr string // Redis address; empty means file cache
	mongoURI  string // MongoDB URI; empty means file gallery
	noCache   bool   // disable caching entirely
}

// serveCommand creates the serve command for the HTTP preview server.
//
// By default the server uses the same file cache and file gallery as the
// CLI, so compositions rendered on the command line are warm in the
// browser. Passing --redis or --mongo switches to the shared backends for
// multi-instance deployments.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP preview server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cacheStore, err := c.serveCache(cmd, &opts)
			if err != nil {
				return err
			}
			defer cacheStore.Close()

			galleryStore, err := c.serveGallery(cmd, &opts)
			if err != nil {
				return err
			}
			if galleryStore != nil {
				defer galleryStore.Close(ctx)
			}

			runner := pipeline.NewRunner(cacheStore, nil, c.Logger)
			srv := server.New(runner, galleryStore, c.Logger)
			return srv.ListenAndServe(ctx, server.Config{Addr: opts.addr})
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the cache (default: file cache)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for the gallery (default: file gallery)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) serveCache(cmd *cobra.Command, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		c.Logger.Info("using redis cache", "addr", opts.redisAddr)
		return cache.NewRedisCache(cmd.Context(), cache.RedisConfig{Addr: opts.redisAddr})
	}
	return newCache(false)
}

func (c *CLI) serveGallery(cmd *cobra.Command, opts *serveOpts) (gallery.Store, error) {
	if opts.mongoURI != "" {
		c.Logger.Info("using mongodb gallery")
		store, err := gallery.NewMongoStore(cmd.Context(), gallery.MongoConfig{URI: opts.mongoURI})
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	dir, err := galleryDir()
	if err != nil {
		c.Logger.Warn("gallery disabled", "err", err)
		return nil, nil
	}
	store, err := gallery.NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return store, nil
}
