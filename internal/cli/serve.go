package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/grahalabs/jataka/internal/server"
	"github.com/grahalabs/jataka/pkg/cache"
	"github.com/grahalabs/jataka/pkg/pipeline"
	"github.com/grahalabs/jataka/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noCache   bool
		redisAddr string
		mongoURI  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chart HTTP API",
		Long: `Run the chart computation HTTP API.

By default charts are cached on disk and the archive endpoints are
disabled. With --redis the cache is shared across instances; with
--mongo-uri charts can be saved, listed, and rendered from a MongoDB
archive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache, redisAddr, mongoURI)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for a shared cache (host:port)")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB URI for the chart archive")

	return cmd
}

// runServe assembles cache, store, and runner and serves until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool, redisAddr, mongoURI string) error {
	var (
		cc  cache.Cache
		err error
	)
	switch {
	case noCache:
		cc = cache.NewNullCache()
	case redisAddr != "":
		cc, err = cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
		if err != nil {
			return err
		}
		c.Logger.Info("using redis cache", "addr", redisAddr)
	default:
		cc, err = newCache(false)
		if err != nil {
			return err
		}
	}

	var st store.Store
	if mongoURI != "" {
		ms, err := store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
		if err != nil {
			return err
		}
		defer ms.Close(context.Background())
		st = ms
		c.Logger.Info("chart archive enabled")
	}

	runner := pipeline.NewRunner(cc, nil, c.Logger)
	defer runner.Close()

	srv := server.New(runner, st, c.Logger)
	return srv.ListenAndServe(ctx, addr)
}
