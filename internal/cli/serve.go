package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/internal/server"
	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/store"
)

// serveCommand creates the serve command: run the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		mongoURL string
		storeDir string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the word-cloud HTTP API",
		Long: `Run the word-cloud HTTP API.

The server exposes stateless rendering at POST /api/render and a saved-cloud
store under /api/clouds. Saved clouds live in memory by default; pass
--store-dir for file-backed persistence or --mongo-url for MongoDB.
Layouts and artifacts are cached on disk, or in Redis with --redis-url.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, mongoURL, storeDir, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis URL for the layout cache (default: file cache)")
	cmd.Flags().StringVar(&mongoURL, "mongo-url", "", "MongoDB URL for the cloud store (default: in-memory)")
	cmd.Flags().StringVar(&storeDir, "store-dir", "", "directory for the file-backed cloud store")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisURL, mongoURL, storeDir string, noCache bool) error {
	ca, err := c.serveCache(ctx, redisURL, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(ca, nil, c.Logger)
	defer runner.Close()

	st, closeStore, err := c.serveStore(ctx, mongoURL, storeDir)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer closeStore()

	srv := server.New(runner, st, c.Logger)
	printInfo("Listening on %s", addr)
	return srv.ListenAndServe(ctx, addr)
}

// serveCache picks the cache backend: Redis if configured, a local file
// cache otherwise.
func (c *CLI) serveCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		return cache.NewRedisCache(ctx, redisURL)
	}
	return newCache(false)
}

// serveStore picks the cloud store backend: MongoDB, file-backed, or
// in-memory. The returned func releases backend resources.
func (c *CLI) serveStore(ctx context.Context, mongoURL, storeDir string) (store.Store, func(), error) {
	switch {
	case mongoURL != "":
		ms, err := store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURL})
		if err != nil {
			return nil, nil, err
		}
		return ms, func() { _ = ms.Close() }, nil
	case storeDir != "":
		fs, err := store.NewFileStore(storeDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	default:
		return store.NewMemoryStore(), func() {}, nil
	}
}
