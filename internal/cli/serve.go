package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgstack/internal/api"
	"github.com/matzehuels/svgstack/pkg/cache"
	"github.com/matzehuels/svgstack/pkg/observability"
	"github.com/matzehuels/svgstack/pkg/pipeline"
	"github.com/matzehuels/svgstack/pkg/store"
)

const shutdownTimeout = 10 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	mongoURI  string
	redisAddr string
	storeDir  string
	memory    bool
	noCache   bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      ":8080",
		mongoURI:  os.Getenv(envMongoURI),
		redisAddr: os.Getenv(envRedisAddr),
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the composition API and record store over HTTP",
		Long: `Serve starts the HTTP API.

Records are kept in MongoDB when --mongo-uri is set, in memory with
--memory, and in the record directory otherwise. Artifacts are cached in
Redis when --redis-addr is set and in the local cache directory otherwise.`,
		Example: `  svgstack serve --addr :9000
  SVGSTACK_MONGO_URI=mongodb://localhost:27017 svgstack serve --redis-addr localhost:6379`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", opts.mongoURI, "MongoDB URI for the record store (env "+envMongoURI+")")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", opts.redisAddr, "Redis address for the artifact cache (env "+envRedisAddr+")")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", "", "record directory when MongoDB is not used")
	cmd.Flags().BoolVar(&opts.memory, "memory", false, "keep records in memory only")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	backend, err := serveCache(ctx, opts, logger)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(backend, cache.NewScopedKeyer(nil, "api:"), logger)
	defer runner.Close()

	st, err := serveStore(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	stats := observability.NewCounters()
	stats.Install()
	defer observability.Reset()

	srv := api.New(runner, st, logger).WithStats(stats).HTTPServer(opts.addr)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	snap := stats.Snapshot()
	logger.Info("Shutting down",
		"uptime", snap.Uptime.Round(time.Second),
		"requests", snap.Requests,
		"server_errors", snap.Failures)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

func serveCache(ctx context.Context, opts serveOpts, logger *log.Logger) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redisAddr != "":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr, Prefix: appName + ":"})
		if err != nil {
			return nil, err
		}
		logger.Info("Using Redis cache", "addr", opts.redisAddr)
		return rc, nil
	}
	fc, err := newCache(false)
	if err != nil {
		return nil, err
	}
	if fc, ok := fc.(*cache.FileCache); ok {
		logger.Debug("Using file cache", "dir", fc.Dir())
	}
	return fc, nil
}

func serveStore(ctx context.Context, opts serveOpts, logger *log.Logger) (store.Store, error) {
	switch {
	case opts.mongoURI != "":
		m, err := store.NewMongo(ctx, store.MongoConfig{URI: opts.mongoURI})
		if err != nil {
			return nil, err
		}
		logger.Info("Using MongoDB record store")
		return m, nil
	case opts.memory:
		logger.Info("Using in-memory record store")
		return store.NewMemory(), nil
	}
	fs, err := store.NewFileStore(opts.storeDir)
	if err != nil {
		return nil, err
	}
	logger.Info("Using file record store")
	return fs, nil
}
