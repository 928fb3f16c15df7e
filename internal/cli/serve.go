package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/utrgv-dp/roadmap/pkg/cache"
	"github.com/utrgv-dp/roadmap/pkg/config"
	"github.com/utrgv-dp/roadmap/pkg/errors"
	"github.com/utrgv-dp/roadmap/pkg/store"

	"github.com/utrgv-dp/roadmap/internal/server"
)

// newServeCmd creates the serve command: the web application and its API.
func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the roadmap web application",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func runServer(ctx context.Context, cfg config.Config) error {
	logger := loggerFromContext(ctx)

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			logger.Warn("closing store", "err", err)
		}
	}()

	c, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := server.New(st,
		server.WithCache(c, cfg.Cache.TTL.Std()),
		server.WithPageSize(cfg.Client.PageSize),
		server.WithLogger(logger))

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr,
			"store", cfg.Store.Backend, "cache", cfg.Cache.Backend)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// openStore builds the configured persistence backend.
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      cfg.Store.Mongo.URI,
			Database: cfg.Store.Mongo.Database,
			Timeout:  cfg.Store.Mongo.Timeout.Std(),
		})
	case config.StoreFile:
		return store.NewFileStore(cfg.Store.DataDir)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", cfg.Store.Backend)
	}
}

// openCache builds the configured cache backend.
func openCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	case config.CacheFile:
		return cache.NewFileCache(cfg.Cache.Dir)
	case config.CacheMemory:
		return cache.NewMemoryCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", cfg.Cache.Backend)
	}
}
