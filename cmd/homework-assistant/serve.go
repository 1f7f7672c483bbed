package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/terra-clan/homework-assistant/internal/api"
	"github.com/terra-clan/homework-assistant/internal/assistant"
	"github.com/terra-clan/homework-assistant/internal/catalog"
	"github.com/terra-clan/homework-assistant/internal/cleanup"
	"github.com/terra-clan/homework-assistant/internal/config"
	"github.com/terra-clan/homework-assistant/internal/probes"
	"github.com/terra-clan/homework-assistant/internal/storage"
	"github.com/terra-clan/homework-assistant/internal/usage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	slog.Info("starting homework-assistant",
		"version", version,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	registry := probes.NewRegistry()

	repo, err := openRepository(initCtx, cfg)
	if err != nil {
		slog.Error("failed to open client repository", "error", err)
		return err
	}
	defer repo.Close()

	if cfg.Database.DSN != "" {
		pgProbe, err := probes.NewPostgresProbe(cfg.Database.DSN)
		if err != nil {
			slog.Warn("postgres probe unavailable", "error", err)
		} else {
			registry.Register("postgres", pgProbe)
			defer pgProbe.Close()
		}
	}

	clients := storage.NewCachedRepository(repo, cfg.Auth.CacheTTL)

	var limiter usage.Limiter = usage.NoopLimiter{}
	if cfg.Redis.Address != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(initCtx).Err(); err != nil {
			slog.Warn("redis not reachable yet, daily limits fail open until it is", "addr", cfg.Redis.Address, "error", err)
		}
		limiter = usage.NewRedisLimiter(rdb)
		registry.Register("redis", probes.NewRedisProbe(rdb))
	} else {
		slog.Info("redis not configured, daily limits disabled")
	}

	loader := catalog.NewLoader()
	if err := loader.LoadFromDir(cfg.Catalog.Dir); err != nil {
		slog.Warn("failed to load catalog from dir", "dir", cfg.Catalog.Dir, "error", err)
	}

	recorder := usage.NewRecorder(clients, logger)
	svc := assistant.NewService(recorder)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanup.NewCleaner(clients, cfg.Usage.Retention, cfg.Usage.PruneInterval).Start(ctx)

	server := api.NewServer(cfg.Server, svc, loader, clients, limiter, registry)
	// No WriteTimeout: it would also cut off walkthrough websockets
	httpServer := &http.Server{
		Addr:        cfg.Server.Addr(),
		Handler:     server.Router(),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serveErr:
		slog.Error("HTTP server error", "error", err)
		return err
	}

	slog.Info("shutting down gracefully...")

	// Stop background workers
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Flush pending usage events before the store closes
	recorder.Wait()

	slog.Info("homework-assistant stopped")
	return nil
}

// openRepository connects to Postgres and migrates it, or falls back to the
// key file when no DSN is configured
func openRepository(ctx context.Context, cfg *config.Config) (storage.Repository, error) {
	if cfg.Database.DSN == "" {
		slog.Info("no database configured, using key file", "path", cfg.Auth.KeysFile)
		repo, err := storage.LoadStaticRepository(cfg.Auth.KeysFile)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}

	repo, err := storage.NewPostgresRepository(ctx, storage.PostgresConfig{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: int32(cfg.Database.MaxOpenConns),
		MaxIdleConns: int32(cfg.Database.MaxIdleConns),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	slog.Info("database connected successfully")

	slog.Info("running database migrations")
	if err := storage.RunMigrations(ctx, repo.Pool()); err != nil {
		repo.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return repo, nil
}
