// Package main is the entry point for the Finance Records API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/finance-records/backend/config"
	"github.com/finance-records/backend/internal/application/adapter"
	"github.com/finance-records/backend/internal/infra/db"
	"github.com/finance-records/backend/internal/infra/dependency"
	"github.com/finance-records/backend/internal/integration/cache"
	"github.com/finance-records/backend/internal/integration/memory"
	"github.com/finance-records/backend/internal/integration/persistence"
	"github.com/finance-records/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Finance Records API",
		"environment", cfg.Server.Environment,
		"storage_backend", cfg.Storage.Backend,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	repos, storageHealthCheck, closeStorage, err := buildStorage(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer closeStorage()

	metricsCache := buildMetricsCache(cfg)

	injector := dependency.NewInjector(cfg, repos, metricsCache, storageHealthCheck)
	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// buildStorage constructs the repository set for the configured backend.
func buildStorage(cfg *config.Config) (dependency.Repositories, func() bool, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		store := memory.NewStore()
		repos := dependency.Repositories{
			Users:      memory.NewUserRepository(store),
			Tokens:     memory.NewTokenRepository(store),
			Categories: memory.NewCategoryRepository(store),
			Records:    memory.NewRecordRepository(store),
			History:    memory.NewHistoryRepository(store),
		}
		slog.Info("Using in-memory storage, data will not survive a restart")
		return repos, func() bool { return true }, func() {}, nil

	case config.StorageBackendPostgres:
		database, err := db.NewPostgresConnection(&cfg.Database)
		if err != nil {
			return dependency.Repositories{}, nil, nil, err
		}

		if err := database.AutoMigrate(
			&model.UserModel{},
			&model.RefreshTokenModel{},
			&model.CategoryModel{},
			&model.RecordModel{},
			&model.RecordHistoryModel{},
		); err != nil {
			_ = database.Close()
			return dependency.Repositories{}, nil, nil, err
		}
		slog.Info("Database migrations completed successfully")

		repos := dependency.Repositories{
			Users:      persistence.NewUserRepository(database.DB()),
			Tokens:     persistence.NewTokenRepository(database.DB()),
			Categories: persistence.NewCategoryRepository(database.DB()),
			Records:    persistence.NewRecordRepository(database.DB()),
			History:    persistence.NewHistoryRepository(database.DB()),
		}
		closeStorage := func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}
		return repos, database.HealthCheck, closeStorage, nil

	default:
		return dependency.Repositories{}, nil, nil,
			fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// buildMetricsCache connects to Redis when configured and falls back to the
// no-op cache otherwise.
func buildMetricsCache(cfg *config.Config) adapter.MetricsCache {
	if cfg.Redis.Addr == "" {
		slog.Info("Metrics cache disabled, summaries are recomputed per request")
		return cache.NewNoopMetricsCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable, metrics cache disabled", "error", err)
		return cache.NewNoopMetricsCache()
	}

	slog.Info("Metrics cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Metrics.CacheTTL)
	return cache.NewRedisMetricsCache(client)
}
