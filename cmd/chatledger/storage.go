package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/chatledger/internal/adapters/ratecache"
	portsrepo "github.com/SscSPs/chatledger/internal/core/ports/repositories"
	"github.com/SscSPs/chatledger/internal/platform/config"
	"github.com/SscSPs/chatledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/chatledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/chatledger/internal/repositories/memory"
	"github.com/SscSPs/chatledger/pkg/database"
)

const cacheSweepInterval = 10 * time.Minute

// openStorage builds the repository provider for the configured backend.
// The returned func releases its resources.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		if err := database.RunPostgresMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established")
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil

	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLiteDBPath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("SQLite database opened", slog.String("path", cfg.SQLiteDBPath))
		return sqlite.NewRepositoryProvider(db), func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close SQLite database", slog.String("error", err.Error()))
			}
		}, nil

	case config.StorageMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil
	}
	return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

// openRateCache builds the exchange-rate cache for the configured backend.
func openRateCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RateCache, func(), error) {
	switch cfg.RateCacheBackend {
	case config.RateCacheRedis:
		cache, err := ratecache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Rate cache connected to Redis")
		return cache, func() {
			if err := cache.Close(); err != nil {
				logger.Error("Failed to close Redis client", slog.String("error", err.Error()))
			}
		}, nil

	case config.RateCacheMemory:
		cache := ratecache.NewMemoryCache()
		sweepCtx, cancel := context.WithCancel(ctx)
		go func() {
			ticker := time.NewTicker(cacheSweepInterval)
			defer ticker.Stop()
			for {
				select {
				case <-sweepCtx.Done():
					return
				case <-ticker.C:
					if n := cache.Sweep(); n > 0 {
						logger.Debug("Swept expired rates", slog.Int("count", n))
					}
				}
			}
		}()
		return cache, cancel, nil
	}
	return nil, nil, fmt.Errorf("unknown rate cache backend %q", cfg.RateCacheBackend)
}
