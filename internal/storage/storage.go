// Package storage provides the device-local key-value stores that
// preferences and the account session persist to.
package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/prosecraft/prosecraft/internal/config"
)

// Store is a string key-value store. Get reports ok=false for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted in configuration.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Location describes where the selected backend keeps its data.
func Location(cfg config.StorageConfig, dataDir string) string {
	switch cfg.Backend {
	case BackendFile, "":
		if cfg.Path != "" {
			return cfg.Path
		}
		return filepath.Join(dataDir, "preferences.yaml")
	case BackendSQLite:
		if cfg.Path != "" {
			return cfg.Path
		}
		return filepath.Join(dataDir, "prosecraft.db")
	case BackendRedis:
		return fmt.Sprintf("redis://%s/%d (keys prefixed %q)", cfg.Redis.Address, cfg.Redis.DB, cfg.Redis.Prefix)
	case BackendMemory:
		return "memory only, discarded on exit"
	default:
		return "unknown"
	}
}

// Open returns the store selected by cfg.
func Open(ctx context.Context, cfg config.StorageConfig, dataDir string, logger *log.Logger) (Store, error) {
	switch cfg.Backend {
	case BackendFile, "":
		path := Location(cfg, dataDir)
		if logger != nil {
			logger.Debug("opening file store", "path", path)
		}
		return NewFileStore(path), nil
	case BackendSQLite:
		path := Location(cfg, dataDir)
		if logger != nil {
			logger.Debug("opening sqlite store", "path", path)
		}
		return NewSQLiteStore(ctx, path)
	case BackendRedis:
		if logger != nil {
			logger.Debug("opening redis store", "addr", cfg.Redis.Address, "db", cfg.Redis.DB)
		}
		return NewRedisStore(ctx, RedisOptions{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
