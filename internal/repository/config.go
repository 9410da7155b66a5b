package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alexanderramin/driverlog/internal/db"
	"github.com/redis/go-redis/v9"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendFile   = "file"
)

var validBackends = []string{BackendSQLite, BackendRedis, BackendFile}

// StoreConfig selects and configures the storage backend.
type StoreConfig struct {
	Backend     string
	SQLitePath  string
	RedisAddr   string
	RedisPrefix string
	DataDir     string
}

// DefaultStoreConfig keeps everything under ~/.driverlog. home may be empty
// when it cannot be determined, in which case paths are relative.
func DefaultStoreConfig(home string) StoreConfig {
	base := filepath.Join(home, ".driverlog")
	return StoreConfig{
		Backend:     BackendSQLite,
		SQLitePath:  filepath.Join(base, "driverlog.db"),
		RedisAddr:   "localhost:6379",
		RedisPrefix: "driverlog",
		DataDir:     filepath.Join(base, "data"),
	}
}

// LoadStoreConfig reads the storage configuration from the environment,
// falling back to defaults for unset values.
func LoadStoreConfig() StoreConfig {
	home, _ := os.UserHomeDir()
	cfg := DefaultStoreConfig(home)

	if v := os.Getenv("DRIVERLOG_STORE"); v != "" {
		cfg.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("DRIVERLOG_DB"); v != "" {
		cfg.SQLitePath = v
	}
	if v := os.Getenv("DRIVERLOG_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v, ok := os.LookupEnv("DRIVERLOG_REDIS_PREFIX"); ok {
		cfg.RedisPrefix = v
	}
	if v := os.Getenv("DRIVERLOG_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	return cfg
}

// Validate reports every problem with the configuration at once.
func (c StoreConfig) Validate() error {
	var problems []string
	if !slices.Contains(validBackends, c.Backend) {
		problems = append(problems, fmt.Sprintf("invalid store backend %q: must be one of %v", c.Backend, validBackends))
	}
	switch c.Backend {
	case BackendSQLite:
		if c.SQLitePath == "" {
			problems = append(problems, "sqlite path cannot be empty when using the sqlite backend")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			problems = append(problems, "redis address cannot be empty when using the redis backend")
		}
	case BackendFile:
		if c.DataDir == "" {
			problems = append(problems, "data directory cannot be empty when using the file backend")
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("store configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// OpenKVStore opens the backend named by cfg. The caller owns the returned
// store and must Close it.
func OpenKVStore(ctx context.Context, cfg StoreConfig) (KVStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisKVStore(client, cfg.RedisPrefix), nil
	case BackendFile:
		return NewFileKVStore(cfg.DataDir)
	default:
		database, err := db.OpenDB(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		return NewSQLiteKVStore(database), nil
	}
}
