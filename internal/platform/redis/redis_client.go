// Package redis opens the optional Redis connection used for caching and
// token revocation.
package redis

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the Redis connection settings. An empty Host disables Redis.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
	StatsTTL time.Duration
}

// LoadConfigFromEnv reads the Redis settings from environment variables.
func LoadConfigFromEnv() Config {
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	ttl, err := time.ParseDuration(os.Getenv("STATS_CACHE_TTL"))
	if err != nil {
		ttl = 0
	}
	return Config{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
		StatsTTL: ttl,
	}
}

// Addr returns host:port.
func (c Config) Addr() string { return c.Host + ":" + c.Port }

// NewRedisClient connects to Redis and verifies the connection with PING.
// It returns a nil client and no error when cfg.Host is empty.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Host == "" {
		slog.Info("Redis disabled, REDIS_HOST not set")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 接続確認
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.Addr(), "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.Addr())
	return rdb, nil
}
