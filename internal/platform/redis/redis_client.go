// Package redis はホットキャッシュ用のRedisクライアントを提供します。
package redis

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection configuration.
type Config struct {
	Addr     string
	Password string
}

// LoadConfig loads Redis configuration from environment variables.
// REDIS_HOSTが未設定の場合、キャッシュは無効として扱われます。
func LoadConfig() Config {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		return Config{}
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	return Config{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
	}
}

// Enabled reports whether a Redis endpoint is configured.
func (c Config) Enabled() bool { return c.Addr != "" }

// NewClient は設定されたRedisへ接続し、疎通を確認したクライアントを返します。
func NewClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.Addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.Addr)
	return rdb, nil
}
