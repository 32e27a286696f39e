package redis

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-redis/redis/v8"
)

// Client wraps the Redis connection used as the catalog read cache.
type Client struct {
	rdb *redis.Client
}

// DB returns the underlying Redis client.
func (c *Client) DB() *redis.Client {
	return c.rdb
}

// Close closes the connection for graceful shutdown.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// MustNewClient creates a new Redis client.
func MustNewClient() *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:6379", os.Getenv("OMS_REDIS_HOST")),
		Password: os.Getenv("OMS_REDIS_PASSWORD"),
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}

	slog.Info("Redis connected")

	return &Client{
		rdb: rdb,
	}
}
