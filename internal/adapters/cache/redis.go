// Package cache contains the Redis client and the rate-limit window
// stores built on top of it.
package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"pastebridge/internal/config"
)

const errFailedToClose = "failed to close redis connection"

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddress(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.ReadTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// CloseRedisClient closes the Redis connection.
func CloseRedisClient(client *redis.Client) error {
	if err := client.Close(); err != nil {
		return fmt.Errorf("%s: %w", errFailedToClose, err)
	}
	return nil
}
