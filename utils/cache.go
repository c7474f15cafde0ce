// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// CacheOptions describes the Redis database used for read caching.
type CacheOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewCacheClient connects to Redis and verifies the connection. An empty
// address disables caching and returns a nil client.
func NewCacheClient(ctx context.Context, opts CacheOptions) (*redis.Client, error) {
	if opts.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (Cache): %w", err)
	}
	return client, nil
}
