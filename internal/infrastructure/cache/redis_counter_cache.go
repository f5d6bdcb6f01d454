// Package cache provides caches for the dashboard counters.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	inventoryapp "github.com/armoryhq/backend/internal/application/inventory"
	infraconfig "github.com/armoryhq/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const counterKey = "dashboard:counters"

// Ensure RedisCounterCache implements CounterCache
var _ inventoryapp.CounterCache = (*RedisCounterCache)(nil)

// RedisCounterCache implements CounterCache using Redis.
// Suitable for deployments where multiple instances share the dashboard.
type RedisCounterCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCounterCache creates a new Redis-backed counter cache
func NewRedisCounterCache(cfg *infraconfig.RedisConfig) (*RedisCounterCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCounterCache{client: client, ttl: cfg.CacheTTL}, nil
}

// NewRedisCounterCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisCounterCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCounterCache {
	if ttl == 0 {
		ttl = 30 * time.Second
	}
	return &RedisCounterCache{client: client, ttl: ttl}
}

// Get returns the cached counters, or nil on a cache miss
func (c *RedisCounterCache) Get(ctx context.Context) (*inventoryapp.DashboardCounters, error) {
	payload, err := c.client.Get(ctx, counterKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached counters: %w", err)
	}

	var counters inventoryapp.DashboardCounters
	if err := json.Unmarshal(payload, &counters); err != nil {
		return nil, fmt.Errorf("failed to decode cached counters: %w", err)
	}
	return &counters, nil
}

// Set stores the counters with the configured TTL
func (c *RedisCounterCache) Set(ctx context.Context, counters inventoryapp.DashboardCounters) error {
	payload, err := json.Marshal(counters)
	if err != nil {
		return fmt.Errorf("failed to encode counters: %w", err)
	}

	if err := c.client.Set(ctx, counterKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache counters: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (c *RedisCounterCache) Close() error {
	return c.client.Close()
}
