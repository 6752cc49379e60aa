package redisinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-contacts-api/internal/config"
	"github.com/go-contacts-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

// NewClient creates a Redis client from config.
func NewClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// UserCache stores user snapshots in Redis under `user:<username>` with a
// fixed TTL. Entries are point-in-time copies; staleness up to the TTL is
// accepted, and mutating operations call Invalidate to purge early.
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewUserCache(client *redis.Client, ttl time.Duration) *UserCache {
	return &UserCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot for username, or nil on a miss.
func (c *UserCache) Get(ctx context.Context, username string) (*domain.CachedUser, error) {
	val, err := c.client.Get(ctx, cacheKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var u domain.CachedUser
	if err := json.Unmarshal([]byte(val), &u); err != nil {
		return nil, fmt.Errorf("decode cached user: %w", err)
	}
	return &u, nil
}

// Put stores the snapshot, unconditionally overwriting any existing entry.
func (c *UserCache) Put(ctx context.Context, username string, u *domain.CachedUser) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode cached user: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(username), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate removes the entry for username. A missing key is not an error.
func (c *UserCache) Invalidate(ctx context.Context, username string) error {
	if err := c.client.Del(ctx, cacheKey(username)).Err(); err != nil {
		return fmt.Errorf("cache del: %w", err)
	}
	return nil
}

func cacheKey(username string) string {
	return "user:" + username
}
