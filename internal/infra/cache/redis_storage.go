package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/raskraski/storefront/internal/cart"
)

// DefaultCartTTL keeps an idle cart around for a month. Every write refreshes it.
const DefaultCartTTL = 30 * 24 * time.Hour

// RedisStorage is the cart.Storage surface backed by Redis.
type RedisStorage struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStorage(client redis.UniversalClient, ttl time.Duration) *RedisStorage {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &RedisStorage{client: client, ttl: ttl}
}

func (r *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, cacheKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", cart.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (r *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, cacheKey(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// ForSession scopes the storage to one cart session.
func (r *RedisStorage) ForSession(sessionID string) cart.Storage {
	return cart.WithPrefix(r, "session:"+sessionID+":")
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func cacheKey(key string) string {
	return "storefront:" + key
}
