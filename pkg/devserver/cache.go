package devserver

import (
	"context"
	"errors"
	"time"

	"github.com/matst80/slask-storefront/pkg/common/jsoncompat"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache stores encoded responses by key.
type Cache interface {
	Get(ctx context.Context, key string, out any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string, db int) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	return &RedisCache{client: rdb}
}

func (c *RedisCache) Get(ctx context.Context, key string, out any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return jsoncompat.Unmarshal(data, out)
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := jsoncompat.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close(ctx context.Context) error {
	return c.client.Close()
}

// cached returns the cached value for key or computes and stores it. Cache
// failures never fail the request, they only count as misses.
func cached[T any](ctx context.Context, cache Cache, key string, expiration time.Duration, fn func() T) (T, bool) {
	var out T
	if cache == nil {
		return fn(), false
	}
	if err := cache.Get(ctx, key, &out); err == nil {
		cacheLookups.WithLabelValues("hit").Inc()
		return out, true
	} else if !errors.Is(err, ErrCacheMiss) {
		cacheLookups.WithLabelValues("error").Inc()
	} else {
		cacheLookups.WithLabelValues("miss").Inc()
	}
	out = fn()
	_ = cache.Set(ctx, key, out, expiration)
	return out, false
}
