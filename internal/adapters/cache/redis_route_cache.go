package cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"courierdispatch/internal/domain"
)

// RedisRouteCache is a Redis-backed ports.RouteCache for deployments that
// share one cache across multiple server instances. Entries are
// gzip-compressed JSON, matching the wire shape other high-churn caches
// in this stack use, and carry a TTL rather than living forever.
type RedisRouteCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisRouteCache(addr string, db int, ttl time.Duration) (*RedisRouteCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis route cache: connect: %w", err)
	}

	return &RedisRouteCache{client: client, prefix: "courierdispatch:route:", ttl: ttl}, nil
}

// NewRedisRouteCacheFromClient wires an already-constructed client, the
// seam miniredis-backed tests use in place of a real server.
func NewRedisRouteCacheFromClient(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{client: client, prefix: "courierdispatch:route:", ttl: ttl}
}

func (c *RedisRouteCache) Close() error {
	return c.client.Close()
}

type cachedRoute struct {
	Route domain.Route `json:"route"`
	Miles float64      `json:"miles"`
}

func (c *RedisRouteCache) key(originKey, destKey string) string {
	return c.prefix + originKey + "|" + destKey
}

func (c *RedisRouteCache) Get(ctx context.Context, originKey, destKey string) (domain.Route, float64, bool, error) {
	compressed, err := c.client.Get(ctx, c.key(originKey, destKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("redis route cache: get: %w", err)
	}

	raw, err := gzipDecompress(compressed)
	if err != nil {
		return nil, 0, false, fmt.Errorf("redis route cache: decompress: %w", err)
	}

	var entry cachedRoute
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, 0, false, fmt.Errorf("redis route cache: decode: %w", err)
	}

	return entry.Route, entry.Miles, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, originKey, destKey string, route domain.Route, miles float64) error {
	raw, err := json.Marshal(cachedRoute{Route: route, Miles: miles})
	if err != nil {
		return fmt.Errorf("redis route cache: encode: %w", err)
	}

	compressed, err := gzipCompress(raw)
	if err != nil {
		return fmt.Errorf("redis route cache: compress: %w", err)
	}

	if err := c.client.Set(ctx, c.key(originKey, destKey), compressed, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis route cache: set: %w", err)
	}

	return nil
}

func gzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gzipDecompress(data []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gz.Close()
	return io.ReadAll(gz)
}
