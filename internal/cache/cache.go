package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Cache stores JSON-encoded values with a TTL. Get reports a miss as
// (false, nil); errors are reserved for the backend itself. Expire resets the
// TTL of a live key and reports whether the key existed; a non-positive ttl
// removes the key.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// New builds the backend named by backend. An unreachable redis is not fatal:
// the caller gets a memory cache and a warning, matching how the rest of the
// service degrades when an upstream is down.
func New(ctx context.Context, backend, redisURL string, logger *logrus.Logger) (Cache, error) {
	switch strings.ToLower(backend) {
	case BackendMemory:
		return NewMemoryCache(), nil
	case BackendRedis, "":
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.WithError(err).WithField("component", "cache").
				Warn("Redis unavailable, falling back to in-memory cache")
			_ = client.Close()
			return NewMemoryCache(), nil
		}
		return NewRedisCache(client), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

// Namespaced prefixes every key so several consumers can share one backend.
type Namespaced struct {
	inner  Cache
	prefix string
}

func WithNamespace(c Cache, namespace string) *Namespaced {
	return &Namespaced{inner: c, prefix: namespace + ":"}
}

func (n *Namespaced) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return n.inner.Get(ctx, n.prefix+key, dest)
}

func (n *Namespaced) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return n.inner.Set(ctx, n.prefix+key, value, ttl)
}

func (n *Namespaced) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return n.inner.Expire(ctx, n.prefix+key, ttl)
}

func (n *Namespaced) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = n.prefix + k
	}
	return n.inner.Delete(ctx, prefixed...)
}

func (n *Namespaced) Ping(ctx context.Context) error {
	return n.inner.Ping(ctx)
}

// Cache key generators

func WeatherKey(team string, kickoff time.Time) string {
	return fmt.Sprintf("weather:%s:%d", team, kickoff.Unix())
}

func OddsKey(season, week int, home, away string) string {
	return fmt.Sprintf("odds:%d:%d:%s:%s", season, week, home, away)
}

func DefenseRankKey(season, week int, position string) string {
	return fmt.Sprintf("dvp:%d:%d:%s", season, week, position)
}
