package xcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/store"

	cachelib "github.com/eko/gocache/lib/v4/cache"
	gocache_store "github.com/eko/gocache/store/go_cache/v4"
	gocache "github.com/patrickmn/go-cache"

	"github.com/looplj/jsonfixer/internal/log"
	redis_store "github.com/looplj/jsonfixer/internal/pkg/xcache/redis"
	"github.com/looplj/jsonfixer/internal/pkg/xredis"
)

// Cache is the gocache interface, typed by the cached value.
type Cache[T any] = cachelib.CacheInterface[T]

type SetterCache[T any] = cachelib.SetterCacheInterface[T]

// NewMemory creates an in-memory cache backed by patrickmn/go-cache.
func NewMemory[T any](expiration, cleanupInterval time.Duration) SetterCache[T] {
	client := gocache.New(expiration, cleanupInterval)
	return cachelib.New[T](gocache_store.NewGoCache(client, store.WithExpiration(expiration)))
}

// NewRedis creates a cache storing JSON encoded values in redis under prefix.
func NewRedis[T any](client redis_store.Client, prefix string, options ...Option) SetterCache[T] {
	return cachelib.New[T](redis_store.NewStore[T](client, prefix, options...))
}

// NewTwoLevel chains a memory cache in front of a redis cache.
func NewTwoLevel[T any](memory, redis SetterCache[T]) Cache[T] {
	return cachelib.NewChain[T](memory, redis)
}

// NewFromConfig builds a typed cache from the given Config.
// An empty mode yields a noop cache.
func NewFromConfig[T any](cfg Config) (Cache[T], error) {
	ctx := context.Background()

	switch cfg.Mode {
	case "":
		log.Debug(ctx, "cache disabled")
		return NewNoop[T](), nil
	case ModeMemory:
		log.Info(ctx, "using memory cache")
		return newMemoryFromConfig[T](cfg.Memory), nil
	case ModeRedis:
		rds, err := newRedisFromConfig[T](cfg)
		if err != nil {
			return nil, err
		}

		log.Info(ctx, "using redis cache")

		return rds, nil
	case ModeTwoLevel:
		rds, err := newRedisFromConfig[T](cfg)
		if err != nil {
			return nil, err
		}

		log.Info(ctx, "using two-level cache")

		return NewTwoLevel[T](newMemoryFromConfig[T](cfg.Memory), rds), nil
	default:
		return nil, fmt.Errorf("unknown cache mode: %s", cfg.Mode)
	}
}

func newMemoryFromConfig[T any](cfg MemoryConfig) SetterCache[T] {
	return NewMemory[T](
		defaultIfZero(cfg.Expiration, 5*time.Minute),
		defaultIfZero(cfg.CleanupInterval, 10*time.Minute),
	)
}

func newRedisFromConfig[T any](cfg Config) (SetterCache[T], error) {
	client, err := xredis.NewClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}

	prefix := cfg.Redis.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	return NewRedis[T](client, prefix, WithExpiration(defaultIfZero(cfg.Redis.Expiration, 30*time.Minute))), nil
}

func defaultIfZero(d, def time.Duration) time.Duration {
	if d == 0 {
		return def
	}

	return d
}

// IsNotFound reports whether err is a cache miss rather than a backend failure.
func IsNotFound(err error) bool {
	var notFound *store.NotFound
	return errors.As(err, &notFound)
}
