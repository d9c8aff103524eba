package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	lib_store "github.com/eko/gocache/lib/v4/store"
	redis "github.com/redis/go-redis/v9"
)

// Client is the subset of the go-redis client the store needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
	Set(ctx context.Context, key string, values any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

// RedisType is the store type reported by GetType.
const RedisType = "redis"

const scanBatch = 256

// Store keeps JSON encoded values of type T under a key prefix.
// Clear and Invalidate only remove keys carrying the prefix, so the store can share a
// database with other applications.
type Store[T any] struct {
	client  Client
	prefix  string
	options *lib_store.Options
}

func NewStore[T any](client Client, prefix string, options ...lib_store.Option) *Store[T] {
	return &Store[T]{
		client:  client,
		prefix:  prefix,
		options: lib_store.ApplyOptions(options...),
	}
}

func (s *Store[T]) key(key any) (string, error) {
	k, ok := key.(string)
	if !ok {
		return "", fmt.Errorf("expected string key, got %T", key)
	}

	return s.prefix + k, nil
}

func (s *Store[T]) Get(ctx context.Context, key any) (any, error) {
	k, err := s.key(key)
	if err != nil {
		return *new(T), lib_store.NotFoundWithCause(err)
	}

	return s.load(ctx, k)
}

func (s *Store[T]) GetWithTTL(ctx context.Context, key any) (any, time.Duration, error) {
	k, err := s.key(key)
	if err != nil {
		return *new(T), 0, lib_store.NotFoundWithCause(err)
	}

	value, err := s.load(ctx, k)
	if err != nil {
		return value, 0, err
	}

	ttl, err := s.client.TTL(ctx, k).Result()
	if err != nil {
		return *new(T), 0, err
	}

	return value, ttl, nil
}

func (s *Store[T]) load(ctx context.Context, key string) (T, error) {
	var result T

	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return result, lib_store.NotFoundWithCause(err)
	}

	if err != nil {
		return result, err
	}

	if err := json.Unmarshal(raw, &result); err != nil {
		return *new(T), fmt.Errorf("decode cached value: %w", err)
	}

	return result, nil
}

func (s *Store[T]) Set(ctx context.Context, key any, value any, options ...lib_store.Option) error {
	k, err := s.key(key)
	if err != nil {
		return err
	}

	opts := lib_store.ApplyOptionsWithDefault(s.options, options...)

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached value: %w", err)
	}

	return s.client.Set(ctx, k, raw, opts.Expiration).Err()
}

func (s *Store[T]) Delete(ctx context.Context, key any) error {
	k, err := s.key(key)
	if err != nil {
		return err
	}

	return s.client.Del(ctx, k).Err()
}

func (s *Store[T]) GetType() string {
	return RedisType
}

// Invalidate drops every key under the prefix; tags are not tracked.
func (s *Store[T]) Invalidate(ctx context.Context, _ ...lib_store.InvalidateOption) error {
	return s.Clear(ctx)
}

func (s *Store[T]) Clear(ctx context.Context) error {
	var cursor uint64

	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", scanBatch).Result()
		if err != nil {
			return err
		}

		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}

		if next == 0 {
			return nil
		}

		cursor = next
	}
}
