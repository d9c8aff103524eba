package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	lib_store "github.com/eko/gocache/lib/v4/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis "github.com/redis/go-redis/v9"
)

type entry struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func newStore(t *testing.T) (*Store[entry], *miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore[entry](client, "test:"), mr, client
}

func TestStoreSetAndGet(t *testing.T) {
	store, mr, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", entry{Name: "a", Value: 1}))

	raw, err := mr.Get("test:k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"a","value":1}`, raw)

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, entry{Name: "a", Value: 1}, got)
}

func TestStoreMissingKey(t *testing.T) {
	store, _, _ := newStore(t)

	_, err := store.Get(context.Background(), "missing")
	require.Error(t, err)

	var notFound *lib_store.NotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestStoreNonStringKey(t *testing.T) {
	store, _, _ := newStore(t)

	_, err := store.Get(context.Background(), 42)
	require.Error(t, err)
	require.Error(t, store.Set(context.Background(), 42, entry{}))
}

func TestStoreGetWithTTL(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", entry{Name: "ttl"}, lib_store.WithExpiration(time.Minute)))

	got, ttl, err := store.GetWithTTL(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, entry{Name: "ttl"}, got)
	assert.Equal(t, time.Minute, ttl)
}

func TestStoreDefaultExpiration(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewStore[entry](client, "p:", lib_store.WithExpiration(time.Second))

	require.NoError(t, store.Set(context.Background(), "k", entry{}))
	mr.FastForward(2 * time.Second)

	_, err := store.Get(context.Background(), "k")
	require.Error(t, err)
}

func TestStoreCorruptValue(t *testing.T) {
	store, mr, _ := newStore(t)
	require.NoError(t, mr.Set("test:k", "not json"))

	_, err := store.Get(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode cached value")
}

func TestStoreClearKeepsForeignKeys(t *testing.T) {
	store, mr, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", entry{}))
	require.NoError(t, store.Set(ctx, "b", entry{}))
	require.NoError(t, mr.Set("other", "keep"))

	require.NoError(t, store.Clear(ctx))

	assert.False(t, mr.Exists("test:a"))
	assert.False(t, mr.Exists("test:b"))
	assert.True(t, mr.Exists("other"))
}

func TestStoreDelete(t *testing.T) {
	store, mr, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", entry{}))
	require.NoError(t, store.Delete(ctx, "a"))
	assert.False(t, mr.Exists("test:a"))
	assert.Equal(t, RedisType, store.GetType())
}
