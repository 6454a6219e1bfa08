package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/flickpick/core"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	s, err := NewRedisStore(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func backends(t *testing.T) map[string]core.KeyValueStore {
	t.Helper()
	mem := NewMemoryStore()
	t.Cleanup(func() { _ = mem.Close() })
	rs, _ := newRedisStore(t)
	return map[string]core.KeyValueStore{"memory": mem, "redis": rs}
}

func TestStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "movie:1")
			assert.True(t, core.IsStoreNotFound(err), "missing key should be not found, got %v", err)

			require.NoError(t, s.Set(ctx, "movie:1", []byte(`{"id":1}`)))
			got, err := s.Get(ctx, "movie:1")
			require.NoError(t, err)
			assert.Equal(t, `{"id":1}`, string(got))

			require.NoError(t, s.Delete(ctx, "movie:1"))
			_, err = s.Get(ctx, "movie:1")
			assert.True(t, core.IsStoreNotFound(err))
		})
	}
}

func TestStore_BatchGetSkipsMissingKeys(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.BatchSet(ctx, map[string][]byte{
				"movie:1": []byte("a"),
				"movie:2": []byte("b"),
			}))
			got, err := s.BatchGet(ctx, []string{"movie:1", "movie:9", "movie:2"})
			require.NoError(t, err)
			assert.Equal(t, map[string][]byte{"movie:1": []byte("a"), "movie:2": []byte("b")}, got)

			empty, err := s.BatchGet(ctx, nil)
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestStore_ZRangeDescending(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.ZAdd(ctx, "pool", 1, "10"))
			require.NoError(t, s.ZAdd(ctx, "pool", 3, "30"))
			require.NoError(t, s.ZAdd(ctx, "pool", 2, "20"))

			all, err := s.ZRange(ctx, "pool", 0, -1)
			require.NoError(t, err)
			assert.Equal(t, []string{"30", "20", "10"}, all)

			top, err := s.ZRange(ctx, "pool", 0, 1)
			require.NoError(t, err)
			assert.Equal(t, []string{"30", "20"}, top)

			score, err := s.ZScore(ctx, "pool", "20")
			require.NoError(t, err)
			assert.Equal(t, 2.0, score)

			_, err = s.ZScore(ctx, "pool", "99")
			assert.True(t, core.IsStoreNotFound(err))

			missing, err := s.ZRange(ctx, "nope", 0, -1)
			require.NoError(t, err)
			assert.Empty(t, missing)
		})
	}
}

func TestStore_Hash(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.HSet(ctx, "history:u1", "1", []byte("x")))
			require.NoError(t, s.HSet(ctx, "history:u1", "2", []byte("y")))

			v, err := s.HGet(ctx, "history:u1", "2")
			require.NoError(t, err)
			assert.Equal(t, "y", string(v))

			_, err = s.HGet(ctx, "history:u1", "3")
			assert.True(t, core.IsStoreNotFound(err))

			all, err := s.HGetAll(ctx, "history:u1")
			require.NoError(t, err)
			assert.Len(t, all, 2)

			none, err := s.HGetAll(ctx, "history:nobody")
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 10))
	mr.FastForward(11 * time.Second)

	_, err := s.Get(ctx, "k")
	assert.True(t, core.IsStoreNotFound(err))
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisStore(context.Background(), RedisConfig{Addr: addr})
	assert.Error(t, err)
}

func TestNewRedisStoreFromClient(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	s := NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer s.Close()

	assert.Equal(t, "redis", s.Name())
	require.NoError(t, s.Set(context.Background(), "k", []byte("v")))
	assert.True(t, mr.Exists("k"))
}

func TestMemoryStore_TTLExpires(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	s.data["k"] = &entry{value: []byte("v"), expire: time.Now().Add(-time.Second)}
	_, err := s.Get(ctx, "k")
	assert.True(t, core.IsStoreNotFound(err))

	require.NoError(t, s.Set(ctx, "live", []byte("v"), 60))
	v, err := s.Get(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "v", string(v))
}

func TestMemoryStore_ZRangeTiesAndBounds(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	for _, m := range []string{"a", "c", "b"} {
		require.NoError(t, s.ZAdd(ctx, "z", 1, m))
	}
	got, err := s.ZRange(ctx, "z", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, got)

	got, err = s.ZRange(ctx, "z", 1, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, got)

	got, err = s.ZRange(ctx, "z", 5, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStore_CloseIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}
