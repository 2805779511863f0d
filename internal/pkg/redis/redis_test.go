package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"Agora/internal/pkg/consts"
	"Agora/internal/pkg/search/searchtest"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCommunityNameCache_ReadThrough(t *testing.T) {
	mr, rdb := newTestRedis(t)
	backend := searchtest.NewNameResolver()
	cache := NewCommunityNameCache(rdb, backend, 10*time.Minute)
	ctx := context.Background()

	names, err := cache.ResolveCommunityNames(ctx, []uint64{1, 2, 999})
	require.NoError(t, err)
	assert.Equal(t, map[uint64]string{1: "Frontend", 2: "Backend"}, names)
	assert.Equal(t, 1, backend.Calls)

	got, err := mr.Get(consts.CommunityNameKey + "1")
	require.NoError(t, err)
	assert.Equal(t, "Frontend", got)
	assert.Equal(t, 10*time.Minute, mr.TTL(consts.CommunityNameKey+"1"))

	names, err = cache.ResolveCommunityNames(ctx, []uint64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, map[uint64]string{1: "Frontend", 2: "Backend"}, names)
	assert.Equal(t, 1, backend.Calls, "fully cached lookups skip the backend")
}

func TestCommunityNameCache_RedisDownFallsBack(t *testing.T) {
	mr, rdb := newTestRedis(t)
	backend := searchtest.NewNameResolver()
	cache := NewCommunityNameCache(rdb, backend, time.Minute)
	mr.Close()

	names, err := cache.ResolveCommunityNames(context.Background(), []uint64{3})
	require.NoError(t, err)
	assert.Equal(t, map[uint64]string{3: "General"}, names)
}

func TestCommunityNameCache_BackendError(t *testing.T) {
	_, rdb := newTestRedis(t)
	backend := searchtest.NewNameResolver()
	backend.Err = errors.New("db down")
	cache := NewCommunityNameCache(rdb, backend, time.Minute)

	_, err := cache.ResolveCommunityNames(context.Background(), []uint64{3})
	assert.Error(t, err)
}

func TestHotQueryStore(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewHotQueryStore(rdb)
	ctx := context.Background()

	for _, q := range []string{"go", "react", "go", "go", "react", "rust"} {
		require.NoError(t, store.Incr(ctx, q))
	}

	top, err := store.Top(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []HotQuery{{"go", 3}, {"react", 2}}, top)

	empty, err := store.Top(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)

	removed, err := store.Remove(ctx, "go")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = store.Remove(ctx, "go")
	require.NoError(t, err)
	assert.False(t, removed)

	top, err = store.Top(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []HotQuery{{"react", 2}}, top)
}

func TestHotQueryStore_IncrOnce(t *testing.T) {
	mr, rdb := newTestRedis(t)
	store := NewHotQueryStore(rdb)
	ctx := context.Background()

	counted, err := store.IncrOnce(ctx, "e-1", "react")
	require.NoError(t, err)
	assert.True(t, counted)
	counted, err = store.IncrOnce(ctx, "e-1", "react")
	require.NoError(t, err)
	assert.False(t, counted)
	counted, err = store.IncrOnce(ctx, "e-2", "react")
	require.NoError(t, err)
	assert.True(t, counted)

	top, err := store.Top(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []HotQuery{{"react", 2}}, top)
	assert.Equal(t, consts.HotQueryEventTTL, mr.TTL(consts.HotQueryEventKey+"e-1"))
}

func TestHotQueryStore_Decay(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewHotQueryStore(rdb)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, store.Incr(ctx, "go"))
	}
	require.NoError(t, store.Incr(ctx, "once"))
	require.NoError(t, store.Incr(ctx, "react"))
	require.NoError(t, store.Incr(ctx, "react"))

	require.NoError(t, store.Decay(ctx, 0.5, 0.5, 200))
	top, err := store.Top(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []HotQuery{{"go", 2}, {"react", 1}, {"once", 0.5}}, top)

	require.NoError(t, store.Decay(ctx, 0.5, 0.5, 200))
	top, err = store.Top(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []HotQuery{{"go", 1}, {"react", 0.5}}, top)
}

func TestHotQueryStore_DecayKeepsTop(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewHotQueryStore(rdb)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		for j := 0; j < i*2; j++ {
			require.NoError(t, store.Incr(ctx, fmt.Sprintf("q%d", i)))
		}
	}

	require.NoError(t, store.Decay(ctx, 0.5, 0.5, 3))
	top, err := store.Top(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []HotQuery{{"q5", 5}, {"q4", 4}, {"q3", 3}}, top)
}

func TestCheckpointStore(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewCheckpointStore(rdb)
	ctx := context.Background()

	cp, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, cp.UpdatedAt.IsZero())
	assert.Zero(t, cp.PostID)

	want := IndexCheckpoint{UpdatedAt: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), PostID: 42}
	require.NoError(t, store.Save(ctx, want))

	cp, err = store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, want.UpdatedAt.Equal(cp.UpdatedAt))
	assert.Equal(t, uint64(42), cp.PostID)
}

func TestTokenBlacklist(t *testing.T) {
	mr, rdb := newTestRedis(t)
	bl := NewTokenBlacklist(rdb)
	ctx := context.Background()

	revoked, err := bl.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "abc", time.Hour))
	revoked, err = bl.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Hour)
	revoked, err = bl.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestLocker(t *testing.T) {
	_, rdb := newTestRedis(t)
	locker := NewLocker(rdb)
	ctx := context.Background()

	ok, err := locker.TryLock(ctx, "lock:test", "a", time.Minute, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = locker.TryLock(ctx, "lock:test", "b", time.Minute, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, locker.UnLock(ctx, "lock:test", "b"))
	ok, err = locker.TryLock(ctx, "lock:test", "b", time.Minute, 1)
	require.NoError(t, err)
	assert.False(t, ok, "only the holder can release")

	require.NoError(t, locker.UnLock(ctx, "lock:test", "a"))
	ok, err = locker.TryLock(ctx, "lock:test", "b", time.Minute, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}
