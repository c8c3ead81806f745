package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	Client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		Client = nil
	})
	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	var missing payload
	found, err := GetJSON(ctx, "missing", &missing)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "key", payload{Name: "alice", Count: 3}, time.Minute))

	var got payload
	found, err = GetJSON(ctx, "key", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "alice", Count: 3}, got)
}

func TestCacheAside(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *int) func() error {
		return func() error {
			calls++
			*dest = 7
			return nil
		}
	}

	var v int
	require.NoError(t, CacheAside(ctx, "count", &v, time.Minute, fetch(&v)))
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, calls)

	// Second call is served from cache
	var v2 int
	require.NoError(t, CacheAside(ctx, "count", &v2, time.Minute, fetch(&v2)))
	assert.Equal(t, 7, v2)
	assert.Equal(t, 1, calls)
}

func TestCacheAsideFetchError(t *testing.T) {
	setupMiniredis(t)

	boom := errors.New("boom")
	var v int
	err := CacheAside(context.Background(), "count", &v, time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestCacheAsideNilClient(t *testing.T) {
	Client = nil

	calls := 0
	var v int
	err := CacheAside(context.Background(), "count", &v, time.Minute, func() error {
		calls++
		v = 9
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 9, v)
	assert.Equal(t, 1, calls)
}

func TestInvalidateUnreadCount(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UnreadCountKey(7), 4, time.Minute))
	InvalidateUnreadCount(ctx, 7)
	assert.False(t, mr.Exists(UnreadCountKey(7)))
}
