package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache()
	t.Cleanup(func() {
		_ = c.Close()
	})
	return c
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	require.NoError(t, c.Set(ctx, "stats", []byte(`{"students":10}`), time.Minute))

	got, err := c.Get(ctx, "stats")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"students":10}`), got)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := newTestCache(t)

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	require.NoError(t, c.Set(ctx, "stats", []byte("x"), 20*time.Millisecond))

	_, err := c.Get(ctx, "stats")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := c.Get(ctx, "stats")
		return err == ErrCacheMiss
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	require.NoError(t, c.Set(ctx, "stats", []byte("x"), time.Minute))
	require.NoError(t, c.Delete(ctx, "stats"))

	_, err := c.Get(ctx, "stats")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheValueIsolation(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	original := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", original, time.Minute))
	original[0] = 'z'

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	// Mutating the returned slice never corrupts the cached copy.
	got[0] = 'z'
	again, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
