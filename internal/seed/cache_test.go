package seed

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*SpoilerCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewSpoilerCache(client, time.Hour, slog.Default()), mr
}

func TestSpoilerCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "abc123", cacheKindText)
	assert.False(t, ok, "empty cache should miss")

	cache.Set(ctx, "abc123", cacheKindText, "spoiler text")

	got, ok := cache.Get(ctx, "abc123", cacheKindText)
	assert.True(t, ok)
	assert.Equal(t, "spoiler text", got)

	// Kinds are separate entries.
	_, ok = cache.Get(ctx, "abc123", cacheKindJSON)
	assert.False(t, ok)
}

func TestSpoilerCacheTTL(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "abc123", cacheKindShare, "details")

	mr.FastForward(2 * time.Hour)

	_, ok := cache.Get(ctx, "abc123", cacheKindShare)
	assert.False(t, ok, "entry should expire after the TTL")
}

func TestSpoilerCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "abc123", cacheKindText, "text")
	cache.Set(ctx, "abc123", cacheKindJSON, "{}")
	cache.Set(ctx, "abc123", cacheKindShare, "details")
	cache.Set(ctx, "other", cacheKindText, "other text")

	cache.Invalidate(ctx, "abc123")

	for _, kind := range []string{cacheKindText, cacheKindJSON, cacheKindShare} {
		_, ok := cache.Get(ctx, "abc123", kind)
		assert.False(t, ok, "kind %s should be invalidated", kind)
	}

	got, ok := cache.Get(ctx, "other", cacheKindText)
	assert.True(t, ok, "other seeds keep their entries")
	assert.Equal(t, "other text", got)
}

func TestSpoilerCacheDisabled(t *testing.T) {
	cache := NewSpoilerCache(nil, time.Hour, slog.Default())
	ctx := context.Background()

	// A nil client bypasses caching entirely.
	cache.Set(ctx, "abc123", cacheKindText, "text")
	_, ok := cache.Get(ctx, "abc123", cacheKindText)
	assert.False(t, ok)

	cache.Invalidate(ctx, "abc123")
}
