package seed

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Spoiler artifact kinds used as cache key segments.
const (
	cacheKindText  = "text"
	cacheKindJSON  = "json"
	cacheKindShare = "share"
)

// SpoilerCache caches rendered spoiler artifacts so repeated share
// page views do not re-invoke the engine. A nil redis client disables
// caching: every Get misses and every Set is a no-op.
type SpoilerCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewSpoilerCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *SpoilerCache {
	return &SpoilerCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *SpoilerCache) Get(ctx context.Context, shareID, kind string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}

	logger := c.logger.With("component", "spoiler_cache", "share_id", shareID, "kind", kind)

	value, err := c.client.Get(ctx, cacheKey(shareID, kind)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Spoiler cache read failed", "error", err)
		}
		return "", false
	}

	logger.Debug("Spoiler cache hit")
	return value, true
}

func (c *SpoilerCache) Set(ctx context.Context, shareID, kind, value string) {
	if c == nil || c.client == nil {
		return
	}

	logger := c.logger.With("component", "spoiler_cache", "share_id", shareID, "kind", kind)

	if err := c.client.Set(ctx, cacheKey(shareID, kind), value, c.ttl).Err(); err != nil {
		// Cache failures never fail the request.
		logger.Warn("Spoiler cache write failed", "error", err)
		return
	}

	logger.Debug("Spoiler cache stored", "ttl", c.ttl)
}

// Invalidate removes all cached artifacts for a seed.
func (c *SpoilerCache) Invalidate(ctx context.Context, shareID string) {
	if c == nil || c.client == nil {
		return
	}

	logger := c.logger.With("component", "spoiler_cache", "share_id", shareID)

	keys := []string{
		cacheKey(shareID, cacheKindText),
		cacheKey(shareID, cacheKindJSON),
		cacheKey(shareID, cacheKindShare),
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("Spoiler cache invalidation failed", "error", err)
		return
	}

	logger.Debug("Spoiler cache invalidated")
}

func cacheKey(shareID, kind string) string {
	return "spoilers:" + kind + ":" + shareID
}
