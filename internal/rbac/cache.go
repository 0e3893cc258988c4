package rbac

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a GrantSource that keeps fetched grant lists in redis so screens
// mounted within the TTL share one backend fetch. It wraps another source;
// any cache trouble falls through to that source, so a flaky redis can slow
// permission loads down but never break them.
type Cache struct {
	source GrantSource
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCache constructs a Cache around source.
func NewCache(source GrantSource, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{source: source, client: client, ttl: ttl, logger: logger}
}

func grantCacheKey(userID int64) string {
	return fmt.Sprintf("ledgerline:grants:%d", userID)
}

// Grants returns the cached grant list for the user, fetching and storing it
// on a miss.
func (c *Cache) Grants(ctx context.Context, userID int64) ([]Grant, error) {
	key := grantCacheKey(userID)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var grants []Grant
		if err := json.Unmarshal(payload, &grants); err == nil {
			return grants, nil
		}
		// Unreadable entry; drop it and refetch.
		_ = c.client.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) && c.logger != nil {
		c.logger.Warn("grant cache read failed", slog.Any("error", err))
	}

	grants, err := c.source.Grants(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(grants); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil && c.logger != nil {
			c.logger.Warn("grant cache write failed", slog.Any("error", err))
		}
	}
	return grants, nil
}

// Invalidate drops the cached grants for a user, forcing the next load to hit
// the backend. Called after role or permission edits.
func (c *Cache) Invalidate(ctx context.Context, userID int64) error {
	err := c.client.Del(ctx, grantCacheKey(userID)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("rbac: invalidate grants: %w", err)
	}
	return nil
}
