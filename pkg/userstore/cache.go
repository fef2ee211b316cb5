package userstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flowvault/flowvault/pkg/logger"
)

const cacheKeyPrefix = "userstore:"

// Cache is a read-through Redis cache in front of a Store. Every dispatch
// for a user-addressed intent performs a profile lookup, so caching keeps
// the external identity service off the hot path. Cache failures degrade to
// the underlying store and are logged, never surfaced.
type Cache struct {
	store  Store
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithCacheLogger sets the logger for cache degradation events.
func WithCacheLogger(log *slog.Logger) CacheOption {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}

// NewCache wraps store with a Redis read-through cache. A non-positive TTL
// defaults to one minute: long enough to absorb dispatch bursts, short
// enough that webhook endpoint changes propagate quickly.
func NewCache(store Store, client *redis.Client, ttl time.Duration, opts ...CacheOption) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	c := &Cache{
		store:  store,
		client: client,
		ttl:    ttl,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetUser implements Store. Not-found results are not cached so that newly
// provisioned users become visible immediately.
func (c *Cache) GetUser(ctx context.Context, userID string) (User, error) {
	key := cacheKeyPrefix + userID

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var user User
		if err := json.Unmarshal(raw, &user); err == nil {
			return user, nil
		}
		// Corrupt entry; fall through to the store and overwrite.
	} else if !errors.Is(err, redis.Nil) {
		c.log.LogAttrs(ctx, slog.LevelWarn, "user cache read failed",
			logger.UserID(userID),
			logger.Error(err),
		)
	}

	user, err := c.store.GetUser(ctx, userID)
	if err != nil {
		return User{}, err
	}

	if raw, err := json.Marshal(user); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.LogAttrs(ctx, slog.LevelWarn, "user cache write failed",
				logger.UserID(userID),
				logger.Error(err),
			)
		}
	}

	return user, nil
}

// Invalidate drops the cached profile for a user, e.g. after an endpoint
// registration change.
func (c *Cache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, cacheKeyPrefix+userID).Err()
}
