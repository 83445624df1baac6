package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var ctx = context.Background()

// FeedCache keeps rendered trip-aggregate documents in Redis for a short TTL.
// Trips and postcards are written by collaborating services, so entries are
// only ever invalidated by expiry or an explicit profile change.
type FeedCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFeedCache(rdb *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached JSON document for a traveller, or redis.Nil.
func (c *FeedCache) Get(travellerID uint64) ([]byte, error) {
	key := fmt.Sprintf("pj:feed:%d", travellerID)
	return c.rdb.Get(ctx, key).Bytes()
}

// Set stores the rendered document under the traveller's key.
func (c *FeedCache) Set(travellerID uint64, doc []byte) error {
	key := fmt.Sprintf("pj:feed:%d", travellerID)
	return c.rdb.Set(ctx, key, doc, c.ttl).Err()
}

// Invalidate drops the cached document, used when the traveller's profile changes.
func (c *FeedCache) Invalidate(travellerID uint64) error {
	key := fmt.Sprintf("pj:feed:%d", travellerID)
	return c.rdb.Del(ctx, key).Err()
}
