package omdb

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores normalized lookup results in Redis so repeated queries for
// the same title skip the upstream API. Failures are swallowed: a broken
// cache only costs an extra API call, never a request.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache returns a Cache bound to rdb, or nil when rdb is nil so callers
// can pass the result straight into New.
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) key(title string) string {
	return "omdb:" + strings.ToLower(strings.TrimSpace(title))
}

func (c *Cache) Get(ctx context.Context, title string) (Result, bool) {
	raw, err := c.rdb.Get(ctx, c.key(title)).Bytes()
	if err != nil {
		return Result{}, false
	}
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return Result{}, false
	}
	return res, true
}

func (c *Cache) Put(ctx context.Context, title string, res Result) {
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, c.key(title), raw, c.ttl).Err()
}
