package render

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProgressCache is an optional, explicitly time-bounded cache used to
// rate-limit identical concurrent polls. It only ever holds in-progress
// states; terminal states are never served from cache.
type ProgressCache interface {
	Get(ctx context.Context, h Handle) (Progress, bool)
	Set(ctx context.Context, h Handle, st Progress)
	Drop(ctx context.Context, h Handle)
}

// RedisCache implements ProgressCache on Redis with a fixed TTL.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) key(h Handle) string {
	return "scenecast:progress:" + h.BucketName + "/" + h.RenderID
}

func (c *RedisCache) Get(ctx context.Context, h Handle) (Progress, bool) {
	raw, err := c.rdb.Get(ctx, c.key(h)).Bytes()
	if err != nil {
		return Progress{}, false
	}

	var st Progress
	if err := json.Unmarshal(raw, &st); err != nil {
		return Progress{}, false
	}
	if st.Type != StateInProgress {
		return Progress{}, false
	}
	return st, true
}

func (c *RedisCache) Set(ctx context.Context, h Handle, st Progress) {
	if st.Type != StateInProgress || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return
	}
	// Cache misses are cheap; cache write failures are ignored on purpose.
	_ = c.rdb.Set(ctx, c.key(h), raw, c.ttl).Err()
}

func (c *RedisCache) Drop(ctx context.Context, h Handle) {
	_ = c.rdb.Del(ctx, c.key(h)).Err()
}
