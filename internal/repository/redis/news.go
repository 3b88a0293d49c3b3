package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	newsdomain "investimon-go/internal/domain/news"
)

const feedKeyPrefix = "news:feed:"

// RedisNewsCache shares the rendered news feed across instances. Cache
// failures degrade to a repository read, they are never surfaced.
type RedisNewsCache struct {
	client *redis.Client
}

func NewRedisNewsCache(client *redis.Client) *RedisNewsCache {
	return &RedisNewsCache{client: client}
}

func (c *RedisNewsCache) GetFeed(ctx context.Context, limit int) ([]newsdomain.Item, bool) {
	value, err := c.client.Get(ctx, feedKey(limit)).Result()
	if err != nil {
		return nil, false
	}

	var items []newsdomain.Item
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *RedisNewsCache) SetFeed(ctx context.Context, limit int, items []newsdomain.Item, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, feedKey(limit), data, ttl).Err()
}

func (c *RedisNewsCache) Clear(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, feedKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		_ = c.client.Del(ctx, iter.Val()).Err()
	}
}

func feedKey(limit int) string {
	return feedKeyPrefix + strconv.Itoa(limit)
}
