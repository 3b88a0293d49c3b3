package inmemory

import (
	"context"
	"sync"
	"time"

	newsdomain "investimon-go/internal/domain/news"
)

type InMemoryNewsCache struct {
	mu    sync.RWMutex
	feeds map[int]feedItem
}

type feedItem struct {
	items     []newsdomain.Item
	expiresAt time.Time
}

func NewInMemoryNewsCache() *InMemoryNewsCache {
	return &InMemoryNewsCache{feeds: make(map[int]feedItem)}
}

func (c *InMemoryNewsCache) GetFeed(ctx context.Context, limit int) ([]newsdomain.Item, bool) {
	now := time.Now()

	c.mu.RLock()
	feed, ok := c.feeds[limit]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !feed.expiresAt.After(now) {
		c.mu.Lock()
		feed, ok = c.feeds[limit]
		if ok && !feed.expiresAt.After(now) {
			delete(c.feeds, limit)
		}
		c.mu.Unlock()
		return nil, false
	}

	items := make([]newsdomain.Item, len(feed.items))
	copy(items, feed.items)
	return items, true
}

func (c *InMemoryNewsCache) SetFeed(ctx context.Context, limit int, items []newsdomain.Item, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	stored := make([]newsdomain.Item, len(items))
	copy(stored, items)

	c.mu.Lock()
	c.feeds[limit] = feedItem{items: stored, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

func (c *InMemoryNewsCache) Clear(ctx context.Context) {
	c.mu.Lock()
	c.feeds = make(map[int]feedItem)
	c.mu.Unlock()
}
