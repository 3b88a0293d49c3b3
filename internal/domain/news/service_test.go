package news

import (
	"context"
	"testing"
	"time"
)

type fakeNewsRepo struct {
	items     []Item
	listCalls int
}

func (r *fakeNewsRepo) ListLatest(ctx context.Context, limit int) ([]Item, error) {
	r.listCalls++
	if limit > len(r.items) {
		limit = len(r.items)
	}
	return append([]Item(nil), r.items[:limit]...), nil
}

func (r *fakeNewsRepo) Create(ctx context.Context, item *Item) error {
	r.items = append([]Item{*item}, r.items...)
	return nil
}

type memoryFeedCache struct {
	feeds map[int][]Item
}

func newMemoryFeedCache() *memoryFeedCache {
	return &memoryFeedCache{feeds: make(map[int][]Item)}
}

func (c *memoryFeedCache) GetFeed(ctx context.Context, limit int) ([]Item, bool) {
	items, ok := c.feeds[limit]
	return items, ok
}

func (c *memoryFeedCache) SetFeed(ctx context.Context, limit int, items []Item, ttl time.Duration) {
	c.feeds[limit] = items
}

func (c *memoryFeedCache) Clear(ctx context.Context) {
	c.feeds = make(map[int][]Item)
}

func TestLatestUsesCache(t *testing.T) {
	repo := &fakeNewsRepo{items: []Item{{ID: "1", News: "Penny Pig had a great quarter"}}}
	svc := NewService(repo, newMemoryFeedCache(), time.Minute, 0)

	if _, err := svc.Latest(context.Background(), 10); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.Latest(context.Background(), 10); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected one repo read, got %d", repo.listCalls)
	}
}

func TestPublishInvalidatesCache(t *testing.T) {
	repo := &fakeNewsRepo{}
	cache := newMemoryFeedCache()
	svc := NewService(repo, cache, time.Minute, 0)

	if _, err := svc.Latest(context.Background(), 10); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	item, err := svc.Publish(context.Background(), "Penny Pig", "Prices up", "positive", "medium")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if item.ID == "" || item.Sentiment != SentimentPositive {
		t.Fatalf("unexpected item: %+v", item)
	}
	if len(cache.feeds) != 0 {
		t.Fatalf("publish must clear the cached feed")
	}

	items, err := svc.Latest(context.Background(), 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 1 || items[0].ID != item.ID {
		t.Fatalf("expected the new story in the feed, got %+v", items)
	}
}

func TestPublishUnknownSentimentFallsBackToNeutral(t *testing.T) {
	svc := NewService(&fakeNewsRepo{}, nil, 0, 0)

	item, err := svc.Publish(context.Background(), "Penny Pig", "Something happened", "confused", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if item.Sentiment != SentimentNeutral {
		t.Fatalf("expected neutral fallback, got %q", item.Sentiment)
	}
}
