package news

import (
	"context"
	"time"
)

// Cache holds the rendered feed for a short TTL. Implementations: redis
// when configured, in-memory otherwise.
type Cache interface {
	GetFeed(ctx context.Context, limit int) ([]Item, bool)
	SetFeed(ctx context.Context, limit int, items []Item, ttl time.Duration)
	Clear(ctx context.Context)
}

type noopCache struct{}

func (noopCache) GetFeed(context.Context, int) ([]Item, bool) { return nil, false }

func (noopCache) SetFeed(context.Context, int, []Item, time.Duration) {}

func (noopCache) Clear(context.Context) {}
