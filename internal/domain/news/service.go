package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

type Service struct {
	repo      Repository
	cache     Cache
	cacheTTL  time.Duration
	feedLimit int
}

func NewService(repo Repository, cache Cache, cacheTTL time.Duration, feedLimit int) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	if feedLimit <= 0 {
		feedLimit = defaultFeedLimit
	}
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL, feedLimit: feedLimit}
}

// Latest returns the newest stories, newest first, served from the cache
// when fresh.
func (s *Service) Latest(ctx context.Context, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = s.feedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	if items, ok := s.cache.GetFeed(ctx, limit); ok {
		return items, nil
	}

	items, err := s.repo.ListLatest(ctx, limit)
	if err != nil {
		return nil, err
	}

	s.cache.SetFeed(ctx, limit, items, s.cacheTTL)
	return items, nil
}

// Publish stores a new story and invalidates the cached feed.
func (s *Service) Publish(ctx context.Context, characterName, text, sentiment, impact string) (*Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("news text is required")
	}

	switch sentiment {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
	default:
		sentiment = SentimentNeutral
	}

	item := Item{
		ID:            uuid.NewString(),
		CharacterName: characterName,
		News:          text,
		Sentiment:     sentiment,
		Impact:        impact,
		PublishedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, err
	}

	s.cache.Clear(ctx)
	return &item, nil
}
