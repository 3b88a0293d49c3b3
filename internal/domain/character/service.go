package character

import (
	"context"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Character, error) {
	characters, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range characters {
		characters[i].Traits = MergeTraits(characters[i].Traits)
	}
	return characters, nil
}

// Collect adds a character to the user's collection at level 1. Each
// character can be collected once per user.
func (s *Service) Collect(ctx context.Context, userID, characterID string) (*CollectionEntry, error) {
	var entry CollectionEntry
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.Get(ctx, characterID); err != nil {
			return err
		}

		collected, err := tx.IsCollected(ctx, userID, characterID)
		if err != nil {
			return err
		}
		if collected {
			return ErrAlreadyCollected
		}

		entry = CollectionEntry{
			UserID:      userID,
			CharacterID: characterID,
			Level:       1,
			CollectedAt: s.now().UTC(),
		}
		return tx.AddToCollection(ctx, &entry)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UserCollection resolves a user's collection entries to full characters,
// dropping entries whose character no longer exists.
func (s *Service) UserCollection(ctx context.Context, userID string) ([]Collected, error) {
	entries, err := s.repo.ListCollection(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]Collected, 0, len(entries))
	for _, entry := range entries {
		c, err := s.repo.Get(ctx, entry.CharacterID)
		if err != nil {
			continue
		}
		c.Traits = MergeTraits(c.Traits)
		result = append(result, Collected{
			Character:   *c,
			Level:       entry.Level,
			CollectedAt: entry.CollectedAt,
		})
	}
	return result, nil
}

func (s *Service) CollectionCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountCollection(ctx, userID)
}
