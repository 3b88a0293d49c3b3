package character

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	List(ctx context.Context) ([]Character, error)
	Get(ctx context.Context, id string) (*Character, error)

	IsCollected(ctx context.Context, userID, characterID string) (bool, error)
	AddToCollection(ctx context.Context, entry *CollectionEntry) error
	ListCollection(ctx context.Context, userID string) ([]CollectionEntry, error)
	CountCollection(ctx context.Context, userID string) (int64, error)
}
