package news

import "context"

type Repository interface {
	ListLatest(ctx context.Context, limit int) ([]Item, error)
	Create(ctx context.Context, item *Item) error
}
