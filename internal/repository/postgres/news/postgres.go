package news

import (
	"context"

	"gorm.io/gorm"
	newsdomain "investimon-go/internal/domain/news"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListLatest(ctx context.Context, limit int) ([]newsdomain.Item, error) {
	var items []newsdomain.Item
	err := r.db.WithContext(ctx).
		Order("published_at desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) Create(ctx context.Context, item *newsdomain.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}
