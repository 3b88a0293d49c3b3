package character

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	characterdomain "investimon-go/internal/domain/character"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(characterdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) List(ctx context.Context) ([]characterdomain.Character, error) {
	var characters []characterdomain.Character
	if err := r.db.WithContext(ctx).Order("name asc").Find(&characters).Error; err != nil {
		return nil, err
	}
	return characters, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*characterdomain.Character, error) {
	var character characterdomain.Character
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&character).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, characterdomain.ErrCharacterNotFound
		}
		return nil, err
	}
	return &character, nil
}

func (r *PostgresRepository) IsCollected(ctx context.Context, userID, characterID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&characterdomain.CollectionEntry{}).
		Where("user_id = ? AND character_id = ?", userID, characterID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) AddToCollection(ctx context.Context, entry *characterdomain.CollectionEntry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(entry).Error
}

func (r *PostgresRepository) ListCollection(ctx context.Context, userID string) ([]characterdomain.CollectionEntry, error) {
	var entries []characterdomain.CollectionEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("collected_at asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PostgresRepository) CountCollection(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&characterdomain.CollectionEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
