package challenge

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	challengedomain "investimon-go/internal/domain/challenge"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(challengedomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]challengedomain.Challenge, error) {
	var challenges []challengedomain.Challenge
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at asc").
		Find(&challenges).Error
	if err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*challengedomain.Challenge, error) {
	var challenge challengedomain.Challenge
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, challengedomain.ErrChallengeNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

func (r *PostgresRepository) HasCompletion(ctx context.Context, userID, challengeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&challengedomain.Completion{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) AddCompletion(ctx context.Context, completion *challengedomain.Completion) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(completion).Error
}

func (r *PostgresRepository) CountCompletions(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&challengedomain.Completion{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) ListCompletedIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&challengedomain.Completion{}).
		Where("user_id = ?", userID).
		Pluck("challenge_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
