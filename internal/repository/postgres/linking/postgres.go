package linking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	linkingdomain "investimon-go/internal/domain/linking"
	userdomain "investimon-go/internal/domain/user"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(linkingdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateInvite(ctx context.Context, invite *linkingdomain.Invite) error {
	return r.db.WithContext(ctx).Create(invite).Error
}

func (r *PostgresRepository) GetInvite(ctx context.Context, code string) (*linkingdomain.Invite, error) {
	var invite linkingdomain.Invite
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, linkingdomain.ErrInviteNotFound
		}
		return nil, err
	}
	return &invite, nil
}

// GetInviteForUpdate takes a row lock so concurrent redemptions of the
// same code queue behind each other until the transaction commits.
func (r *PostgresRepository) GetInviteForUpdate(ctx context.Context, code string) (*linkingdomain.Invite, error) {
	var invite linkingdomain.Invite
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", code).
		First(&invite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, linkingdomain.ErrInviteNotFound
		}
		return nil, err
	}
	return &invite, nil
}

func (r *PostgresRepository) MarkInviteUsed(ctx context.Context, code, usedBy string, usedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&linkingdomain.Invite{}).Where("code = ?", code).Updates(map[string]interface{}{
		"used":    true,
		"used_by": usedBy,
		"used_at": usedAt,
	}).Error
}

func (r *PostgresRepository) IsCodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&linkingdomain.Invite{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) GetUser(ctx context.Context, id string) (*userdomain.User, error) {
	var user userdomain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, linkingdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) UsersByIDs(ctx context.Context, ids []string) ([]userdomain.User, error) {
	var users []userdomain.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresRepository) SetParent(ctx context.Context, childID string, parentID *string) error {
	return r.db.WithContext(ctx).Model(&userdomain.User{}).Where("id = ?", childID).Update("parent_id", parentID).Error
}

func (r *PostgresRepository) AddLink(ctx context.Context, parentID, childID string) error {
	link := linkingdomain.FamilyLink{ParentID: parentID, ChildID: childID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
}

func (r *PostgresRepository) RemoveLink(ctx context.Context, parentID, childID string) error {
	return r.db.WithContext(ctx).
		Delete(&linkingdomain.FamilyLink{}, "parent_id = ? AND child_id = ?", parentID, childID).Error
}

func (r *PostgresRepository) ListChildIDs(ctx context.Context, parentID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&linkingdomain.FamilyLink{}).
		Where("parent_id = ?", parentID).
		Order("linked_at asc").
		Pluck("child_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
