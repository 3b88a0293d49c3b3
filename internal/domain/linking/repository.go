package linking

import (
	"context"
	"time"

	"investimon-go/internal/domain/user"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateInvite(ctx context.Context, invite *Invite) error
	GetInvite(ctx context.Context, code string) (*Invite, error)
	// GetInviteForUpdate locks the invite row for the duration of the
	// surrounding transaction so concurrent redemptions serialize.
	GetInviteForUpdate(ctx context.Context, code string) (*Invite, error)
	MarkInviteUsed(ctx context.Context, code, usedBy string, usedAt time.Time) error
	IsCodeTaken(ctx context.Context, code string) (bool, error)

	GetUser(ctx context.Context, id string) (*user.User, error)
	UsersByIDs(ctx context.Context, ids []string) ([]user.User, error)
	SetParent(ctx context.Context, childID string, parentID *string) error

	AddLink(ctx context.Context, parentID, childID string) error
	RemoveLink(ctx context.Context, parentID, childID string) error
	ListChildIDs(ctx context.Context, parentID string) ([]string, error)
}
