package linking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"investimon-go/internal/auth"
	"investimon-go/internal/domain/user"
)

const (
	inviteCodeLength   = 8
	inviteCodeAttempts = 10
	defaultInviteTTL   = 7 * 24 * time.Hour
)

// Registrar is the identity-registration contract: the linking service
// only depends on getting a created account with a fresh id back.
type Registrar interface {
	Register(ctx context.Context, input user.RegisterInput) (*user.User, error)
}

type Service struct {
	repo      Repository
	accounts  Registrar
	inviteTTL time.Duration
	now       func() time.Time
}

func NewService(repo Repository, accounts Registrar, inviteTTL time.Duration) *Service {
	if inviteTTL <= 0 {
		inviteTTL = defaultInviteTTL
	}
	return &Service{
		repo:      repo,
		accounts:  accounts,
		inviteTTL: inviteTTL,
		now:       time.Now,
	}
}

// CreateInviteCode mints a single-use invite for the given parent or
// teacher. Codes are regenerated on the rare collision with an existing one.
func (s *Service) CreateInviteCode(ctx context.Context, creatorID string) (*Invite, error) {
	creator, err := s.repo.GetUser(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if creator.Role != user.RoleParent && creator.Role != user.RoleTeacher {
		return nil, ErrNotGuardian
	}

	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := auth.RandomCode(inviteCodeLength)
		if err != nil {
			return nil, err
		}

		taken, err := s.repo.IsCodeTaken(ctx, code)
		if err != nil {
			return nil, err
		}
		if taken {
			continue
		}

		invite := Invite{
			Code:          code,
			CreatedBy:     creator.ID,
			CreatedByRole: creator.Role,
			CreatedAt:     s.now().UTC(),
			ExpiresAt:     s.now().UTC().Add(s.inviteTTL),
			Used:          false,
		}
		if err := s.repo.CreateInvite(ctx, &invite); err != nil {
			return nil, err
		}
		return &invite, nil
	}

	return nil, ErrCodeGenerationFailed
}

// InviteByCode returns an invite regardless of its state. Used by the QR
// share endpoint; redemption never goes through here.
func (s *Service) InviteByCode(ctx context.Context, code string) (*Invite, error) {
	return s.repo.GetInvite(ctx, normalizeCode(code))
}

// LinkChildToParent redeems an invite code for the given child. The whole
// redemption runs in one transaction with the invite row locked: exactly
// one concurrent attempt wins, the rest observe used=true and fail with
// ErrInviteUsed. Validation failures leave every document untouched.
func (s *Service) LinkChildToParent(ctx context.Context, childID, code string) (*LinkResult, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}

	var result LinkResult
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		invite, err := tx.GetInviteForUpdate(ctx, code)
		if err != nil {
			return err
		}
		if invite.Used {
			return ErrInviteUsed
		}
		if s.now().After(invite.ExpiresAt) {
			return ErrInviteExpired
		}

		parent, err := tx.GetUser(ctx, invite.CreatedBy)
		if err != nil {
			return err
		}
		child, err := tx.GetUser(ctx, childID)
		if err != nil {
			return err
		}

		if err := tx.AddLink(ctx, parent.ID, child.ID); err != nil {
			return err
		}
		if err := tx.SetParent(ctx, child.ID, &parent.ID); err != nil {
			return err
		}
		if err := tx.MarkInviteUsed(ctx, code, child.ID, s.now().UTC()); err != nil {
			return err
		}

		result = LinkResult{ParentID: parent.ID, ChildID: child.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

type ChildInput struct {
	Name     string
	Email    string
	Password string
	Age      *int
}

// CreateChildAccount registers a child account and links it to the parent.
// Registration happens outside the linking transaction (it is the external
// identity contract); the two link writes commit together.
func (s *Service) CreateChildAccount(ctx context.Context, parentID string, input ChildInput) (*user.User, error) {
	parent, err := s.repo.GetUser(ctx, parentID)
	if err != nil {
		return nil, err
	}

	child, err := s.accounts.Register(ctx, user.RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Role:     user.RoleChild,
		Age:      input.Age,
	})
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.AddLink(ctx, parent.ID, child.ID); err != nil {
			return err
		}
		return tx.SetParent(ctx, child.ID, &parent.ID)
	})
	if err != nil {
		return nil, err
	}

	child.ParentID = &parent.ID
	return child, nil
}

// UnlinkChild removes the bidirectional reference. Idempotent: unlinking
// an already-unlinked pair is not an error.
func (s *Service) UnlinkChild(ctx context.Context, parentID, childID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.RemoveLink(ctx, parentID, childID); err != nil {
			return err
		}
		return tx.SetParent(ctx, childID, nil)
	})
}

// ChildrenAccounts resolves a parent's linked child ids to full accounts,
// silently dropping ids that no longer resolve.
func (s *Service) ChildrenAccounts(ctx context.Context, parentID string) ([]user.User, error) {
	if _, err := s.repo.GetUser(ctx, parentID); err != nil {
		return nil, err
	}

	ids, err := s.repo.ListChildIDs(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []user.User{}, nil
	}

	return s.repo.UsersByIDs(ctx, ids)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
