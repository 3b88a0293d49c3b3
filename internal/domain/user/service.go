package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"investimon-go/internal/auth"
)

const minPasswordLength = 6

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
	Age      *int
}

// Register creates a new account with the starting defaults for its role.
// The returned user id is the handle every linking operation works with.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = RoleChild
	}
	if !validRole(role) {
		return nil, ErrInvalidRole
	}
	if IsSupervised(role) && input.Age == nil {
		return nil, ErrAgeRequired
	}

	taken, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	account := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Role:         role,
		Age:          input.Age,
	}
	applyDefaults(&account)

	if err := s.repo.Create(ctx, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Authenticate verifies credentials and returns the matching user.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.CheckPassword(account.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id, name string, age *int) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if err := s.repo.UpdateProfile(ctx, id, name, age); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Award credits experience and coins to a user and recomputes the level.
func (s *Service) Award(ctx context.Context, id string, experience int, coins int64) (*User, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	account.Experience += experience
	account.Balance += coins
	account.Level = LevelForExperience(account.Experience)

	if err := s.repo.UpdateProgress(ctx, id, account.Balance, account.Experience, account.Level); err != nil {
		return nil, err
	}
	return account, nil
}
