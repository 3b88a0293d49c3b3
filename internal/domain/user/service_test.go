package user

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeUserRepo struct {
	users map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id, name string, age *int) error {
	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.Name = name
	if age != nil {
		user.Age = age
	}
	return nil
}

func (r *fakeUserRepo) UpdateProgress(ctx context.Context, id string, balance int64, experience, level int) error {
	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.Balance = balance
	user.Experience = experience
	user.Level = level
	return nil
}

func intPtr(v int) *int { return &v }

func TestRegisterParentDefaults(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	account, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Parent@Example.com",
		Password: "secret1",
		Name:     "Pat",
		Role:     RoleParent,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if account.Email != "parent@example.com" {
		t.Fatalf("expected normalized email, got %q", account.Email)
	}
	if account.Balance != 10000 || account.Experience != 0 || account.Level != 1 {
		t.Fatalf("unexpected defaults: %+v", account)
	}
	if account.SpendingLimit != nil || account.RequiresApproval {
		t.Fatalf("parent must not carry supervision fields: %+v", account)
	}
	if account.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestRegisterChildDefaults(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	account, err := svc.Register(context.Background(), RegisterInput{
		Email:    "kid@example.com",
		Password: "secret1",
		Name:     "Kim",
		Role:     RoleChild,
		Age:      intPtr(9),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if account.SpendingLimit == nil || *account.SpendingLimit != 1000 {
		t.Fatalf("expected spending limit 1000, got %v", account.SpendingLimit)
	}
	if !account.RequiresApproval {
		t.Fatalf("expected requiresApproval for child")
	}
}

func TestRegisterChildWithoutAge(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "kid@example.com",
		Password: "secret1",
		Name:     "Kim",
		Role:     RoleStudent,
	})
	if !errors.Is(err, ErrAgeRequired) {
		t.Fatalf("expected ErrAgeRequired, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	input := RegisterInput{Email: "dup@example.com", Password: "secret1", Name: "A", Role: RoleParent}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterInvalidRole(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "a@example.com",
		Password: "secret1",
		Name:     "A",
		Role:     "admin",
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	created, err := svc.Register(context.Background(), RegisterInput{
		Email:    "login@example.com",
		Password: "secret1",
		Name:     "L",
		Role:     RoleParent,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	account, err := svc.Authenticate(context.Background(), "LOGIN@example.com", "secret1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if account.ID != created.ID {
		t.Fatalf("expected matching id")
	}

	if _, err := svc.Authenticate(context.Background(), "login@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "ghost@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAwardRecomputesLevel(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	created, err := svc.Register(context.Background(), RegisterInput{
		Email:    "xp@example.com",
		Password: "secret1",
		Name:     "X",
		Role:     RoleParent,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	account, err := svc.Award(context.Background(), created.ID, 250, 50)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if account.Experience != 250 || account.Level != 3 {
		t.Fatalf("expected 250 xp at level 3, got %d/%d", account.Experience, account.Level)
	}
	if account.Balance != 10050 {
		t.Fatalf("expected balance 10050, got %d", account.Balance)
	}
}

func TestLevelForExperience(t *testing.T) {
	cases := []struct {
		experience int
		level      int
	}{
		{0, 1}, {99, 1}, {100, 2}, {250, 3}, {-5, 1},
	}
	for _, tc := range cases {
		if got := LevelForExperience(tc.experience); got != tc.level {
			t.Fatalf("experience %d: expected level %d, got %d", tc.experience, tc.level, got)
		}
	}
}

func TestRegisterShortPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "p@example.com",
		Password: "abc",
		Name:     "P",
		Role:     RoleParent,
	})
	if err == nil || !strings.Contains(err.Error(), "password") {
		t.Fatalf("expected password length error, got %v", err)
	}
}
