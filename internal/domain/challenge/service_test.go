package challenge

import (
	"context"
	"errors"
	"testing"

	"investimon-go/internal/domain/user"
)

type fakeChallengeRepo struct {
	challenges  map[string]*Challenge
	completions map[string]map[string]bool
}

func newFakeChallengeRepo() *fakeChallengeRepo {
	return &fakeChallengeRepo{
		challenges:  make(map[string]*Challenge),
		completions: make(map[string]map[string]bool),
	}
}

func (r *fakeChallengeRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeChallengeRepo) ListActive(ctx context.Context) ([]Challenge, error) {
	result := make([]Challenge, 0)
	for _, c := range r.challenges {
		if c.IsActive {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (r *fakeChallengeRepo) Get(ctx context.Context, id string) (*Challenge, error) {
	c, ok := r.challenges[id]
	if !ok {
		return nil, ErrChallengeNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeChallengeRepo) HasCompletion(ctx context.Context, userID, challengeID string) (bool, error) {
	return r.completions[userID][challengeID], nil
}

func (r *fakeChallengeRepo) AddCompletion(ctx context.Context, completion *Completion) error {
	if r.completions[completion.UserID] == nil {
		r.completions[completion.UserID] = make(map[string]bool)
	}
	r.completions[completion.UserID][completion.ChallengeID] = true
	return nil
}

func (r *fakeChallengeRepo) CountCompletions(ctx context.Context, userID string) (int64, error) {
	return int64(len(r.completions[userID])), nil
}

func (r *fakeChallengeRepo) ListCompletedIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	for id := range r.completions[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeRewarder struct {
	experience int
	coins      int64
}

func (f *fakeRewarder) Award(ctx context.Context, id string, experience int, coins int64) (*user.User, error) {
	f.experience += experience
	f.coins += coins
	return &user.User{ID: id, Experience: f.experience, Balance: f.coins, Level: user.LevelForExperience(f.experience)}, nil
}

func TestListWithCompletionFlags(t *testing.T) {
	repo := newFakeChallengeRepo()
	repo.challenges["a"] = &Challenge{ID: "a", Title: "Save", IsActive: true}
	repo.challenges["b"] = &Challenge{ID: "b", Title: "Invest", IsActive: true}
	repo.challenges["c"] = &Challenge{ID: "c", Title: "Old", IsActive: false}
	repo.completions["u1"] = map[string]bool{"a": true}

	svc := NewService(repo, &fakeRewarder{})
	list, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("inactive challenges must be excluded, got %d", len(list))
	}
	for _, c := range list {
		if c.ID == "a" && !c.Completed {
			t.Fatalf("expected challenge a completed")
		}
		if c.ID == "b" && c.Completed {
			t.Fatalf("expected challenge b pending")
		}
	}
}

func TestCompleteAwardsReward(t *testing.T) {
	repo := newFakeChallengeRepo()
	repo.challenges["a"] = &Challenge{ID: "a", RewardXP: 150, RewardCoins: 25, IsActive: true}
	rewards := &fakeRewarder{}

	svc := NewService(repo, rewards)
	reward, err := svc.Complete(context.Background(), "u1", "a")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reward.Experience != 150 || reward.Coins != 25 {
		t.Fatalf("unexpected reward: %+v", reward)
	}
	if reward.Level != 2 {
		t.Fatalf("expected level 2 after 150 xp, got %d", reward.Level)
	}
}

func TestCompleteTwice(t *testing.T) {
	repo := newFakeChallengeRepo()
	repo.challenges["a"] = &Challenge{ID: "a", RewardXP: 10, IsActive: true}
	rewards := &fakeRewarder{}

	svc := NewService(repo, rewards)
	if _, err := svc.Complete(context.Background(), "u1", "a"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.Complete(context.Background(), "u1", "a"); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
	if rewards.experience != 10 {
		t.Fatalf("reward must be paid once, got %d", rewards.experience)
	}
}

func TestCompleteInactive(t *testing.T) {
	repo := newFakeChallengeRepo()
	repo.challenges["a"] = &Challenge{ID: "a", IsActive: false}

	svc := NewService(repo, &fakeRewarder{})
	if _, err := svc.Complete(context.Background(), "u1", "a"); !errors.Is(err, ErrChallengeInactive) {
		t.Fatalf("expected ErrChallengeInactive, got %v", err)
	}
}

func TestCompleteUnknown(t *testing.T) {
	svc := NewService(newFakeChallengeRepo(), &fakeRewarder{})
	if _, err := svc.Complete(context.Background(), "u1", "missing"); !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}
}
