package challenge

import (
	"context"
	"time"

	"investimon-go/internal/domain/user"
)

// Rewarder credits challenge payouts to the user's account.
type Rewarder interface {
	Award(ctx context.Context, id string, experience int, coins int64) (*user.User, error)
}

type Service struct {
	repo    Repository
	rewards Rewarder
	now     func() time.Time
}

func NewService(repo Repository, rewards Rewarder) *Service {
	return &Service{repo: repo, rewards: rewards, now: time.Now}
}

// List returns the active challenges with the caller's completion flags.
func (s *Service) List(ctx context.Context, userID string) ([]WithStatus, error) {
	challenges, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	completedIDs, err := s.repo.ListCompletedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed := make(map[string]struct{}, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = struct{}{}
	}

	result := make([]WithStatus, 0, len(challenges))
	for _, c := range challenges {
		_, done := completed[c.ID]
		result = append(result, WithStatus{Challenge: c, Completed: done})
	}
	return result, nil
}

// Complete records a completion and pays out the reward. A challenge can
// only be completed once per user.
func (s *Service) Complete(ctx context.Context, userID, challengeID string) (*Reward, error) {
	var payout Challenge
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		c, err := tx.Get(ctx, challengeID)
		if err != nil {
			return err
		}
		if !c.IsActive {
			return ErrChallengeInactive
		}

		done, err := tx.HasCompletion(ctx, userID, challengeID)
		if err != nil {
			return err
		}
		if done {
			return ErrAlreadyCompleted
		}

		payout = *c
		return tx.AddCompletion(ctx, &Completion{
			UserID:      userID,
			ChallengeID: challengeID,
			CompletedAt: s.now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}

	account, err := s.rewards.Award(ctx, userID, payout.RewardXP, payout.RewardCoins)
	if err != nil {
		return nil, err
	}

	return &Reward{
		Experience: payout.RewardXP,
		Coins:      payout.RewardCoins,
		Level:      account.Level,
	}, nil
}

func (s *Service) CompletedCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountCompletions(ctx, userID)
}
