package challenge

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListActive(ctx context.Context) ([]Challenge, error)
	Get(ctx context.Context, id string) (*Challenge, error)

	HasCompletion(ctx context.Context, userID, challengeID string) (bool, error)
	AddCompletion(ctx context.Context, completion *Completion) error
	CountCompletions(ctx context.Context, userID string) (int64, error)
	ListCompletedIDs(ctx context.Context, userID string) ([]string, error)
}
