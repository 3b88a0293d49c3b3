package challenge

import "errors"

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrAlreadyCompleted  = errors.New("challenge already completed")
	ErrChallengeInactive = errors.New("challenge is not active")
)
