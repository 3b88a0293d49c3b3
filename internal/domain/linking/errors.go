package linking

import "errors"

var (
	ErrInviteNotFound       = errors.New("invalid invite code")
	ErrInviteUsed           = errors.New("invite code already used")
	ErrInviteExpired        = errors.New("invite code expired")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotGuardian          = errors.New("only parents and teachers can create invites")
	ErrCodeGenerationFailed = errors.New("invite code generation failed")
)
