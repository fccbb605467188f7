package entities

import (
	"errors"
	"time"
)

// ErrResetTokenInvalid covers unknown, expired, and already-used reset
// tokens; callers are not told which case applied.
var ErrResetTokenInvalid = errors.New("invalid or expired reset token")

// ResetToken is a single-use password-reset credential.
type ResetToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Redeemable reports whether the token can still be consumed.
func (t *ResetToken) Redeemable(now time.Time) bool {
	return !t.Used && t.ExpiresAt.After(now)
}
