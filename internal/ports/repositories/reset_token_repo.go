package repositories

import (
	"context"

	"pastebridge/internal/domain/entities"
)

// ResetTokenRepository persists password-reset tokens.
type ResetTokenRepository interface {
	Create(ctx context.Context, token *entities.ResetToken) error
	Get(ctx context.Context, token string) (*entities.ResetToken, error)
	// Consume marks the token used; it fails for a token already
	// consumed so a second redemption cannot succeed.
	Consume(ctx context.Context, token string) error
}
