package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"pastebridge/internal/domain/entities"
	"pastebridge/internal/ports/repositories"
	"pastebridge/pkg/logger"
)

// ResetTokenRepository implements repositories.ResetTokenRepository.
type ResetTokenRepository struct {
	pool PgxPoolInterface
}

// NewResetTokenRepository creates a new reset-token repository.
func NewResetTokenRepository(pool PgxPoolInterface) repositories.ResetTokenRepository {
	return &ResetTokenRepository{pool: pool}
}

// Create persists a new reset token.
func (r *ResetTokenRepository) Create(ctx context.Context, token *entities.ResetToken) error {
	log := logger.Log(ctx).With(zap.String("repository", "reset_token"), zap.String("method", "Create"))

	if _, err := r.pool.Exec(ctx,
		`INSERT INTO password_resets (token, user_id, expires_at)
         VALUES ($1, $2, $3)`,
		token.Token, token.UserID, token.ExpiresAt,
	); err != nil {
		log.Error(ctx, "error creating reset token", zap.Error(err))
		return fmt.Errorf("error creating reset token: %w", err)
	}
	return nil
}

// Get finds a reset token by value.
func (r *ResetTokenRepository) Get(ctx context.Context, token string) (*entities.ResetToken, error) {
	log := logger.Log(ctx).With(zap.String("repository", "reset_token"), zap.String("method", "Get"))

	var t entities.ResetToken
	err := r.pool.QueryRow(ctx,
		`SELECT token, user_id, expires_at, used, created_at
         FROM password_resets
         WHERE token = $1`,
		token,
	).Scan(&t.Token, &t.UserID, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrResetTokenInvalid
		}
		log.Error(ctx, "error querying reset token", zap.Error(err))
		return nil, fmt.Errorf("error querying reset token: %w", err)
	}

	return &t, nil
}

// Consume marks the token used. The conditional update guarantees a
// token redeems at most once even under concurrent attempts.
func (r *ResetTokenRepository) Consume(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("repository", "reset_token"), zap.String("method", "Consume"))

	result, err := r.pool.Exec(ctx,
		`UPDATE password_resets SET used = TRUE WHERE token = $1 AND NOT used`,
		token,
	)
	if err != nil {
		log.Error(ctx, "error consuming reset token", zap.Error(err))
		return fmt.Errorf("error consuming reset token: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrResetTokenInvalid
	}
	return nil
}
