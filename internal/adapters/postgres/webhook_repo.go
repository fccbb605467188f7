package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pastebridge/internal/domain/entities"
	"pastebridge/internal/ports/repositories"
	"pastebridge/pkg/logger"
)

// WebhookRepository implements repositories.WebhookRepository.
type WebhookRepository struct {
	pool PgxPoolInterface
}

// NewWebhookRepository creates a new webhook repository.
func NewWebhookRepository(pool PgxPoolInterface) repositories.WebhookRepository {
	return &WebhookRepository{pool: pool}
}

// Create persists a new webhook subscription.
func (r *WebhookRepository) Create(ctx context.Context, webhook *entities.Webhook) (*entities.Webhook, error) {
	log := logger.Log(ctx).With(zap.String("repository", "webhook"), zap.String("method", "Create"))

	var created entities.Webhook
	err := r.pool.QueryRow(ctx,
		`INSERT INTO webhooks (user_id, url, events, secret, active)
         VALUES ($1, $2, $3, $4, TRUE)
         RETURNING id, user_id, url, events, secret, active, created_at`,
		webhook.UserID, webhook.URL, webhook.Events, webhook.Secret,
	).Scan(&created.ID, &created.UserID, &created.URL, &created.Events, &created.Secret, &created.Active, &created.CreatedAt)
	if err != nil {
		log.Error(ctx, "error creating webhook", zap.Error(err))
		return nil, fmt.Errorf("error creating webhook: %w", err)
	}

	return &created, nil
}

// ListByUser returns the user's webhook subscriptions.
func (r *WebhookRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Webhook, error) {
	return r.list(ctx,
		`SELECT id, user_id, url, events, secret, active, created_at
         FROM webhooks
         WHERE user_id = $1
         ORDER BY created_at`,
		userID,
	)
}

// ListActiveForEvent returns the user's active webhooks subscribed to
// the event.
func (r *WebhookRepository) ListActiveForEvent(ctx context.Context, userID, event string) ([]*entities.Webhook, error) {
	return r.list(ctx,
		`SELECT id, user_id, url, events, secret, active, created_at
         FROM webhooks
         WHERE user_id = $1 AND active AND $2 = ANY (events)`,
		userID, event,
	)
}

func (r *WebhookRepository) list(ctx context.Context, query string, args ...interface{}) ([]*entities.Webhook, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing webhooks: %w", err)
	}
	defer rows.Close()

	webhooks := make([]*entities.Webhook, 0)
	for rows.Next() {
		var w entities.Webhook
		if err := rows.Scan(&w.ID, &w.UserID, &w.URL, &w.Events, &w.Secret, &w.Active, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning webhook: %w", err)
		}
		webhooks = append(webhooks, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating webhooks: %w", err)
	}
	return webhooks, nil
}

// Delete removes a webhook owned by the user.
func (r *WebhookRepository) Delete(ctx context.Context, id, userID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "webhook"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM webhooks WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		log.Error(ctx, "error deleting webhook", zap.Error(err))
		return fmt.Errorf("error deleting webhook: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrWebhookNotFound
	}
	return nil
}
