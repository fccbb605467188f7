package repositories

import (
	"context"

	"pastebridge/internal/domain/entities"
)

// WebhookRepository persists webhook subscriptions.
type WebhookRepository interface {
	Create(ctx context.Context, webhook *entities.Webhook) (*entities.Webhook, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Webhook, error)
	Delete(ctx context.Context, id, userID string) error
	ListActiveForEvent(ctx context.Context, userID, event string) ([]*entities.Webhook, error)
}
