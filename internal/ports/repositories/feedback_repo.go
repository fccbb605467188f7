package repositories

import (
	"context"

	"pastebridge/internal/domain/entities"
)

// FeedbackFilter narrows a feedback listing.
type FeedbackFilter struct {
	Status   string
	Category string
	Page     int
	Limit    int
}

// FeedbackRepository persists feedback items.
type FeedbackRepository interface {
	Create(ctx context.Context, item *entities.Feedback) (*entities.Feedback, error)
	List(ctx context.Context, filter FeedbackFilter) ([]*entities.Feedback, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListOpen(ctx context.Context) ([]*entities.Feedback, error)
}
