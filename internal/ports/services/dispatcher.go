package services

import (
	"context"

	"pastebridge/internal/domain/entities"
)

// WebhookEvent is the payload delivered to subscriber endpoints.
type WebhookEvent struct {
	Event     string `json:"event"`
	Code      string `json:"code"`
	Text      string `json:"text,omitempty"`
	Timestamp string `json:"timestamp"`
}

// WebhookDispatcher delivers an event to one subscriber endpoint.
// Failures are logged and dropped; there is no retry or dead-letter.
type WebhookDispatcher interface {
	Dispatch(ctx context.Context, webhook *entities.Webhook, event WebhookEvent) error
}
