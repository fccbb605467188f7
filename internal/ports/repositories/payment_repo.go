package repositories

import (
	"context"

	"pastebridge/internal/domain/entities"
)

// PaymentRepository persists checkout transactions.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) (*entities.Payment, error)
	GetBySessionID(ctx context.Context, sessionID string) (*entities.Payment, error)
	UpdateStatus(ctx context.Context, sessionID, paymentStatus string) error
	// Activate flips the activation flag exactly once; the boolean
	// reports whether this call performed the activation.
	Activate(ctx context.Context, sessionID string) (bool, error)
}
