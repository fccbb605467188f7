package services

import (
	"context"
	"errors"

	"pastebridge/internal/domain/entities"
)

// ErrCheckoutUnavailable is returned when the payment provider is not
// configured or rejects the request.
var ErrCheckoutUnavailable = errors.New("checkout service unavailable")

// CheckoutSession is the provider-side session created for a purchase.
type CheckoutSession struct {
	ID  string
	URL string
}

// SessionState is the provider's view of a checkout session.
type SessionState struct {
	Status        string
	PaymentStatus string
}

// CheckoutProvider wraps the external payment processor.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, plan entities.Plan, userID, originURL string) (*CheckoutSession, error)
	SessionState(ctx context.Context, sessionID string) (*SessionState, error)
	// VerifyWebhook authenticates a provider webhook payload and
	// returns the session it refers to plus whether it reports payment.
	VerifyWebhook(payload []byte, signature string) (sessionID string, paid bool, err error)
}
