// Package services defines the interfaces of the supporting services
// consumed by the application layer.
package services

import (
	"context"
	"time"
)

// TokenService issues and validates signed bearer tokens. There is no
// server-side session store; the token alone carries the identity.
type TokenService interface {
	Generate(ctx context.Context, userID string) (string, time.Time, error)
	Validate(ctx context.Context, token string) (string, error)
}
