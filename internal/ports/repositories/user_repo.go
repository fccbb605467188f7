package repositories

import (
	"context"

	"pastebridge/internal/domain/entities"
)

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateName(ctx context.Context, id, name string) (*entities.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdatePlan(ctx context.Context, id string, tier entities.AccountTier, plan *string) error
	AddPushToken(ctx context.Context, id, token string) error
	RemovePushToken(ctx context.Context, id, token string) error
}
