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

// UserRepository implements repositories.UserRepository.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository creates a new user repository.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, name, account_type, plan, push_tokens, created_at, updated_at`

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.AccountTier, &u.Plan, &u.PushTokens, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (email, password_hash, name, account_type)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + userColumns

	created, err := scanUser(r.pool.QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.AccountTier))
	if err != nil {
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// FindByID finds a user by ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return user, nil
}

// FindByEmail finds a user by lower-cased email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by email", zap.Error(err))
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}

	return user, nil
}

// UpdateName updates the display name.
func (r *UserRepository) UpdateName(ctx context.Context, id, name string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "UpdateName"))

	query := `
        UPDATE users
        SET name = $2, updated_at = now()
        WHERE id = $1
        RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, id, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error updating user name", zap.Error(err))
		return nil, fmt.Errorf("error updating user name: %w", err)
	}

	return user, nil
}

// UpdatePassword replaces the password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "UpdatePassword"))

	result, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		log.Error(ctx, "error updating password", zap.Error(err))
		return fmt.Errorf("error updating password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrUserNotFound
	}
	return nil
}

// UpdatePlan sets the account tier and subscription plan.
func (r *UserRepository) UpdatePlan(ctx context.Context, id string, tier entities.AccountTier, plan *string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "UpdatePlan"))

	result, err := r.pool.Exec(ctx,
		`UPDATE users SET account_type = $2, plan = $3, updated_at = now() WHERE id = $1`,
		id, tier, plan,
	)
	if err != nil {
		log.Error(ctx, "error updating plan", zap.Error(err))
		return fmt.Errorf("error updating plan: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrUserNotFound
	}
	return nil
}

// AddPushToken registers a device push token; adding a token twice is
// a no-op.
func (r *UserRepository) AddPushToken(ctx context.Context, id, token string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "AddPushToken"))

	if _, err := r.pool.Exec(ctx,
		`UPDATE users
         SET push_tokens = array_append(push_tokens, $2), updated_at = now()
         WHERE id = $1 AND NOT ($2 = ANY (push_tokens))`,
		id, token,
	); err != nil {
		log.Error(ctx, "error adding push token", zap.Error(err))
		return fmt.Errorf("error adding push token: %w", err)
	}
	return nil
}

// RemovePushToken removes a device push token; removing an unknown
// token is a no-op.
func (r *UserRepository) RemovePushToken(ctx context.Context, id, token string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "RemovePushToken"))

	if _, err := r.pool.Exec(ctx,
		`UPDATE users
         SET push_tokens = array_remove(push_tokens, $2), updated_at = now()
         WHERE id = $1`,
		id, token,
	); err != nil {
		log.Error(ctx, "error removing push token", zap.Error(err))
		return fmt.Errorf("error removing push token: %w", err)
	}
	return nil
}
