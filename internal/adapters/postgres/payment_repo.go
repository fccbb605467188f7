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

// PaymentRepository implements repositories.PaymentRepository.
type PaymentRepository struct {
	pool PgxPoolInterface
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(pool PgxPoolInterface) repositories.PaymentRepository {
	return &PaymentRepository{pool: pool}
}

const paymentColumns = `id, session_id, user_id, plan, amount, currency, payment_status, activated, created_at, updated_at`

func scanPayment(row pgx.Row) (*entities.Payment, error) {
	var p entities.Payment
	err := row.Scan(&p.ID, &p.SessionID, &p.UserID, &p.Plan, &p.Amount, &p.Currency, &p.PaymentStatus, &p.Activated, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persists a new pending transaction.
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) (*entities.Payment, error) {
	log := logger.Log(ctx).With(zap.String("repository", "payment"), zap.String("method", "Create"))

	query := `
        INSERT INTO payments (session_id, user_id, plan, amount, currency)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + paymentColumns

	created, err := scanPayment(r.pool.QueryRow(ctx, query,
		payment.SessionID, payment.UserID, payment.Plan, payment.Amount, payment.Currency))
	if err != nil {
		log.Error(ctx, "error creating payment", zap.Error(err))
		return nil, fmt.Errorf("error creating payment: %w", err)
	}

	return created, nil
}

// GetBySessionID finds a transaction by checkout session reference.
func (r *PaymentRepository) GetBySessionID(ctx context.Context, sessionID string) (*entities.Payment, error) {
	log := logger.Log(ctx).With(zap.String("repository", "payment"), zap.String("method", "GetBySessionID"))

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE session_id = $1`

	payment, err := scanPayment(r.pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "payment not found", zap.String("session_id", sessionID))
			return nil, entities.ErrPaymentNotFound
		}
		log.Error(ctx, "error querying payment", zap.Error(err))
		return nil, fmt.Errorf("error querying payment: %w", err)
	}

	return payment, nil
}

// UpdateStatus records the provider-reported payment status.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, sessionID, paymentStatus string) error {
	log := logger.Log(ctx).With(zap.String("repository", "payment"), zap.String("method", "UpdateStatus"))

	result, err := r.pool.Exec(ctx,
		`UPDATE payments SET payment_status = $2, updated_at = now() WHERE session_id = $1`,
		sessionID, paymentStatus,
	)
	if err != nil {
		log.Error(ctx, "error updating payment status", zap.Error(err))
		return fmt.Errorf("error updating payment status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrPaymentNotFound
	}
	return nil
}

// Activate flips the activation flag exactly once. The conditional
// update makes concurrent poll and provider-webhook activations safe.
func (r *PaymentRepository) Activate(ctx context.Context, sessionID string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "payment"), zap.String("method", "Activate"))

	result, err := r.pool.Exec(ctx,
		`UPDATE payments
         SET activated = TRUE, updated_at = now()
         WHERE session_id = $1 AND NOT activated`,
		sessionID,
	)
	if err != nil {
		log.Error(ctx, "error activating payment", zap.Error(err))
		return false, fmt.Errorf("error activating payment: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
