package postgres_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pastebridge/internal/adapters/postgres"
	"pastebridge/internal/domain/entities"
)

func paymentRows(p *entities.Payment) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "session_id", "user_id", "plan", "amount", "currency",
		"payment_status", "activated", "created_at", "updated_at",
	}).AddRow(p.ID, p.SessionID, p.UserID, p.Plan, p.Amount, p.Currency,
		p.PaymentStatus, p.Activated, p.CreatedAt, p.UpdatedAt)
}

func TestPaymentRepoCreate(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err, msgErrorCreatingMockPool)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO payments .+").
		WithArgs("cs_test_123", "user-1", entities.PlanPro, int64(499), "usd").
		WillReturnRows(paymentRows(&entities.Payment{
			ID:            "pay-1",
			SessionID:     "cs_test_123",
			UserID:        "user-1",
			Plan:          entities.PlanPro,
			Amount:        499,
			Currency:      "usd",
			PaymentStatus: entities.PaymentPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}))

	repo := postgres.NewPaymentRepository(mock)
	created, err := repo.Create(ctx, &entities.Payment{
		SessionID: "cs_test_123",
		UserID:    "user-1",
		Plan:      entities.PlanPro,
		Amount:    499,
		Currency:  "usd",
	})

	require.NoError(t, err, msgNoErrorExpected)
	assert.Equal(t, "pay-1", created.ID)
	assert.Equal(t, entities.PaymentPending, created.PaymentStatus)
	assert.False(t, created.Activated)
	assert.NoError(t, mock.ExpectationsWereMet(), msgUnmetExpectations)
}

func TestPaymentRepoGetBySessionID(t *testing.T) {
	ctx := testContext(t)

	t.Run("maps a missing session to the domain error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, msgErrorCreatingMockPool)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM payments .+").
			WithArgs("cs_ghost").
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewPaymentRepository(mock)
		payment, err := repo.GetBySessionID(ctx, "cs_ghost")

		require.Error(t, err, msgErrorExpected)
		assert.ErrorIs(t, err, entities.ErrPaymentNotFound)
		assert.Nil(t, payment)
		assert.NoError(t, mock.ExpectationsWereMet(), msgUnmetExpectations)
	})

	t.Run("wraps other database errors", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, msgErrorCreatingMockPool)
		defer mock.Close()

		dbError := errors.New("connection reset")
		mock.ExpectQuery("SELECT .+ FROM payments .+").
			WithArgs("cs_test_123").
			WillReturnError(dbError)

		repo := postgres.NewPaymentRepository(mock)
		payment, err := repo.GetBySessionID(ctx, "cs_test_123")

		require.Error(t, err, msgErrorExpected)
		assert.ErrorIs(t, err, dbError)
		assert.NotErrorIs(t, err, entities.ErrPaymentNotFound)
		assert.Nil(t, payment)
		assert.NoError(t, mock.ExpectationsWereMet(), msgUnmetExpectations)
	})
}

func TestPaymentRepoUpdateStatus(t *testing.T) {
	ctx := testContext(t)

	t.Run("updates the provider status", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, msgErrorCreatingMockPool)
		defer mock.Close()

		mock.ExpectExec("UPDATE payments .+").
			WithArgs("cs_test_123", entities.PaymentPaid).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := postgres.NewPaymentRepository(mock)
		err = repo.UpdateStatus(ctx, "cs_test_123", entities.PaymentPaid)

		require.NoError(t, err, msgNoErrorExpected)
		assert.NoError(t, mock.ExpectationsWereMet(), msgUnmetExpectations)
	})

	t.Run("reports a missing session as not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, msgErrorCreatingMockPool)
		defer mock.Close()

		mock.ExpectExec("UPDATE payments .+").
			WithArgs("cs_ghost", entities.PaymentPaid).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := postgres.NewPaymentRepository(mock)
		err = repo.UpdateStatus(ctx, "cs_ghost", entities.PaymentPaid)

		require.Error(t, err, msgErrorExpected)
		assert.ErrorIs(t, err, entities.ErrPaymentNotFound)
		assert.NoError(t, mock.ExpectationsWereMet(), msgUnmetExpectations)
	})
}

func TestPaymentRepoActivate(t *testing.T) {
	ctx := testContext(t)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err, msgErrorCreatingMockPool)
	defer mock.Close()

	mock.ExpectExec("UPDATE payments SET activated .+").
		WithArgs("cs_test_123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE payments SET activated .+").
		WithArgs("cs_test_123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := postgres.NewPaymentRepository(mock)

	first, err := repo.Activate(ctx, "cs_test_123")
	require.NoError(t, err, msgNoErrorExpected)
	assert.True(t, first)

	second, err := repo.Activate(ctx, "cs_test_123")
	require.NoError(t, err, msgNoErrorExpected)
	assert.False(t, second, "an already activated payment must not activate again")

	assert.NoError(t, mock.ExpectationsWereMet(), msgUnmetExpectations)
}
