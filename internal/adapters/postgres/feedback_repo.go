package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"pastebridge/internal/domain/entities"
	"pastebridge/internal/ports/repositories"
	"pastebridge/pkg/logger"
)

// FeedbackRepository implements repositories.FeedbackRepository.
type FeedbackRepository struct {
	pool PgxPoolInterface
}

// NewFeedbackRepository creates a new feedback repository.
func NewFeedbackRepository(pool PgxPoolInterface) repositories.FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

const feedbackColumns = `id, user_id, category, title, description, severity, status, created_at`

// Create persists a new feedback item with status "open".
func (r *FeedbackRepository) Create(ctx context.Context, item *entities.Feedback) (*entities.Feedback, error) {
	log := logger.Log(ctx).With(zap.String("repository", "feedback"), zap.String("method", "Create"))

	var created entities.Feedback
	err := r.pool.QueryRow(ctx,
		`INSERT INTO feedback (user_id, category, title, description, severity)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING `+feedbackColumns,
		item.UserID, item.Category, item.Title, item.Description, item.Severity,
	).Scan(&created.ID, &created.UserID, &created.Category, &created.Title, &created.Description, &created.Severity, &created.Status, &created.CreatedAt)
	if err != nil {
		log.Error(ctx, "error creating feedback", zap.Error(err))
		return nil, fmt.Errorf("error creating feedback: %w", err)
	}

	return &created, nil
}

// List returns feedback items filtered by status and category, newest
// first, with the unpaginated total.
func (r *FeedbackRepository) List(ctx context.Context, filter repositories.FeedbackFilter) ([]*entities.Feedback, int, error) {
	log := logger.Log(ctx).With(zap.String("repository", "feedback"), zap.String("method", "List"))

	const predicate = `($1 = '' OR status = $1) AND ($2 = '' OR category = $2)`

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM feedback WHERE `+predicate,
		filter.Status, filter.Category,
	).Scan(&total)
	if err != nil {
		log.Error(ctx, "error counting feedback", zap.Error(err))
		return nil, 0, fmt.Errorf("error counting feedback: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	rows, err := r.pool.Query(ctx,
		`SELECT `+feedbackColumns+`
         FROM feedback
         WHERE `+predicate+`
         ORDER BY created_at DESC
         LIMIT $3 OFFSET $4`,
		filter.Status, filter.Category, filter.Limit, offset,
	)
	if err != nil {
		log.Error(ctx, "error listing feedback", zap.Error(err))
		return nil, 0, fmt.Errorf("error listing feedback: %w", err)
	}
	defer rows.Close()

	items, err := scanFeedbackRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UpdateStatus changes a feedback item's status.
func (r *FeedbackRepository) UpdateStatus(ctx context.Context, id, status string) error {
	log := logger.Log(ctx).With(zap.String("repository", "feedback"), zap.String("method", "UpdateStatus"))

	result, err := r.pool.Exec(ctx,
		`UPDATE feedback SET status = $2 WHERE id = $1`,
		id, status,
	)
	if err != nil {
		log.Error(ctx, "error updating feedback status", zap.Error(err))
		return fmt.Errorf("error updating feedback status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrFeedbackNotFound
	}
	return nil
}

// ListOpen returns all open feedback items, oldest first.
func (r *FeedbackRepository) ListOpen(ctx context.Context) ([]*entities.Feedback, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+feedbackColumns+`
         FROM feedback
         WHERE status = 'open'
         ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing open feedback: %w", err)
	}
	defer rows.Close()

	return scanFeedbackRows(rows)
}

func scanFeedbackRows(rows pgx.Rows) ([]*entities.Feedback, error) {
	items := make([]*entities.Feedback, 0)
	for rows.Next() {
		var f entities.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.Category, &f.Title, &f.Description, &f.Severity, &f.Status, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning feedback: %w", err)
		}
		items = append(items, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback: %w", err)
	}
	return items, nil
}
