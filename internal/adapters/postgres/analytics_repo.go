package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pastebridge/internal/ports/repositories"
	"pastebridge/pkg/logger"
)

// AnalyticsRepository implements repositories.AnalyticsRepository with
// aggregate queries over the main tables.
type AnalyticsRepository struct {
	pool PgxPoolInterface
}

// NewAnalyticsRepository creates a new analytics repository.
func NewAnalyticsRepository(pool PgxPoolInterface) repositories.AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// Totals returns the service-wide counters.
func (r *AnalyticsRepository) Totals(ctx context.Context) (*repositories.Totals, error) {
	log := logger.Log(ctx).With(zap.String("repository", "analytics"), zap.String("method", "Totals"))

	var t repositories.Totals
	err := r.pool.QueryRow(ctx,
		`SELECT
            (SELECT COUNT(*) FROM users),
            (SELECT COUNT(*) FROM notepads),
            (SELECT COUNT(*) FROM entries),
            (SELECT COUNT(*) FROM feedback),
            (SELECT COUNT(DISTINCT notepad_id) FROM entries WHERE created_at >= date_trunc('day', now()))`,
	).Scan(&t.Users, &t.Notepads, &t.Entries, &t.Feedback, &t.ActiveToday)
	if err != nil {
		log.Error(ctx, "error querying totals", zap.Error(err))
		return nil, fmt.Errorf("error querying totals: %w", err)
	}

	return &t, nil
}

// EntriesByDay returns daily entry counts for the trailing window.
func (r *AnalyticsRepository) EntriesByDay(ctx context.Context, days int) ([]repositories.DayCount, error) {
	return r.dayCounts(ctx,
		`SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD'), COUNT(*)
         FROM entries
         WHERE created_at >= now() - ($1 || ' days')::interval
         GROUP BY 1
         ORDER BY 1`,
		days,
	)
}

// UsersByDay returns daily registration counts for the trailing window.
func (r *AnalyticsRepository) UsersByDay(ctx context.Context, days int) ([]repositories.DayCount, error) {
	return r.dayCounts(ctx,
		`SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD'), COUNT(*)
         FROM users
         WHERE created_at >= now() - ($1 || ' days')::interval
         GROUP BY 1
         ORDER BY 1`,
		days,
	)
}

func (r *AnalyticsRepository) dayCounts(ctx context.Context, query string, days int) ([]repositories.DayCount, error) {
	rows, err := r.pool.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("error querying day counts: %w", err)
	}
	defer rows.Close()

	counts := make([]repositories.DayCount, 0)
	for rows.Next() {
		var c repositories.DayCount
		if err := rows.Scan(&c.Date, &c.Count); err != nil {
			return nil, fmt.Errorf("error scanning day count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating day counts: %w", err)
	}
	return counts, nil
}

// TopNotepads returns the notepads with the most entries.
func (r *AnalyticsRepository) TopNotepads(ctx context.Context, limit int) ([]repositories.TopNotepad, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT n.code, COUNT(e.id)
         FROM notepads n
         JOIN entries e ON e.notepad_id = n.id
         GROUP BY n.code
         ORDER BY COUNT(e.id) DESC
         LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying top notepads: %w", err)
	}
	defer rows.Close()

	top := make([]repositories.TopNotepad, 0)
	for rows.Next() {
		var t repositories.TopNotepad
		if err := rows.Scan(&t.Code, &t.EntryCount); err != nil {
			return nil, fmt.Errorf("error scanning top notepad: %w", err)
		}
		top = append(top, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top notepads: %w", err)
	}
	return top, nil
}
