package repositories

import "context"

// Totals carries the service-wide counters for the admin pages.
type Totals struct {
	Users       int
	Notepads    int
	Entries     int
	Feedback    int
	ActiveToday int
}

// AnalyticsRepository runs the aggregate queries behind the admin
// stats and analytics endpoints.
type AnalyticsRepository interface {
	Totals(ctx context.Context) (*Totals, error)
	EntriesByDay(ctx context.Context, days int) ([]DayCount, error)
	UsersByDay(ctx context.Context, days int) ([]DayCount, error)
	TopNotepads(ctx context.Context, limit int) ([]TopNotepad, error)
}
