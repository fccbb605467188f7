package app

import (
	"context"
	"fmt"

	"pastebridge/internal/app/dto"
	"pastebridge/internal/ports/repositories"
)

const (
	errCtxQueryingStats     = "querying stats"
	errCtxQueryingAnalytics = "querying analytics"

	analyticsDays        = 30
	analyticsTopNotepads = 10
)

// AdminUseCase serves the operator stats and analytics pages.
type AdminUseCase struct {
	analyticsRepo repositories.AnalyticsRepository
}

// NewAdminUseCase creates the admin use case.
func NewAdminUseCase(analyticsRepo repositories.AnalyticsRepository) *AdminUseCase {
	return &AdminUseCase{analyticsRepo: analyticsRepo}
}

// Stats returns the service-wide counters.
func (uc *AdminUseCase) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	totals, err := uc.analyticsRepo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxQueryingStats, err)
	}
	return &dto.StatsResponse{
		Users:    totals.Users,
		Notepads: totals.Notepads,
		Entries:  totals.Entries,
		Feedback: totals.Feedback,
	}, nil
}

// Analytics returns the trailing-month dataset behind the analytics
// dashboard.
func (uc *AdminUseCase) Analytics(ctx context.Context) (*dto.AnalyticsResponse, error) {
	totals, err := uc.analyticsRepo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxQueryingAnalytics, err)
	}

	entriesByDay, err := uc.analyticsRepo.EntriesByDay(ctx, analyticsDays)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxQueryingAnalytics, err)
	}
	usersByDay, err := uc.analyticsRepo.UsersByDay(ctx, analyticsDays)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxQueryingAnalytics, err)
	}
	topNotepads, err := uc.analyticsRepo.TopNotepads(ctx, analyticsTopNotepads)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxQueryingAnalytics, err)
	}

	return &dto.AnalyticsResponse{
		EntriesByDay: dayCountItems(entriesByDay),
		UsersByDay:   dayCountItems(usersByDay),
		TopNotepads:  topNotepadItems(topNotepads),
		Totals: dto.AnalyticsTotals{
			Users:       totals.Users,
			Notepads:    totals.Notepads,
			Entries:     totals.Entries,
			ActiveToday: totals.ActiveToday,
		},
	}, nil
}

func dayCountItems(counts []repositories.DayCount) []dto.DayCountItem {
	items := make([]dto.DayCountItem, 0, len(counts))
	for _, c := range counts {
		items = append(items, dto.DayCountItem{Date: c.Date, Count: c.Count})
	}
	return items
}

func topNotepadItems(top []repositories.TopNotepad) []dto.TopNotepadItem {
	items := make([]dto.TopNotepadItem, 0, len(top))
	for _, t := range top {
		items = append(items, dto.TopNotepadItem{Code: t.Code, EntryCount: t.EntryCount})
	}
	return items
}
