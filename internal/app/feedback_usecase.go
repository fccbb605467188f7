package app

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"pastebridge/internal/app/dto"
	"pastebridge/internal/domain/entities"
	"pastebridge/internal/ports/repositories"
	svc "pastebridge/internal/ports/services"
	"pastebridge/pkg/logger"
)

const (
	msgFeedbackSubmitted = "feedback submitted"
	msgFeedbackUpdated   = "feedback status updated"

	errCtxStoringFeedback = "storing feedback"
	errCtxListingFeedback = "listing feedback"

	feedbackThanksMessage = "Thank you for your feedback!"
	noOpenFeedbackSummary = "No open feedback"

	defaultSeverity      = "medium"
	feedbackSummaryWords = 200
)

// FeedbackUseCase implements feedback submission and triage.
type FeedbackUseCase struct {
	feedbackRepo repositories.FeedbackRepository
	summarizer   svc.Summarizer
}

// NewFeedbackUseCase creates the feedback use case.
func NewFeedbackUseCase(feedbackRepo repositories.FeedbackRepository, summarizer svc.Summarizer) *FeedbackUseCase {
	return &FeedbackUseCase{
		feedbackRepo: feedbackRepo,
		summarizer:   summarizer,
	}
}

// Submit stores a report. The user is optional; anonymous feedback is
// accepted.
func (uc *FeedbackUseCase) Submit(ctx context.Context, userID *string, req *dto.SubmitFeedbackRequest) (*dto.SubmitFeedbackResponse, error) {
	log := logger.Log(ctx).With(zap.String("usecase", "feedback"), zap.String("method", "Submit"))

	if !entities.ValidFeedbackCategory(req.Category) {
		return nil, entities.ErrInvalidFeedbackCategory
	}

	severity := req.Severity
	if severity == "" {
		severity = defaultSeverity
	}

	item, err := uc.feedbackRepo.Create(ctx, &entities.Feedback{
		UserID:      userID,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Severity:    severity,
		Status:      entities.StatusOpen,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxStoringFeedback, err)
	}

	log.Info(ctx, msgFeedbackSubmitted, zap.String("feedbackID", item.ID), zap.String("category", item.Category))
	return &dto.SubmitFeedbackResponse{ID: item.ID, Message: feedbackThanksMessage}, nil
}

// List pages through stored reports, optionally filtered by status and
// category.
func (uc *FeedbackUseCase) List(ctx context.Context, filter repositories.FeedbackFilter) (*dto.FeedbackListResponse, error) {
	if filter.Status != "" && !entities.ValidFeedbackStatus(filter.Status) {
		return nil, entities.ErrInvalidFeedbackStatus
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultSearchLimit
	}
	if filter.Limit > maxSearchLimit {
		filter.Limit = maxSearchLimit
	}

	items, total, err := uc.feedbackRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingFeedback, err)
	}

	out := make([]dto.FeedbackItem, 0, len(items))
	for _, f := range items {
		out = append(out, dto.NewFeedbackItem(f))
	}

	pages := 0
	if total > 0 {
		pages = int(math.Ceil(float64(total) / float64(filter.Limit)))
	}

	return &dto.FeedbackListResponse{Items: out, Total: total, Page: filter.Page, Pages: pages}, nil
}

// UpdateStatus moves a report through triage.
func (uc *FeedbackUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	log := logger.Log(ctx).With(zap.String("usecase", "feedback"), zap.String("method", "UpdateStatus"))

	if !entities.ValidFeedbackStatus(status) {
		return entities.ErrInvalidFeedbackStatus
	}
	if err := uc.feedbackRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	log.Info(ctx, msgFeedbackUpdated, zap.String("feedbackID", id), zap.String("status", status))
	return nil
}

// SummarizeOpen asks the LLM for a digest of open reports.
func (uc *FeedbackUseCase) SummarizeOpen(ctx context.Context) (*dto.FeedbackSummaryResponse, error) {
	items, err := uc.feedbackRepo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingFeedback, err)
	}
	if len(items) == 0 {
		return &dto.FeedbackSummaryResponse{Summary: noOpenFeedbackSummary, Count: 0, Model: uc.summarizer.Model()}, nil
	}

	var b strings.Builder
	for _, f := range items {
		fmt.Fprintf(&b, "[%s/%s] %s: %s\n", f.Category, f.Severity, f.Title, f.Description)
	}

	summary, err := uc.summarizer.Summarize(ctx, b.String(), feedbackSummaryWords)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxSummarizing, err)
	}

	return &dto.FeedbackSummaryResponse{Summary: summary, Count: len(items), Model: uc.summarizer.Model()}, nil
}
