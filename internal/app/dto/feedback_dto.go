package dto

import (
	"time"

	"pastebridge/internal/domain/entities"
)

// SubmitFeedbackRequest is a user-submitted report.
type SubmitFeedbackRequest struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// SubmitFeedbackResponse acknowledges a stored report.
type SubmitFeedbackResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// FeedbackItem is one report in an admin listing.
type FeedbackItem struct {
	ID          string    `json:"id"`
	UserID      *string   `json:"user_id,omitempty"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewFeedbackItem maps a feedback entity to its API shape.
func NewFeedbackItem(f *entities.Feedback) FeedbackItem {
	return FeedbackItem{
		ID:          f.ID,
		UserID:      f.UserID,
		Category:    f.Category,
		Title:       f.Title,
		Description: f.Description,
		Severity:    f.Severity,
		Status:      f.Status,
		CreatedAt:   f.CreatedAt,
	}
}

// FeedbackListResponse is a page of feedback reports.
type FeedbackListResponse struct {
	Items []FeedbackItem `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Pages int            `json:"pages"`
}

// UpdateFeedbackRequest changes the triage status of a report.
type UpdateFeedbackRequest struct {
	Status string `json:"status"`
}

// FeedbackSummaryResponse is the LLM digest of open reports.
type FeedbackSummaryResponse struct {
	Summary string `json:"summary"`
	Count   int    `json:"count"`
	Model   string `json:"model"`
}
