package entities

import (
	"errors"
	"time"
)

// Feedback domain errors.
var (
	ErrFeedbackNotFound        = errors.New("feedback not found")
	ErrInvalidFeedbackCategory = errors.New("invalid feedback category")
	ErrInvalidFeedbackStatus   = errors.New("invalid feedback status")
)

// Feedback categories.
const (
	CategoryBug            = "bug"
	CategoryFeatureRequest = "feature_request"
	CategoryMissingFeature = "missing_feature"
	CategoryOther          = "other"
)

// Feedback statuses.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusWontFix    = "wont_fix"
)

// ValidFeedbackCategory reports whether the category is accepted.
func ValidFeedbackCategory(category string) bool {
	switch category {
	case CategoryBug, CategoryFeatureRequest, CategoryMissingFeature, CategoryOther:
		return true
	}
	return false
}

// ValidFeedbackStatus reports whether the status is accepted.
func ValidFeedbackStatus(status string) bool {
	switch status {
	case StatusOpen, StatusInProgress, StatusResolved, StatusWontFix:
		return true
	}
	return false
}

// Feedback is a user-submitted report. It is mutated only via status
// updates and never deleted.
type Feedback struct {
	ID          string
	UserID      *string
	Category    string
	Title       string
	Description string
	Severity    string
	Status      string
	CreatedAt   time.Time
}
