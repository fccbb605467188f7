package services

import (
	"context"
	"errors"
)

// ErrSummarizerUnavailable is returned when no provider key is
// configured or the provider call fails.
var ErrSummarizerUnavailable = errors.New("summarization service unavailable")

// Summarizer produces an LLM summary of free text.
type Summarizer interface {
	Summarize(ctx context.Context, text string, maxLength int) (string, error)
	Model() string
	Enabled() bool
}
