// Package repositories defines the persistence interfaces used by the
// application layer.
package repositories

import (
	"context"
	"time"

	"pastebridge/internal/domain/entities"
)

// SearchFilter narrows a notepad search. All fields are optional; an
// empty filter matches everything the caller can see.
type SearchFilter struct {
	Query      string
	CodePrefix string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}

// SearchHit is one notepad matched by a search, with the number of
// entries matching the text query and a snippet of the first match.
type SearchHit struct {
	Notepad         *entities.Notepad
	MatchingEntries int
	Preview         string
}

// TopNotepad is an analytics aggregate row.
type TopNotepad struct {
	Code       string
	EntryCount int
}

// DayCount is a per-day analytics aggregate row.
type DayCount struct {
	Date  string
	Count int
}

// NotepadRepository persists notepads and their entries.
type NotepadRepository interface {
	Create(ctx context.Context, notepad *entities.Notepad) (*entities.Notepad, error)
	GetByCode(ctx context.Context, code string) (*entities.Notepad, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	AppendEntry(ctx context.Context, notepadID, text string) (*entities.Entry, error)
	ClearEntries(ctx context.Context, notepadID string) error
	Link(ctx context.Context, notepadID, userID string, tier entities.AccountTier, expiresAt *time.Time) error
	ListByUser(ctx context.Context, userID string) ([]*entities.Notepad, error)
	ListSharedWith(ctx context.Context, userID string) ([]*entities.Notepad, error)
	AddCollaborator(ctx context.Context, notepadID, userID string) (bool, error)
	RemoveCollaborator(ctx context.Context, notepadID, userID string) error
	ListCollaborators(ctx context.Context, notepadID string) ([]*entities.User, error)
	Search(ctx context.Context, userID string, filter SearchFilter) ([]SearchHit, int, error)
	UpgradeTierForUser(ctx context.Context, userID string, tier entities.AccountTier) error
	DeleteExpired(ctx context.Context, now time.Time, guestLifetime, userLifetime time.Duration) (int64, error)
}
