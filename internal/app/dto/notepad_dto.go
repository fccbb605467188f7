// Package dto contains the request and response shapes of the HTTP API.
package dto

import (
	"time"

	"pastebridge/internal/domain/entities"
)

// EntryResponse is one notepad entry as returned to clients.
type EntryResponse struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NotepadResponse is the full notepad payload.
type NotepadResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Entries     []EntryResponse `json:"entries"`
	UserID      *string         `json:"user_id,omitempty"`
	AccountType string          `json:"account_type"`
	ExpiresAt   *time.Time      `json:"expires_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewNotepadResponse maps a notepad entity to its API shape.
func NewNotepadResponse(n *entities.Notepad) *NotepadResponse {
	entries := make([]EntryResponse, 0, len(n.Entries))
	for _, e := range n.Entries {
		entries = append(entries, EntryResponse{Text: e.Text, Timestamp: e.CreatedAt})
	}
	return &NotepadResponse{
		ID:          n.ID,
		Code:        n.Code,
		Entries:     entries,
		UserID:      n.UserID,
		AccountType: string(n.AccountTier),
		ExpiresAt:   n.ExpiresAt,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

// NewNotepadResponses maps a slice of notepads.
func NewNotepadResponses(notepads []*entities.Notepad) []*NotepadResponse {
	out := make([]*NotepadResponse, 0, len(notepads))
	for _, n := range notepads {
		out = append(out, NewNotepadResponse(n))
	}
	return out
}

// CodeLookupRequest carries a code typed on the landing page.
type CodeLookupRequest struct {
	Code string `json:"code"`
}

// AppendTextRequest carries the text to append to a notepad.
type AppendTextRequest struct {
	Text string `json:"text"`
}

// SummarizeRequest bounds the produced summary.
type SummarizeRequest struct {
	MaxLength int `json:"max_length"`
}

// SummarizeResponse is the result of a notepad summarization.
type SummarizeResponse struct {
	Code       string `json:"code"`
	Summary    string `json:"summary"`
	EntryCount int    `json:"entry_count"`
	Model      string `json:"model"`
}

// ShareRequest names the account to grant access to.
type ShareRequest struct {
	Email string `json:"email"`
}

// CollaboratorResponse is one account with access to a notepad.
type CollaboratorResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CollaboratorsResponse lists the owner and everyone the notepad is
// shared with.
type CollaboratorsResponse struct {
	Owner         *CollaboratorResponse  `json:"owner"`
	Collaborators []CollaboratorResponse `json:"collaborators"`
}

// NewCollaboratorResponse maps a user to the collaborator shape.
func NewCollaboratorResponse(u *entities.User) *CollaboratorResponse {
	return &CollaboratorResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

// SearchRequest filters the caller's visible notepads.
type SearchRequest struct {
	Query    string `json:"query"`
	Code     string `json:"code"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
}

// SearchItem is one search result.
type SearchItem struct {
	ID              string     `json:"id"`
	Code            string     `json:"code"`
	AccountType     string     `json:"account_type"`
	EntryCount      int        `json:"entry_count"`
	MatchingEntries int        `json:"matching_entries"`
	Preview         string     `json:"preview"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ExpiresAt       *time.Time `json:"expires_at"`
}

// SearchResponse is a page of search results.
type SearchResponse struct {
	Items []SearchItem `json:"items"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Pages int          `json:"pages"`
}
