// Package entities contains the PasteBridge domain model.
package entities

import (
	"errors"
	"time"
)

// Notepad domain errors.
var (
	ErrNotepadNotFound   = errors.New("notepad not found")
	ErrNotepadExpired    = errors.New("notepad has expired")
	ErrNotOwner          = errors.New("only the owner can perform this action")
	ErrAlreadyOwned      = errors.New("notepad already linked to your account")
	ErrOwnedByOther      = errors.New("notepad belongs to another user")
	ErrNoEntries         = errors.New("notepad has no entries")
	ErrSelfShare         = errors.New("cannot share a notepad with yourself")
	ErrCodeGeneration    = errors.New("could not allocate a unique notepad code")
	ErrAlreadyShared     = errors.New("user already has access")
	ErrNotACollaborator  = errors.New("user is not a collaborator")
	ErrEmptyEntryText    = errors.New("entry text cannot be empty")
	ErrInvalidExportKind = errors.New("unsupported export format")
	ErrInvalidDate       = errors.New("invalid date format, expected YYYY-MM-DD or RFC3339")
)

// AccountTier is the ownership state of a notepad or user.
type AccountTier string

// Account tiers. Guest notepads belong to no one and expire quickly;
// premium notepads never expire.
const (
	TierGuest   AccountTier = "guest"
	TierUser    AccountTier = "user"
	TierPremium AccountTier = "premium"
)

// Entry is one timestamped text submission appended to a notepad.
// Entries are immutable once appended; only a full clear removes them.
type Entry struct {
	ID        string
	NotepadID string
	Text      string
	CreatedAt time.Time
}

// Notepad is a named shared text buffer identified by a short code.
type Notepad struct {
	ID          string
	Code        string
	UserID      *string
	AccountTier AccountTier
	ExpiresAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Entries     []Entry
}

// EffectiveExpiry returns the expiry to enforce at read time. Rows
// predating the expiry column fall back to creation time plus the
// tier lifetime; premium notepads never expire.
func (n *Notepad) EffectiveExpiry(guestLifetime, userLifetime time.Duration) *time.Time {
	if n.ExpiresAt != nil {
		return n.ExpiresAt
	}
	switch n.AccountTier {
	case TierPremium:
		return nil
	case TierUser:
		t := n.CreatedAt.Add(userLifetime)
		return &t
	default:
		t := n.CreatedAt.Add(guestLifetime)
		return &t
	}
}

// Expired reports whether the notepad is past its effective expiry.
func (n *Notepad) Expired(now time.Time, guestLifetime, userLifetime time.Duration) bool {
	expiry := n.EffectiveExpiry(guestLifetime, userLifetime)
	return expiry != nil && expiry.Before(now)
}
