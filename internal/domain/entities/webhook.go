package entities

import (
	"errors"
	"time"
)

// ErrWebhookNotFound is returned when a webhook does not exist or
// belongs to another user.
var ErrWebhookNotFound = errors.New("webhook not found")

// Webhook event names subscribers can listen for.
const (
	EventNewEntry       = "new_entry"
	EventNotepadCleared = "notepad_cleared"
)

// Webhook is a subscriber endpoint fired best-effort when an event
// occurs on one of the owner's notepads.
type Webhook struct {
	ID        string
	UserID    string
	URL       string
	Events    []string
	Secret    string
	Active    bool
	CreatedAt time.Time
}

// Subscribed reports whether the webhook listens for the given event.
func (w *Webhook) Subscribed(event string) bool {
	if !w.Active {
		return false
	}
	for _, e := range w.Events {
		if e == event {
			return true
		}
	}
	return false
}
