package services

import "context"

// PushSender delivers a push notification to device tokens. Delivery is
// best-effort; callers fire it on a background goroutine and ignore the
// error beyond logging.
type PushSender interface {
	Send(ctx context.Context, tokens []string, title, body string) error
}
