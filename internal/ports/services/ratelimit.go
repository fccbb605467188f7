package services

import (
	"context"
	"time"
)

// WindowStore counts hits per key inside a sliding time window. Hit
// admits the call when fewer than limit hits survive in the window and
// records it only then; rejected calls leave the window untouched. It
// returns the number of hits the window holds after the call.
type WindowStore interface {
	Hit(ctx context.Context, key string, limit int, window time.Duration) (int, bool, error)
}
