package cache

import (
	"context"
	"sync"
	"time"

	svc "pastebridge/internal/ports/services"
)

// MemoryWindowStore keeps per-key hit timestamps in process memory.
// It is the default limiter backend for single-instance deployments.
type MemoryWindowStore struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	now  func() time.Time
}

// NewMemoryWindowStore creates a process-local window store.
func NewMemoryWindowStore() *MemoryWindowStore {
	return &MemoryWindowStore{
		hits: make(map[string][]time.Time),
		now:  time.Now,
	}
}

// Hit prunes the key's window and admits the call only when the
// surviving count is below the limit. A rejected hit records nothing,
// so a throttled caller recovers as soon as old hits age out.
func (s *MemoryWindowStore) Hit(_ context.Context, key string, limit int, window time.Duration) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-window)

	kept := s.hits[key][:0]
	for _, t := range s.hits[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= limit {
		s.hits[key] = kept
		return len(kept), false, nil
	}

	kept = append(kept, now)
	s.hits[key] = kept

	return len(kept), true, nil
}

var _ svc.WindowStore = (*MemoryWindowStore)(nil)
