package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pastebridge/internal/config"
	"pastebridge/internal/ports/repositories"
	"pastebridge/pkg/logger"
)

const (
	msgSweepCompleted = "expired notepads removed"
	msgSweeperStopped = "cleanup loop stopped"
	errMsgSweepFailed = "cleanup sweep failed"
)

// Cleaner periodically removes notepads past their expiry. Premium
// notepads are never touched.
type Cleaner struct {
	notepadRepo repositories.NotepadRepository
	tiers       *config.TierConfig
	interval    time.Duration
	backoff     time.Duration
}

// NewCleaner creates the expiry sweeper.
func NewCleaner(notepadRepo repositories.NotepadRepository, cfg *config.CleanupConfig, tiers *config.TierConfig) *Cleaner {
	return &Cleaner{
		notepadRepo: notepadRepo,
		tiers:       tiers,
		interval:    cfg.Interval,
		backoff:     cfg.Backoff,
	}
}

// RunOnce performs a single sweep and reports how many notepads were
// removed.
func (c *Cleaner) RunOnce(ctx context.Context) (int64, error) {
	log := logger.Log(ctx).With(zap.String("usecase", "cleanup"))

	deleted, err := c.notepadRepo.DeleteExpired(ctx, time.Now().UTC(), c.tiers.GuestLifetime(), c.tiers.UserLifetime())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", errMsgSweepFailed, err)
	}

	if deleted > 0 {
		log.Info(ctx, msgSweepCompleted, zap.Int64("deleted", deleted))
	}
	return deleted, nil
}

// Run sweeps on the configured interval until the context is cancelled.
// A failed sweep retries after a short backoff instead of waiting a
// full interval.
func (c *Cleaner) Run(ctx context.Context) {
	log := logger.Log(ctx).With(zap.String("usecase", "cleanup"))

	timer := time.NewTimer(c.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info(ctx, msgSweeperStopped)
			return
		case <-timer.C:
		}

		next := c.interval
		if _, err := c.RunOnce(ctx); err != nil {
			log.Error(ctx, errMsgSweepFailed, zap.Error(err))
			next = c.backoff
		}
		timer.Reset(next)
	}
}
