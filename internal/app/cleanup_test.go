package app_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pastebridge/internal/app"
	"pastebridge/internal/config"
)

func TestCleanerRunOnce(t *testing.T) {
	ctx := testContext(t)
	cfg := &config.CleanupConfig{Interval: time.Hour, Backoff: time.Minute}

	t.Run("reports the number of removed notepads", func(t *testing.T) {
		notepadRepo := &mockNotepadRepository{}
		cleaner := app.NewCleaner(notepadRepo, cfg, testTiers())

		notepadRepo.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time"),
			mock.AnythingOfType("time.Duration"), mock.AnythingOfType("time.Duration")).
			Return(int64(7), nil).Once()

		deleted, err := cleaner.RunOnce(ctx)
		require.NoError(t, err, msgNoErrorExpected)
		assert.Equal(t, int64(7), deleted)
	})

	t.Run("sweeps with the configured lifetimes", func(t *testing.T) {
		notepadRepo := &mockNotepadRepository{}
		tiers := &config.TierConfig{GuestDays: 7, UserDays: 30}
		cleaner := app.NewCleaner(notepadRepo, cfg, tiers)

		notepadRepo.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time"),
			7*24*time.Hour, 30*24*time.Hour).
			Return(int64(0), nil).Once()

		_, err := cleaner.RunOnce(ctx)
		require.NoError(t, err, msgNoErrorExpected)
		notepadRepo.AssertExpectations(t)
	})

	t.Run("wraps sweep failures", func(t *testing.T) {
		notepadRepo := &mockNotepadRepository{}
		cleaner := app.NewCleaner(notepadRepo, cfg, testTiers())

		notepadRepo.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time"),
			mock.AnythingOfType("time.Duration"), mock.AnythingOfType("time.Duration")).
			Return(int64(0), errors.New("connection refused")).Once()

		_, err := cleaner.RunOnce(ctx)
		require.Error(t, err, msgErrorExpected)
	})
}

func TestCleanerRun(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	defer cancel()

	notepadRepo := &mockNotepadRepository{}
	cleaner := app.NewCleaner(notepadRepo, &config.CleanupConfig{
		Interval: 10 * time.Millisecond,
		Backoff:  10 * time.Millisecond,
	}, testTiers())

	var sweeps atomic.Int32
	notepadRepo.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time"),
		mock.AnythingOfType("time.Duration"), mock.AnythingOfType("time.Duration")).
		Run(func(mock.Arguments) { sweeps.Add(1) }).
		Return(int64(0), nil)

	done := make(chan struct{})
	go func() {
		cleaner.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return sweeps.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleaner did not stop after cancellation")
	}
}
