package shutdown_test

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pastebridge/pkg/shutdown"
)

// keepSigterm registers an extra SIGTERM listener for the lifetime of the
// test, so the process keeps ignoring the signal even after Wait returns
// and unregisters its own channel.
func keepSigterm(t *testing.T) {
	t.Helper()
	sink := make(chan os.Signal, 1)
	signal.Notify(sink, syscall.SIGTERM)
	t.Cleanup(func() { signal.Stop(sink) })
}

func sendSigterm(t *testing.T) {
	t.Helper()
	// Give Wait a moment to install its signal handler first.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))
}

func TestWaitRunsHooksInOrder(t *testing.T) {
	keepSigterm(t)

	var order []int
	hook := func(n int, err error) func(context.Context) error {
		return func(context.Context) error {
			order = append(order, n)
			return err
		}
	}

	done := make(chan struct{})
	go func() {
		shutdown.Wait(time.Second,
			hook(0, nil),
			hook(1, errors.New("close failed")),
			hook(2, nil),
		)
		close(done)
	}()

	sendSigterm(t)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after the signal")
	}

	// A failed hook must not stop the ones after it.
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestWaitSkipsHooksPastTheDeadline(t *testing.T) {
	keepSigterm(t)

	var lastRan atomic.Bool
	done := make(chan struct{})
	go func() {
		shutdown.Wait(50*time.Millisecond,
			func(ctx context.Context) error {
				<-ctx.Done()
				time.Sleep(5 * time.Second)
				return nil
			},
			func(context.Context) error {
				lastRan.Store(true)
				return nil
			},
		)
		close(done)
	}()

	sendSigterm(t)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not give up after the deadline")
	}

	assert.False(t, lastRan.Load(), "hooks after the deadline must be skipped")
}
