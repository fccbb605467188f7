// Package shutdown turns SIGINT/SIGTERM into an orderly teardown.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pastebridge/pkg/logger"
)

// Wait blocks until SIGINT or SIGTERM arrives, then runs the hooks one
// after another in the order given, so a caller can stop accepting work
// before releasing the resources that work depends on. A failed hook is
// logged and the next one still runs. All hooks share a single deadline;
// once it passes, the hook in flight is abandoned and the rest are
// skipped.
func Wait(timeout time.Duration, hooks ...func(context.Context) error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log := logger.Log(ctx)
	for i, hook := range hooks {
		errCh := make(chan error, 1)
		go func(fn func(context.Context) error) {
			errCh <- fn(ctx)
		}(hook)

		select {
		case err := <-errCh:
			if err != nil {
				log.Error(ctx, "shutdown hook failed", zap.Int("hook", i), zap.Error(err))
			}
		case <-ctx.Done():
			log.Warn(ctx, "shutdown deadline passed, skipping remaining hooks", zap.Int("hook", i))
			return
		}
	}
}
