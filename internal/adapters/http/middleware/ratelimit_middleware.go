package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	svc "pastebridge/internal/ports/services"
	"pastebridge/pkg/logger"
)

const msgRateLimited = "rate limit exceeded"

// NewRateLimitMiddleware throttles a route group with a sliding window
// keyed by route name and client IP. When the store fails the request
// is let through.
func NewRateLimitMiddleware(store svc.WindowStore, route string, limit int, window time.Duration) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "ratelimit"), zap.String("route", route))

		key := fmt.Sprintf("%s:%s", route, ctx.IP())
		count, allowed, err := store.Hit(requestCtx, key, limit, window)
		if err != nil {
			log.Warn(requestCtx, "rate limit store unavailable", zap.Error(err))
			return ctx.Next()
		}

		if !allowed {
			log.Info(requestCtx, msgRateLimited, zap.String("ip", ctx.IP()), zap.Int("count", count))
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"detail": fmt.Sprintf("Rate limit exceeded. Try again in %s.", window),
			})
		}

		return ctx.Next()
	}
}
