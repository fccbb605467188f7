// Package middleware contains the HTTP middleware chain.
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"pastebridge/pkg/logger"
)

const headerRequestID = "X-Request-ID"

// NewLoggerMiddleware tags every request with an ID and logs its
// outcome. The request-scoped logger travels in the context.
func NewLoggerMiddleware(log *logger.Logger) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(headerRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		requestCtx := logger.NewRequestIDContext(ctx.Context(), requestID)
		requestCtx = logger.NewContext(requestCtx, log)
		ctx.SetContext(requestCtx)
		ctx.Set(headerRequestID, requestID)

		start := time.Now()
		reqLog := logger.Log(requestCtx).With(
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
			zap.String("ip", ctx.IP()),
		)

		err := ctx.Next()

		fields := []zap.Field{
			zap.Int("status", ctx.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			reqLog.Error(requestCtx, "request failed", append(fields, zap.Error(err))...)
			return err
		}

		reqLog.Info(requestCtx, "request completed", fields...)
		return nil
	}
}
