package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"pastebridge/pkg/logger"
)

// NewRecoveryMiddleware converts panics into 500 responses.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx)

		defer func() {
			if r := recover(); r != nil {
				log.Error(requestCtx, "server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)

				if err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"detail": "Internal Server Error",
				}); err != nil {
					log.Error(requestCtx, "failed to send error response after panic", zap.Error(err))
				}
			}
		}()

		return ctx.Next()
	}
}
