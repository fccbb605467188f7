package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	svc "pastebridge/internal/ports/services"
	"pastebridge/pkg/logger"
)

const (
	// LocalUserID is the fiber locals key carrying the caller's ID.
	LocalUserID = "userID"

	errNoAuthHeader       = "no authorization header provided"
	errInvalidTokenFormat = "invalid token format"
	errInvalidToken       = "invalid or expired token"
)

// NewAuthMiddleware rejects requests without a valid bearer token.
func NewAuthMiddleware(tokenSvc svc.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))

		token, errMsg := bearerToken(ctx)
		if errMsg != "" {
			log.Debug(requestCtx, errMsg)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": errMsg})
		}

		userID, err := tokenSvc.Validate(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, errInvalidToken, zap.Error(err))
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": errInvalidToken})
		}

		ctx.Locals(LocalUserID, userID)
		return ctx.Next()
	}
}

// NewOptionalAuthMiddleware resolves the caller when a valid token is
// present and lets the request through either way.
func NewOptionalAuthMiddleware(tokenSvc svc.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()

		token, errMsg := bearerToken(ctx)
		if errMsg != "" {
			return ctx.Next()
		}

		if userID, err := tokenSvc.Validate(requestCtx, token); err == nil {
			ctx.Locals(LocalUserID, userID)
		}
		return ctx.Next()
	}
}

// UserID returns the authenticated caller's ID, if any.
func UserID(ctx fiber.Ctx) (string, bool) {
	id, ok := ctx.Locals(LocalUserID).(string)
	return id, ok && id != ""
}

func bearerToken(ctx fiber.Ctx) (string, string) {
	authHeader := ctx.Get("Authorization")
	if authHeader == "" {
		return "", errNoAuthHeader
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errInvalidTokenFormat
	}
	return strings.TrimPrefix(authHeader, "Bearer "), ""
}
