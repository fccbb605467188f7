// Package handlers contains the HTTP handlers of the API.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"pastebridge/internal/domain/entities"
	svc "pastebridge/internal/ports/services"
	"pastebridge/pkg/logger"
)

const detailInternalError = "Internal server error"

// apiError maps a domain error to its HTTP status and writes the
// detail payload. Unknown errors become opaque 500s.
func apiError(ctx fiber.Ctx, err error) error {
	requestCtx := ctx.Context()

	status, detail := classify(err)
	if status == fiber.StatusInternalServerError {
		logger.Log(requestCtx).Error(requestCtx, "request handling failed", zap.Error(err))
		detail = detailInternalError
	}

	return ctx.Status(status).JSON(fiber.Map{"detail": detail})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, entities.ErrNotepadNotFound):
		return fiber.StatusNotFound, "Notepad not found. Check your code."
	case errors.Is(err, entities.ErrUserNotFound):
		return fiber.StatusNotFound, "User not found"
	case errors.Is(err, entities.ErrWebhookNotFound),
		errors.Is(err, entities.ErrFeedbackNotFound),
		errors.Is(err, entities.ErrPaymentNotFound),
		errors.Is(err, entities.ErrNotACollaborator):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, entities.ErrNotepadExpired):
		return fiber.StatusGone, "This notepad has expired"
	case errors.Is(err, entities.ErrNotOwner):
		return fiber.StatusForbidden, err.Error()
	case errors.Is(err, entities.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, entities.ErrInvalidFeedbackCategory),
		errors.Is(err, entities.ErrInvalidFeedbackStatus):
		return fiber.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, svc.ErrSummarizerUnavailable),
		errors.Is(err, svc.ErrCheckoutUnavailable):
		return fiber.StatusServiceUnavailable, err.Error()
	case errors.Is(err, entities.ErrEmailRegistered),
		errors.Is(err, entities.ErrPasswordTooShort),
		errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrEmptyEntryText),
		errors.Is(err, entities.ErrInvalidExportKind),
		errors.Is(err, entities.ErrAlreadyOwned),
		errors.Is(err, entities.ErrOwnedByOther),
		errors.Is(err, entities.ErrSelfShare),
		errors.Is(err, entities.ErrNoEntries),
		errors.Is(err, entities.ErrResetTokenInvalid),
		errors.Is(err, entities.ErrInvalidPlan),
		errors.Is(err, entities.ErrInvalidDate):
		return fiber.StatusBadRequest, err.Error()
	default:
		return fiber.StatusInternalServerError, ""
	}
}
