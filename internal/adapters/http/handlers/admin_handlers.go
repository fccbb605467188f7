package handlers

import (
	"github.com/gofiber/fiber/v3"

	"pastebridge/internal/app"
	"pastebridge/internal/app/dto"
)

// AdminHandler serves the operator endpoints.
type AdminHandler struct {
	admin   *app.AdminUseCase
	cleaner *app.Cleaner
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(admin *app.AdminUseCase, cleaner *app.Cleaner) *AdminHandler {
	return &AdminHandler{admin: admin, cleaner: cleaner}
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(ctx fiber.Ctx) error {
	resp, err := h.admin.Stats(ctx.Context())
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(resp)
}

// Analytics handles GET /admin/analytics-data.
func (h *AdminHandler) Analytics(ctx fiber.Ctx) error {
	resp, err := h.admin.Analytics(ctx.Context())
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(resp)
}

// Cleanup handles POST /admin/cleanup.
func (h *AdminHandler) Cleanup(ctx fiber.Ctx) error {
	deleted, err := h.cleaner.RunOnce(ctx.Context())
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(&dto.CleanupResponse{Deleted: deleted, Message: "Cleanup completed"})
}

// Health handles GET /health.
func Health(ctx fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "healthy", "service": "PasteBridge API"})
}
