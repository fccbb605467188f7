package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"pastebridge/internal/adapters/http/views"
	"pastebridge/internal/app"
	"pastebridge/internal/domain/entities"
)

// ViewHandler serves the HTML pages of the web UI.
type ViewHandler struct {
	renderer *views.Renderer
	notepads *app.NotepadUseCase
}

func NewViewHandler(renderer *views.Renderer, notepads *app.NotepadUseCase) *ViewHandler {
	return &ViewHandler{renderer: renderer, notepads: notepads}
}

// Landing handles GET /.
func (h *ViewHandler) Landing(ctx fiber.Ctx) error {
	return h.renderer.Render(ctx, fiber.StatusOK, views.PageLanding, nil)
}

// Notepad handles GET /api/notepad/:code/view.
func (h *ViewHandler) Notepad(ctx fiber.Ctx) error {
	notepad, err := h.notepads.Get(ctx.Context(), ctx.Params("code"))
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrNotepadExpired):
			return h.renderer.Render(ctx, fiber.StatusGone, views.PageExpired, nil)
		case errors.Is(err, entities.ErrNotepadNotFound):
			return h.renderer.Render(ctx, fiber.StatusNotFound, views.PageNotFound, nil)
		default:
			return apiError(ctx, err)
		}
	}

	return h.renderer.Render(ctx, fiber.StatusOK, views.PageView, fiber.Map{"Code": notepad.Code})
}

// ResetPasswordForm handles GET /api/auth/reset-password.
func (h *ViewHandler) ResetPasswordForm(ctx fiber.Ctx) error {
	return h.renderer.Render(ctx, fiber.StatusOK, views.PageReset, fiber.Map{"Token": ctx.Query("token")})
}

// AdminDashboard handles GET /api/admin/dashboard.
func (h *ViewHandler) AdminDashboard(ctx fiber.Ctx) error {
	return h.renderer.Render(ctx, fiber.StatusOK, views.PageDashboard, nil)
}

// Analytics handles GET /api/admin/analytics.
func (h *ViewHandler) Analytics(ctx fiber.Ctx) error {
	return h.renderer.Render(ctx, fiber.StatusOK, views.PageAnalytics, nil)
}

// Plans handles GET /api/subscription/plans-page.
func (h *ViewHandler) Plans(ctx fiber.Ctx) error {
	return h.renderer.Render(ctx, fiber.StatusOK, views.PagePlans, nil)
}

// SubscriptionSuccess handles GET /api/subscription/success.
func (h *ViewHandler) SubscriptionSuccess(ctx fiber.Ctx) error {
	return h.renderer.Render(ctx, fiber.StatusOK, views.PageSuccess, nil)
}
