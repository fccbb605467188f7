package handlers

import (
	"github.com/gofiber/fiber/v3"

	"pastebridge/internal/adapters/http/middleware"
	"pastebridge/internal/app"
	"pastebridge/internal/app/dto"
	"pastebridge/internal/ports/repositories"
)

// FeedbackHandler serves the feedback routes, both the public submit
// endpoint and the admin triage group.
type FeedbackHandler struct {
	feedback *app.FeedbackUseCase
}

// NewFeedbackHandler creates the feedback handler.
func NewFeedbackHandler(feedback *app.FeedbackUseCase) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// Submit handles POST /feedback.
func (h *FeedbackHandler) Submit(ctx fiber.Ctx) error {
	var req dto.SubmitFeedbackRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}
	if req.Title == "" {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": "title is required"})
	}

	var userID *string
	if id, ok := middleware.UserID(ctx); ok {
		userID = &id
	}

	resp, err := h.feedback.Submit(ctx.Context(), userID, &req)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(resp)
}

// List handles GET /admin/feedback.
func (h *FeedbackHandler) List(ctx fiber.Ctx) error {
	filter := repositories.FeedbackFilter{
		Status:   ctx.Query("status"),
		Category: ctx.Query("category"),
		Page:     fiber.Query[int](ctx, "page", 1),
		Limit:    fiber.Query[int](ctx, "limit", 20),
	}

	resp, err := h.feedback.List(ctx.Context(), filter)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(resp)
}

// UpdateStatus handles PATCH /admin/feedback/:id.
func (h *FeedbackHandler) UpdateStatus(ctx fiber.Ctx) error {
	var req dto.UpdateFeedbackRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}

	if err := h.feedback.UpdateStatus(ctx.Context(), ctx.Params("id"), req.Status); err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Feedback updated"})
}

// Summarize handles POST /admin/feedback/summarize.
func (h *FeedbackHandler) Summarize(ctx fiber.Ctx) error {
	resp, err := h.feedback.SummarizeOpen(ctx.Context())
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(resp)
}
