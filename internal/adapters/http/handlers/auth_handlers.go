package handlers

import (
	"github.com/gofiber/fiber/v3"

	"pastebridge/internal/adapters/http/middleware"
	"pastebridge/internal/app"
	"pastebridge/internal/app/dto"
)

// AuthHandler serves the auth route group.
type AuthHandler struct {
	auth *app.AuthUseCase
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(auth *app.AuthUseCase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(ctx fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}
	if req.Email == "" || req.Password == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "email and password are required"})
	}

	resp, err := h.auth.Register(ctx.Context(), &req)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(resp)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(ctx fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}

	resp, err := h.auth.Login(ctx.Context(), &req)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(resp)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(ctx fiber.Ctx) error {
	userID, _ := middleware.UserID(ctx)

	user, err := h.auth.GetUser(ctx.Context(), userID)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(dto.NewUserResponse(user))
}

// UpdateProfile handles PUT /auth/profile.
func (h *AuthHandler) UpdateProfile(ctx fiber.Ctx) error {
	userID, _ := middleware.UserID(ctx)

	var req dto.UpdateProfileRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}

	user, err := h.auth.UpdateProfile(ctx.Context(), userID, req.Name)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(dto.NewUserResponse(user))
}

// ChangePassword handles POST /auth/change-password.
func (h *AuthHandler) ChangePassword(ctx fiber.Ctx) error {
	userID, _ := middleware.UserID(ctx)

	var req dto.ChangePasswordRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}

	if err := h.auth.ChangePassword(ctx.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Password changed successfully"})
}

// ForgotPassword handles POST /auth/forgot-password.
func (h *AuthHandler) ForgotPassword(ctx fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}

	resp, err := h.auth.ForgotPassword(ctx.Context(), req.Email)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(resp)
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(ctx fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}

	if err := h.auth.ResetPassword(ctx.Context(), req.Token, req.NewPassword); err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Password reset successfully"})
}

// LinkNotepad handles POST /auth/link-notepad.
func (h *AuthHandler) LinkNotepad(ctx fiber.Ctx) error {
	userID, _ := middleware.UserID(ctx)

	var req dto.LinkNotepadRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}
	if req.Code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errCodeRequired})
	}

	notepad, err := h.auth.LinkNotepad(ctx.Context(), userID, req.Code)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(dto.NewNotepadResponse(notepad))
}

// LinkNotepads handles POST /auth/link-notepads.
func (h *AuthHandler) LinkNotepads(ctx fiber.Ctx) error {
	userID, _ := middleware.UserID(ctx)

	var req dto.LinkNotepadsRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}

	resp, err := h.auth.LinkNotepads(ctx.Context(), userID, req.Codes)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(resp)
}

// ListNotepads handles GET /auth/notepads.
func (h *AuthHandler) ListNotepads(ctx fiber.Ctx) error {
	userID, _ := middleware.UserID(ctx)

	notepads, err := h.auth.ListNotepads(ctx.Context(), userID)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"notepads": dto.NewNotepadResponses(notepads)})
}

// ListSharedNotepads handles GET /auth/shared-notepads.
func (h *AuthHandler) ListSharedNotepads(ctx fiber.Ctx) error {
	userID, _ := middleware.UserID(ctx)

	notepads, err := h.auth.ListSharedNotepads(ctx.Context(), userID)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"notepads": dto.NewNotepadResponses(notepads)})
}

// AddPushToken handles POST /auth/push-token.
func (h *AuthHandler) AddPushToken(ctx fiber.Ctx) error {
	userID, _ := middleware.UserID(ctx)

	var req dto.PushTokenRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}
	if req.Token == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "token is required"})
	}

	if err := h.auth.AddPushToken(ctx.Context(), userID, req.Token); err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Push token registered"})
}

// RemovePushToken handles DELETE /auth/push-token.
func (h *AuthHandler) RemovePushToken(ctx fiber.Ctx) error {
	userID, _ := middleware.UserID(ctx)

	var req dto.PushTokenRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}

	if err := h.auth.RemovePushToken(ctx.Context(), userID, req.Token); err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Push token removed"})
}

// CreateWebhook handles POST /auth/webhooks.
func (h *AuthHandler) CreateWebhook(ctx fiber.Ctx) error {
	userID, _ := middleware.UserID(ctx)

	var req dto.CreateWebhookRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}
	if req.URL == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "url is required"})
	}

	webhook, err := h.auth.CreateWebhook(ctx.Context(), userID, &req)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(dto.NewWebhookResponse(webhook))
}

// ListWebhooks handles GET /auth/webhooks.
func (h *AuthHandler) ListWebhooks(ctx fiber.Ctx) error {
	userID, _ := middleware.UserID(ctx)

	webhooks, err := h.auth.ListWebhooks(ctx.Context(), userID)
	if err != nil {
		return apiError(ctx, err)
	}

	items := make([]*dto.WebhookResponse, 0, len(webhooks))
	for _, w := range webhooks {
		items = append(items, dto.NewWebhookResponse(w))
	}
	return ctx.JSON(fiber.Map{"webhooks": items})
}

// DeleteWebhook handles DELETE /auth/webhooks/:id.
func (h *AuthHandler) DeleteWebhook(ctx fiber.Ctx) error {
	userID, _ := middleware.UserID(ctx)

	if err := h.auth.DeleteWebhook(ctx.Context(), userID, ctx.Params("id")); err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Webhook deleted"})
}
