package handlers

import (
	"github.com/gofiber/fiber/v3"

	"pastebridge/internal/adapters/http/middleware"
	"pastebridge/internal/app"
	"pastebridge/internal/app/dto"
)

const headerStripeSignature = "Stripe-Signature"

// SubscriptionHandler serves the billing routes.
type SubscriptionHandler struct {
	subscriptions *app.SubscriptionUseCase
}

// NewSubscriptionHandler creates the subscription handler.
func NewSubscriptionHandler(subscriptions *app.SubscriptionUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

// Plans handles GET /subscription/plans.
func (h *SubscriptionHandler) Plans(ctx fiber.Ctx) error {
	return ctx.JSON(h.subscriptions.Plans())
}

// Checkout handles POST /subscription/checkout.
func (h *SubscriptionHandler) Checkout(ctx fiber.Ctx) error {
	userID, _ := middleware.UserID(ctx)

	var req dto.CheckoutRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}

	resp, err := h.subscriptions.Checkout(ctx.Context(), userID, &req)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(resp)
}

// Status handles GET /subscription/status/:session_id.
func (h *SubscriptionHandler) Status(ctx fiber.Ctx) error {
	resp, err := h.subscriptions.Status(ctx.Context(), ctx.Params("session_id"))
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(resp)
}

// ProviderWebhook handles POST /webhook/stripe.
func (h *SubscriptionHandler) ProviderWebhook(ctx fiber.Ctx) error {
	signature := ctx.Get(headerStripeSignature)

	if err := h.subscriptions.HandleProviderWebhook(ctx.Context(), ctx.Body(), signature); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid webhook payload"})
	}
	return ctx.JSON(fiber.Map{"received": true})
}
