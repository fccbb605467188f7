// Package http wires the Fiber application: middleware, JSON API routes
// and the HTML pages.
package http

import (
	"github.com/gofiber/fiber/v3"

	"pastebridge/internal/adapters/http/handlers"
	"pastebridge/internal/adapters/http/middleware"
	"pastebridge/internal/config"
	svc "pastebridge/internal/ports/services"
	"pastebridge/pkg/logger"
)

// RouterDeps carries everything SetupRouter needs to assemble the routes.
type RouterDeps struct {
	Log       *logger.Logger
	RateLimit config.RateLimitConfig
	Windows   svc.WindowStore
	Tokens    svc.TokenService

	Notepads      *handlers.NotepadHandler
	Auth          *handlers.AuthHandler
	Feedback      *handlers.FeedbackHandler
	Subscriptions *handlers.SubscriptionHandler
	Admin         *handlers.AdminHandler
	Views         *handlers.ViewHandler
}

// SetupRouter registers middleware and routes on the Fiber application.
func SetupRouter(app *fiber.App, deps RouterDeps) {
	authRequired := middleware.NewAuthMiddleware(deps.Tokens)
	authOptional := middleware.NewOptionalAuthMiddleware(deps.Tokens)
	limit := func(route string, max int) fiber.Handler {
		return middleware.NewRateLimitMiddleware(deps.Windows, route, max, deps.RateLimit.Window)
	}

	// Middleware applied to every request.
	app.Use(middleware.NewLoggerMiddleware(deps.Log))
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/", deps.Views.Landing)
	app.Get("/health", handlers.Health)

	api := app.Group("/api")
	api.Get("/health", handlers.Health)

	// Notepad routes. Creation and appends are throttled; mutating the
	// membership of a notepad requires a signed-in owner.
	notepad := api.Group("/notepad")
	notepad.Post("/", deps.Notepads.Create, authOptional, limit("notepad_create", deps.RateLimit.CreateLimit))
	notepad.Post("/lookup", deps.Notepads.Lookup, limit("notepad_lookup", deps.RateLimit.CreateLimit))
	notepad.Post("/search", deps.Notepads.Search, authRequired)
	notepad.Get("/:code", deps.Notepads.Get)
	notepad.Get("/:code/view", deps.Views.Notepad)
	notepad.Post("/:code/append", deps.Notepads.Append, limit("notepad_append", deps.RateLimit.AppendLimit))
	notepad.Delete("/:code", deps.Notepads.Clear)
	notepad.Get("/:code/export", deps.Notepads.Export)
	notepad.Post("/:code/summarize", deps.Notepads.Summarize)
	notepad.Post("/:code/share", deps.Notepads.Share, authRequired)
	notepad.Delete("/:code/share/:email", deps.Notepads.Unshare, authRequired)
	notepad.Get("/:code/collaborators", deps.Notepads.Collaborators, authRequired)

	// Auth routes (public part is throttled to slow credential stuffing).
	auth := api.Group("/auth")
	auth.Post("/register", deps.Auth.Register, limit("auth", deps.RateLimit.AuthLimit))
	auth.Post("/login", deps.Auth.Login, limit("auth", deps.RateLimit.AuthLimit))
	auth.Post("/forgot-password", deps.Auth.ForgotPassword, limit("auth", deps.RateLimit.AuthLimit))
	auth.Post("/reset-password", deps.Auth.ResetPassword)
	auth.Get("/reset-password", deps.Views.ResetPasswordForm)

	account := auth.Group("")
	account.Use(authRequired)
	account.Get("/me", deps.Auth.Me)
	account.Put("/profile", deps.Auth.UpdateProfile)
	account.Post("/change-password", deps.Auth.ChangePassword)
	account.Post("/link-notepad", deps.Auth.LinkNotepad)
	account.Post("/link-notepads", deps.Auth.LinkNotepads)
	account.Get("/notepads", deps.Auth.ListNotepads)
	account.Get("/shared-notepads", deps.Auth.ListSharedNotepads)
	account.Post("/push-token", deps.Auth.AddPushToken)
	account.Delete("/push-token", deps.Auth.RemovePushToken)
	account.Post("/webhooks", deps.Auth.CreateWebhook)
	account.Get("/webhooks", deps.Auth.ListWebhooks)
	account.Delete("/webhooks/:id", deps.Auth.DeleteWebhook)

	// Feedback submission is open to guests but throttled.
	feedback := api.Group("/feedback")
	feedback.Post("/", deps.Feedback.Submit, authOptional, limit("feedback", deps.RateLimit.FeedbackLimit))

	// Subscription routes. The Stripe webhook authenticates itself through
	// its signature header rather than a bearer token.
	subscription := api.Group("/subscription")
	subscription.Get("/plans", deps.Subscriptions.Plans)
	subscription.Get("/plans-page", deps.Views.Plans)
	subscription.Post("/checkout", deps.Subscriptions.Checkout, authRequired)
	subscription.Get("/status/:session_id", deps.Subscriptions.Status)
	subscription.Get("/success", deps.Views.SubscriptionSuccess)
	api.Post("/webhook/stripe", deps.Subscriptions.ProviderWebhook)

	admin := api.Group("/admin")
	admin.Get("/stats", deps.Admin.Stats)
	admin.Get("/analytics-data", deps.Admin.Analytics)
	admin.Post("/cleanup", deps.Admin.Cleanup)
	admin.Get("/feedback", deps.Feedback.List)
	admin.Patch("/feedback/:id", deps.Feedback.UpdateStatus)
	admin.Post("/feedback/summarize", deps.Feedback.Summarize)
	admin.Get("/dashboard", deps.Views.AdminDashboard)
	admin.Get("/analytics", deps.Views.Analytics)

	// Handler for unknown routes.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": "Route not found",
		})
	})
}
