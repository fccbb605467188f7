package dto

import (
	"time"

	"pastebridge/internal/domain/entities"
)

// RegisterRequest contains the data to create an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest contains the login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	AccountType string    `json:"account_type"`
	Plan        *string   `json:"plan,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewUserResponse maps a user entity to its API shape.
func NewUserResponse(u *entities.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		AccountType: string(u.AccountTier),
		Plan:        u.Plan,
		CreatedAt:   u.CreatedAt,
	}
}

// AuthResponse carries a bearer token and the account it belongs to.
type AuthResponse struct {
	Message string        `json:"message,omitempty"`
	Token   string        `json:"token"`
	User    *UserResponse `json:"user"`
}

// UpdateProfileRequest renames the account.
type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// ChangePasswordRequest rotates the account password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ForgotPasswordRequest starts a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordResponse echoes the reset token so development setups
// without outbound mail can complete the flow.
type ForgotPasswordResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"reset_token,omitempty"`
}

// ResetPasswordRequest redeems a reset token.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// LinkNotepadRequest adopts one guest notepad.
type LinkNotepadRequest struct {
	Code string `json:"code"`
}

// LinkNotepadsRequest adopts several guest notepads at once.
type LinkNotepadsRequest struct {
	Codes []string `json:"codes"`
}

// SkippedLink explains why one code was not linked.
type SkippedLink struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// LinkNotepadsResponse reports the per-code outcomes of a bulk link.
type LinkNotepadsResponse struct {
	LinkedCount  int           `json:"linked_count"`
	SkippedCount int           `json:"skipped_count"`
	Linked       []string      `json:"linked"`
	Skipped      []SkippedLink `json:"skipped"`
}

// PushTokenRequest registers or removes a device push token.
type PushTokenRequest struct {
	Token string `json:"token"`
}

// CreateWebhookRequest subscribes an endpoint to notepad events.
type CreateWebhookRequest struct {
	URL    string   `json:"url"`
	Events []string `json:"events"`
	Secret string   `json:"secret"`
}

// WebhookResponse is one webhook subscription.
type WebhookResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Events    []string  `json:"events"`
	Secret    string    `json:"secret"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWebhookResponse maps a webhook entity to its API shape.
func NewWebhookResponse(w *entities.Webhook) *WebhookResponse {
	return &WebhookResponse{
		ID:        w.ID,
		URL:       w.URL,
		Events:    w.Events,
		Secret:    w.Secret,
		Active:    w.Active,
		CreatedAt: w.CreatedAt,
	}
}
