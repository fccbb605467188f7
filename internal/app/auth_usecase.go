package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"pastebridge/internal/app/dto"
	"pastebridge/internal/config"
	"pastebridge/internal/domain/entities"
	"pastebridge/internal/ports/repositories"
	svc "pastebridge/internal/ports/services"
	"pastebridge/pkg/logger"
)

const (
	msgUserRegistered   = "user registered"
	msgUserLoggedIn     = "user logged in"
	msgPasswordChanged  = "password changed"
	msgPasswordReset    = "password reset completed"
	msgResetRequested   = "password reset requested"
	msgNotepadLinked    = "notepad linked to account"
	msgPushTokenAdded   = "push token registered"
	msgPushTokenRemoved = "push token removed"
	msgWebhookCreated   = "webhook created"
	msgWebhookDeleted   = "webhook deleted"

	errCtxCheckingUser      = "checking existing user"
	errCtxHashingPassword   = "hashing password"
	errCtxCreatingUser      = "creating user"
	errCtxGeneratingToken   = "generating token"
	errCtxFindingUser       = "finding user"
	errCtxVerifyingPassword = "verifying password"
	errCtxUpdatingProfile   = "updating profile"
	errCtxUpdatingPassword  = "updating password"
	errCtxStoringResetToken = "storing reset token"
	errCtxLinkingNotepad    = "linking notepad"
	errCtxListingNotepads   = "listing notepads"
	errCtxUpdatingPushToken = "updating push token"
	errCtxCreatingWebhook   = "creating webhook"
	errCtxListingWebhooks   = "listing webhooks"

	// Skip reasons reported by the bulk link operation.
	linkReasonNotFound     = "not found"
	linkReasonAlreadyYours = "already yours"
	linkReasonForeign      = "belongs to another user"

	forgotPasswordMessage = "If the email exists, a reset link has been sent"
	webhookSecretBytes    = 16
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AuthUseCase implements registration, sessions and the account-scoped
// operations: profile, password reset, notepad linking, push tokens
// and webhook subscriptions.
type AuthUseCase struct {
	userRepo    repositories.UserRepository
	notepadRepo repositories.NotepadRepository
	webhookRepo repositories.WebhookRepository
	resetRepo   repositories.ResetTokenRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	tiers       *config.TierConfig
	resetTTL    time.Duration
}

// NewAuthUseCase creates the auth use case.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	notepadRepo repositories.NotepadRepository,
	webhookRepo repositories.WebhookRepository,
	resetRepo repositories.ResetTokenRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
	tiers *config.TierConfig,
	resetTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		notepadRepo: notepadRepo,
		webhookRepo: webhookRepo,
		resetRepo:   resetRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		tiers:       tiers,
		resetTTL:    resetTTL,
	}
}

// Register creates an account and returns a session token with it.
func (uc *AuthUseCase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	log := logger.Log(ctx).With(zap.String("usecase", "auth"), zap.String("method", "Register"))

	email := normalizeEmail(req.Email)
	if !emailRegex.MatchString(email) {
		return nil, entities.ErrInvalidEmail
	}
	if len(req.Password) < entities.MinPasswordLength {
		return nil, entities.ErrPasswordTooShort
	}

	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existing != nil {
		return nil, entities.ErrEmailRegistered
	}

	hash, err := uc.passwordSvc.Hash(ctx, req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	user, err := uc.userRepo.Create(ctx, &entities.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		AccountTier:  entities.TierUser,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	token, _, err := uc.tokenSvc.Generate(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", user.ID))
	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

// Login verifies the credentials and issues a session token.
func (uc *AuthUseCase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	log := logger.Log(ctx).With(zap.String("usecase", "auth"), zap.String("method", "Login"))

	user, err := uc.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	ok, err := uc.passwordSvc.Verify(ctx, req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !ok {
		return nil, entities.ErrInvalidCredentials
	}

	token, _, err := uc.tokenSvc.Generate(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingToken, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return &dto.AuthResponse{Message: "Login successful", Token: token, User: dto.NewUserResponse(user)}, nil
}

// GetUser returns the account behind a validated session.
func (uc *AuthUseCase) GetUser(ctx context.Context, userID string) (*entities.User, error) {
	return uc.userRepo.FindByID(ctx, userID)
}

// UpdateProfile renames the account.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID, name string) (*entities.User, error) {
	user, err := uc.userRepo.UpdateName(ctx, userID, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingProfile, err)
	}
	return user, nil
}

// ChangePassword rotates the password after verifying the current one.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	log := logger.Log(ctx).With(zap.String("usecase", "auth"), zap.String("method", "ChangePassword"))

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := uc.passwordSvc.Verify(ctx, currentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !ok {
		return entities.ErrInvalidCredentials
	}

	hash, err := uc.passwordSvc.Hash(ctx, newPassword)
	if err != nil {
		if errors.Is(err, entities.ErrPasswordTooShort) {
			return err
		}
		return fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	if err := uc.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("%s: %w", errCtxUpdatingPassword, err)
	}

	log.Info(ctx, msgPasswordChanged, zap.String("userID", userID))
	return nil
}

// ForgotPassword issues a reset token. The response is the same whether
// or not the email exists, so accounts cannot be enumerated. Without an
// outbound mailer the token is echoed back for development setups.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) (*dto.ForgotPasswordResponse, error) {
	log := logger.Log(ctx).With(zap.String("usecase", "auth"), zap.String("method", "ForgotPassword"))

	resp := &dto.ForgotPasswordResponse{Message: forgotPasswordMessage}

	user, err := uc.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return resp, nil
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	token, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxStoringResetToken, err)
	}

	reset := &entities.ResetToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(uc.resetTTL),
	}
	if err := uc.resetRepo.Create(ctx, reset); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxStoringResetToken, err)
	}

	log.Info(ctx, msgResetRequested, zap.String("userID", user.ID))
	resp.ResetToken = token
	return resp, nil
}

// ResetPassword redeems a reset token exactly once.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, token, newPassword string) error {
	log := logger.Log(ctx).With(zap.String("usecase", "auth"), zap.String("method", "ResetPassword"))

	if len(newPassword) < entities.MinPasswordLength {
		return entities.ErrPasswordTooShort
	}

	reset, err := uc.resetRepo.Get(ctx, token)
	if err != nil {
		return err
	}
	if !reset.Redeemable(time.Now().UTC()) {
		return entities.ErrResetTokenInvalid
	}

	hash, err := uc.passwordSvc.Hash(ctx, newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	// Consume first so two concurrent redemptions cannot both pass.
	if err := uc.resetRepo.Consume(ctx, token); err != nil {
		return err
	}
	if err := uc.userRepo.UpdatePassword(ctx, reset.UserID, hash); err != nil {
		return fmt.Errorf("%s: %w", errCtxUpdatingPassword, err)
	}

	log.Info(ctx, msgPasswordReset, zap.String("userID", reset.UserID))
	return nil
}

// LinkNotepad adopts a guest notepad into the account, upgrading its
// tier and extending its lifetime.
func (uc *AuthUseCase) LinkNotepad(ctx context.Context, userID, code string) (*entities.Notepad, error) {
	log := logger.Log(ctx).With(zap.String("usecase", "auth"), zap.String("method", "LinkNotepad"))

	notepad, err := uc.notepadRepo.GetByCode(ctx, normalizeCode(code))
	if err != nil {
		return nil, err
	}
	if notepad.UserID != nil {
		if *notepad.UserID == userID {
			return nil, entities.ErrAlreadyOwned
		}
		return nil, entities.ErrOwnedByOther
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	tier := entities.TierUser
	var expiresAt *time.Time
	if user.AccountTier == entities.TierPremium {
		tier = entities.TierPremium
	} else {
		t := time.Now().UTC().Add(uc.tiers.UserLifetime())
		expiresAt = &t
	}

	if err := uc.notepadRepo.Link(ctx, notepad.ID, userID, tier, expiresAt); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxLinkingNotepad, err)
	}

	notepad.UserID = &userID
	notepad.AccountTier = tier
	notepad.ExpiresAt = expiresAt

	log.Info(ctx, msgNotepadLinked, zap.String("code", notepad.Code), zap.String("userID", userID))
	return notepad, nil
}

// LinkNotepads adopts several guest notepads, reporting the outcome of
// every code instead of failing the batch.
func (uc *AuthUseCase) LinkNotepads(ctx context.Context, userID string, codes []string) (*dto.LinkNotepadsResponse, error) {
	resp := &dto.LinkNotepadsResponse{
		Linked:  make([]string, 0, len(codes)),
		Skipped: make([]dto.SkippedLink, 0),
	}

	for _, code := range codes {
		normalized := normalizeCode(code)
		_, err := uc.LinkNotepad(ctx, userID, normalized)
		switch {
		case err == nil:
			resp.Linked = append(resp.Linked, normalized)
		case errors.Is(err, entities.ErrNotepadNotFound):
			resp.Skipped = append(resp.Skipped, dto.SkippedLink{Code: normalized, Reason: linkReasonNotFound})
		case errors.Is(err, entities.ErrAlreadyOwned):
			resp.Skipped = append(resp.Skipped, dto.SkippedLink{Code: normalized, Reason: linkReasonAlreadyYours})
		case errors.Is(err, entities.ErrOwnedByOther):
			resp.Skipped = append(resp.Skipped, dto.SkippedLink{Code: normalized, Reason: linkReasonForeign})
		default:
			return nil, err
		}
	}

	resp.LinkedCount = len(resp.Linked)
	resp.SkippedCount = len(resp.Skipped)
	return resp, nil
}

// ListNotepads returns the caller's own notepads.
func (uc *AuthUseCase) ListNotepads(ctx context.Context, userID string) ([]*entities.Notepad, error) {
	notepads, err := uc.notepadRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingNotepads, err)
	}
	return notepads, nil
}

// ListSharedNotepads returns the notepads shared with the caller.
func (uc *AuthUseCase) ListSharedNotepads(ctx context.Context, userID string) ([]*entities.Notepad, error) {
	notepads, err := uc.notepadRepo.ListSharedWith(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingNotepads, err)
	}
	return notepads, nil
}

// AddPushToken registers a device token. Re-registering is a no-op.
func (uc *AuthUseCase) AddPushToken(ctx context.Context, userID, token string) error {
	log := logger.Log(ctx).With(zap.String("usecase", "auth"), zap.String("method", "AddPushToken"))

	if err := uc.userRepo.AddPushToken(ctx, userID, token); err != nil {
		return fmt.Errorf("%s: %w", errCtxUpdatingPushToken, err)
	}

	log.Info(ctx, msgPushTokenAdded, zap.String("userID", userID))
	return nil
}

// RemovePushToken drops a device token. Unknown tokens succeed.
func (uc *AuthUseCase) RemovePushToken(ctx context.Context, userID, token string) error {
	log := logger.Log(ctx).With(zap.String("usecase", "auth"), zap.String("method", "RemovePushToken"))

	if err := uc.userRepo.RemovePushToken(ctx, userID, token); err != nil {
		return fmt.Errorf("%s: %w", errCtxUpdatingPushToken, err)
	}

	log.Info(ctx, msgPushTokenRemoved, zap.String("userID", userID))
	return nil
}

// CreateWebhook subscribes an endpoint to notepad events. A secret is
// generated when the caller does not provide one.
func (uc *AuthUseCase) CreateWebhook(ctx context.Context, userID string, req *dto.CreateWebhookRequest) (*entities.Webhook, error) {
	log := logger.Log(ctx).With(zap.String("usecase", "auth"), zap.String("method", "CreateWebhook"))

	secret := req.Secret
	if secret == "" {
		var err error
		if secret, err = randomToken(); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtxCreatingWebhook, err)
		}
	}

	events := req.Events
	if len(events) == 0 {
		events = []string{entities.EventNewEntry}
	}

	webhook, err := uc.webhookRepo.Create(ctx, &entities.Webhook{
		UserID: userID,
		URL:    req.URL,
		Events: events,
		Secret: secret,
		Active: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingWebhook, err)
	}

	log.Info(ctx, msgWebhookCreated, zap.String("webhookID", webhook.ID))
	return webhook, nil
}

// ListWebhooks returns the caller's webhook subscriptions.
func (uc *AuthUseCase) ListWebhooks(ctx context.Context, userID string) ([]*entities.Webhook, error) {
	webhooks, err := uc.webhookRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingWebhooks, err)
	}
	return webhooks, nil
}

// DeleteWebhook removes one of the caller's webhooks.
func (uc *AuthUseCase) DeleteWebhook(ctx context.Context, userID, webhookID string) error {
	log := logger.Log(ctx).With(zap.String("usecase", "auth"), zap.String("method", "DeleteWebhook"))

	if err := uc.webhookRepo.Delete(ctx, webhookID, userID); err != nil {
		return err
	}

	log.Info(ctx, msgWebhookDeleted, zap.String("webhookID", webhookID))
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func randomToken() (string, error) {
	buf := make([]byte, webhookSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
