package app_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pastebridge/internal/app"
	"pastebridge/internal/app/dto"
	"pastebridge/internal/domain/entities"
)

type authMocks struct {
	userRepo    *mockUserRepository
	notepadRepo *mockNotepadRepository
	webhookRepo *mockWebhookRepository
	resetRepo   *mockResetTokenRepository
	passwordSvc *mockPasswordService
	tokenSvc    *mockTokenService
}

func newAuthUseCase() (*app.AuthUseCase, *authMocks) {
	m := &authMocks{
		userRepo:    &mockUserRepository{},
		notepadRepo: &mockNotepadRepository{},
		webhookRepo: &mockWebhookRepository{},
		resetRepo:   &mockResetTokenRepository{},
		passwordSvc: &mockPasswordService{},
		tokenSvc:    &mockTokenService{},
	}
	uc := app.NewAuthUseCase(
		m.userRepo,
		m.notepadRepo,
		m.webhookRepo,
		m.resetRepo,
		m.passwordSvc,
		m.tokenSvc,
		testTiers(),
		time.Hour,
	)
	return uc, m
}

func TestRegister(t *testing.T) {
	ctx := testContext(t)

	t.Run("creates the account and issues a token", func(t *testing.T) {
		uc, m := newAuthUseCase()

		m.userRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, entities.ErrUserNotFound).Once()
		m.passwordSvc.On("Hash", mock.Anything, "secret123").Return("$2a$hash", nil).Once()
		m.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Email == "new@example.com" && u.PasswordHash == "$2a$hash" && u.AccountTier == entities.TierUser
		})).Return(&entities.User{ID: "user-1", Email: "new@example.com", Name: "Alex"}, nil).Once()
		m.tokenSvc.On("Generate", mock.Anything, "user-1").Return("jwt-token", time.Now().Add(time.Hour), nil).Once()

		resp, err := uc.Register(ctx, &dto.RegisterRequest{Email: " New@Example.COM ", Password: "secret123", Name: "Alex"})
		require.NoError(t, err, msgNoErrorExpected)
		assert.Equal(t, "jwt-token", resp.Token)
		assert.Equal(t, "user-1", resp.User.ID)
		m.userRepo.AssertExpectations(t)
	})

	t.Run("rejects malformed emails", func(t *testing.T) {
		uc, _ := newAuthUseCase()

		_, err := uc.Register(ctx, &dto.RegisterRequest{Email: "not-an-email", Password: "secret123"})
		assert.ErrorIs(t, err, entities.ErrInvalidEmail)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		uc, _ := newAuthUseCase()

		_, err := uc.Register(ctx, &dto.RegisterRequest{Email: "a@b.co", Password: "12345"})
		assert.ErrorIs(t, err, entities.ErrPasswordTooShort)
	})

	t.Run("rejects an email that is already registered", func(t *testing.T) {
		uc, m := newAuthUseCase()

		m.userRepo.On("FindByEmail", mock.Anything, "taken@example.com").
			Return(&entities.User{ID: "user-1"}, nil).Once()

		_, err := uc.Register(ctx, &dto.RegisterRequest{Email: "taken@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, entities.ErrEmailRegistered)
	})
}

func TestLogin(t *testing.T) {
	ctx := testContext(t)

	t.Run("valid credentials return a session", func(t *testing.T) {
		uc, m := newAuthUseCase()

		m.userRepo.On("FindByEmail", mock.Anything, "user@example.com").
			Return(&entities.User{ID: "user-1", Email: "user@example.com", PasswordHash: "$2a$hash"}, nil).Once()
		m.passwordSvc.On("Verify", mock.Anything, "secret123", "$2a$hash").Return(true, nil).Once()
		m.tokenSvc.On("Generate", mock.Anything, "user-1").Return("jwt-token", time.Now().Add(time.Hour), nil).Once()

		resp, err := uc.Login(ctx, &dto.LoginRequest{Email: "user@example.com", Password: "secret123"})
		require.NoError(t, err, msgNoErrorExpected)
		assert.Equal(t, "jwt-token", resp.Token)
	})

	t.Run("unknown emails and bad passwords produce the same error", func(t *testing.T) {
		uc, m := newAuthUseCase()

		m.userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").
			Return(nil, entities.ErrUserNotFound).Once()
		m.userRepo.On("FindByEmail", mock.Anything, "user@example.com").
			Return(&entities.User{ID: "user-1", PasswordHash: "$2a$hash"}, nil).Once()
		m.passwordSvc.On("Verify", mock.Anything, "wrong", "$2a$hash").Return(false, nil).Once()

		_, err := uc.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
		assert.ErrorIs(t, err, entities.ErrInvalidCredentials)

		_, err = uc.Login(ctx, &dto.LoginRequest{Email: "user@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
	})
}

func TestForgotPassword(t *testing.T) {
	ctx := testContext(t)

	t.Run("unknown email gets the same safe answer", func(t *testing.T) {
		uc, m := newAuthUseCase()

		m.userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").
			Return(nil, entities.ErrUserNotFound).Once()

		resp, err := uc.ForgotPassword(ctx, "ghost@example.com")
		require.NoError(t, err, msgNoErrorExpected)
		assert.NotEmpty(t, resp.Message)
		assert.Empty(t, resp.ResetToken)
	})

	t.Run("known email stores a token with the configured lifetime", func(t *testing.T) {
		uc, m := newAuthUseCase()

		m.userRepo.On("FindByEmail", mock.Anything, "user@example.com").
			Return(&entities.User{ID: "user-1"}, nil).Once()
		m.resetRepo.On("Create", mock.Anything, mock.MatchedBy(func(token *entities.ResetToken) bool {
			return token.UserID == "user-1" &&
				token.Token != "" &&
				time.Until(token.ExpiresAt) > 55*time.Minute
		})).Return(nil).Once()

		resp, err := uc.ForgotPassword(ctx, "user@example.com")
		require.NoError(t, err, msgNoErrorExpected)
		assert.NotEmpty(t, resp.ResetToken)
		m.resetRepo.AssertExpectations(t)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := testContext(t)

	validToken := func() *entities.ResetToken {
		return &entities.ResetToken{
			Token:     "abc123",
			UserID:    "user-1",
			ExpiresAt: time.Now().UTC().Add(30 * time.Minute),
		}
	}

	t.Run("redeems the token and rotates the password", func(t *testing.T) {
		uc, m := newAuthUseCase()

		m.resetRepo.On("Get", mock.Anything, "abc123").Return(validToken(), nil).Once()
		m.passwordSvc.On("Hash", mock.Anything, "newsecret").Return("$2a$new", nil).Once()
		m.resetRepo.On("Consume", mock.Anything, "abc123").Return(nil).Once()
		m.userRepo.On("UpdatePassword", mock.Anything, "user-1", "$2a$new").Return(nil).Once()

		err := uc.ResetPassword(ctx, "abc123", "newsecret")
		require.NoError(t, err, msgNoErrorExpected)
		m.resetRepo.AssertExpectations(t)
	})

	t.Run("used tokens are rejected", func(t *testing.T) {
		uc, m := newAuthUseCase()

		used := validToken()
		used.Used = true
		m.resetRepo.On("Get", mock.Anything, "abc123").Return(used, nil).Once()

		err := uc.ResetPassword(ctx, "abc123", "newsecret")
		assert.ErrorIs(t, err, entities.ErrResetTokenInvalid)
	})

	t.Run("expired tokens are rejected", func(t *testing.T) {
		uc, m := newAuthUseCase()

		expired := validToken()
		expired.ExpiresAt = time.Now().UTC().Add(-time.Minute)
		m.resetRepo.On("Get", mock.Anything, "abc123").Return(expired, nil).Once()

		err := uc.ResetPassword(ctx, "abc123", "newsecret")
		assert.ErrorIs(t, err, entities.ErrResetTokenInvalid)
	})

	t.Run("a concurrent redemption loses at Consume", func(t *testing.T) {
		uc, m := newAuthUseCase()

		m.resetRepo.On("Get", mock.Anything, "abc123").Return(validToken(), nil).Once()
		m.passwordSvc.On("Hash", mock.Anything, "newsecret").Return("$2a$new", nil).Once()
		m.resetRepo.On("Consume", mock.Anything, "abc123").Return(entities.ErrResetTokenInvalid).Once()

		err := uc.ResetPassword(ctx, "abc123", "newsecret")
		assert.ErrorIs(t, err, entities.ErrResetTokenInvalid)
		m.userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLinkNotepad(t *testing.T) {
	ctx := testContext(t)

	t.Run("adopting a guest notepad upgrades it to the user tier", func(t *testing.T) {
		uc, m := newAuthUseCase()

		m.notepadRepo.On("GetByCode", mock.Anything, "redtiger42").Return(guestNotepad("redtiger42"), nil).Once()
		m.userRepo.On("FindByID", mock.Anything, "user-1").
			Return(&entities.User{ID: "user-1", AccountTier: entities.TierUser}, nil).Once()
		m.notepadRepo.On("Link", mock.Anything, "np-1", "user-1", entities.TierUser, mock.MatchedBy(func(expiry *time.Time) bool {
			return expiry != nil && time.Until(*expiry) > 364*24*time.Hour
		})).Return(nil).Once()

		notepad, err := uc.LinkNotepad(ctx, "user-1", "RedTiger42")
		require.NoError(t, err, msgNoErrorExpected)
		assert.Equal(t, entities.TierUser, notepad.AccountTier)
		require.NotNil(t, notepad.UserID)
		assert.Equal(t, "user-1", *notepad.UserID)
	})

	t.Run("a premium owner removes the expiry entirely", func(t *testing.T) {
		uc, m := newAuthUseCase()

		m.notepadRepo.On("GetByCode", mock.Anything, "redtiger42").Return(guestNotepad("redtiger42"), nil).Once()
		m.userRepo.On("FindByID", mock.Anything, "user-1").
			Return(&entities.User{ID: "user-1", AccountTier: entities.TierPremium}, nil).Once()
		m.notepadRepo.On("Link", mock.Anything, "np-1", "user-1", entities.TierPremium, (*time.Time)(nil)).Return(nil).Once()

		notepad, err := uc.LinkNotepad(ctx, "user-1", "redtiger42")
		require.NoError(t, err, msgNoErrorExpected)
		assert.Equal(t, entities.TierPremium, notepad.AccountTier)
		assert.Nil(t, notepad.ExpiresAt)
	})

	t.Run("your own notepad cannot be linked twice", func(t *testing.T) {
		uc, m := newAuthUseCase()

		owned := guestNotepad("redtiger42")
		ownerID := "user-1"
		owned.UserID = &ownerID
		m.notepadRepo.On("GetByCode", mock.Anything, "redtiger42").Return(owned, nil).Once()

		_, err := uc.LinkNotepad(ctx, "user-1", "redtiger42")
		assert.ErrorIs(t, err, entities.ErrAlreadyOwned)
	})

	t.Run("someone else's notepad cannot be linked", func(t *testing.T) {
		uc, m := newAuthUseCase()

		owned := guestNotepad("redtiger42")
		ownerID := "user-2"
		owned.UserID = &ownerID
		m.notepadRepo.On("GetByCode", mock.Anything, "redtiger42").Return(owned, nil).Once()

		_, err := uc.LinkNotepad(ctx, "user-1", "redtiger42")
		assert.ErrorIs(t, err, entities.ErrOwnedByOther)
	})
}

func TestLinkNotepads(t *testing.T) {
	ctx := testContext(t)

	t.Run("reports every code instead of failing the batch", func(t *testing.T) {
		uc, m := newAuthUseCase()

		m.notepadRepo.On("GetByCode", mock.Anything, "freepad10").Return(guestNotepad("freepad10"), nil).Once()
		m.userRepo.On("FindByID", mock.Anything, "user-1").
			Return(&entities.User{ID: "user-1", AccountTier: entities.TierUser}, nil).Once()
		m.notepadRepo.On("Link", mock.Anything, "np-1", "user-1", entities.TierUser, mock.Anything).Return(nil).Once()

		m.notepadRepo.On("GetByCode", mock.Anything, "nosuch00").Return(nil, entities.ErrNotepadNotFound).Once()

		mine := guestNotepad("minepad20")
		selfID := "user-1"
		mine.UserID = &selfID
		m.notepadRepo.On("GetByCode", mock.Anything, "minepad20").Return(mine, nil).Once()

		foreign := guestNotepad("theirs30")
		otherID := "user-2"
		foreign.UserID = &otherID
		m.notepadRepo.On("GetByCode", mock.Anything, "theirs30").Return(foreign, nil).Once()

		resp, err := uc.LinkNotepads(ctx, "user-1", []string{"FreePad10", "nosuch00", "minepad20", "theirs30"})
		require.NoError(t, err, msgNoErrorExpected)
		assert.Equal(t, 1, resp.LinkedCount)
		assert.Equal(t, 3, resp.SkippedCount)
		assert.Equal(t, []string{"freepad10"}, resp.Linked)

		reasons := make(map[string]string, len(resp.Skipped))
		for _, s := range resp.Skipped {
			reasons[s.Code] = s.Reason
		}
		assert.Equal(t, "not found", reasons["nosuch00"])
		assert.Equal(t, "already yours", reasons["minepad20"])
		assert.Equal(t, "belongs to another user", reasons["theirs30"])
	})

	t.Run("unexpected errors do abort the batch", func(t *testing.T) {
		uc, m := newAuthUseCase()

		m.notepadRepo.On("GetByCode", mock.Anything, "redtiger42").
			Return(nil, errors.New("connection refused")).Once()

		_, err := uc.LinkNotepads(ctx, "user-1", []string{"redtiger42"})
		require.Error(t, err, msgErrorExpected)
	})
}

func TestCreateWebhook(t *testing.T) {
	ctx := testContext(t)

	t.Run("defaults the events and generates a secret", func(t *testing.T) {
		uc, m := newAuthUseCase()

		m.webhookRepo.On("Create", mock.Anything, mock.MatchedBy(func(w *entities.Webhook) bool {
			return w.UserID == "user-1" &&
				w.URL == "https://example.com/hook" &&
				len(w.Events) == 1 && w.Events[0] == entities.EventNewEntry &&
				w.Secret != "" && w.Active
		})).Return(&entities.Webhook{ID: "wh-1"}, nil).Once()

		webhook, err := uc.CreateWebhook(ctx, "user-1", &dto.CreateWebhookRequest{URL: "https://example.com/hook"})
		require.NoError(t, err, msgNoErrorExpected)
		assert.Equal(t, "wh-1", webhook.ID)
		m.webhookRepo.AssertExpectations(t)
	})

	t.Run("keeps a caller-provided secret and events", func(t *testing.T) {
		uc, m := newAuthUseCase()

		m.webhookRepo.On("Create", mock.Anything, mock.MatchedBy(func(w *entities.Webhook) bool {
			return w.Secret == "my-secret" && len(w.Events) == 2
		})).Return(&entities.Webhook{ID: "wh-2"}, nil).Once()

		_, err := uc.CreateWebhook(ctx, "user-1", &dto.CreateWebhookRequest{
			URL:    "https://example.com/hook",
			Events: []string{entities.EventNewEntry, entities.EventNotepadCleared},
			Secret: "my-secret",
		})
		require.NoError(t, err, msgNoErrorExpected)
	})
}
