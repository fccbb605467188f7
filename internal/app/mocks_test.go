package app_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"pastebridge/internal/domain/entities"
	"pastebridge/internal/ports/repositories"
	svc "pastebridge/internal/ports/services"
)

type mockNotepadRepository struct {
	mock.Mock
}

func (m *mockNotepadRepository) Create(ctx context.Context, notepad *entities.Notepad) (*entities.Notepad, error) {
	args := m.Called(ctx, notepad)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Notepad), args.Error(1)
}

func (m *mockNotepadRepository) GetByCode(ctx context.Context, code string) (*entities.Notepad, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Notepad), args.Error(1)
}

func (m *mockNotepadRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockNotepadRepository) AppendEntry(ctx context.Context, notepadID, text string) (*entities.Entry, error) {
	args := m.Called(ctx, notepadID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Entry), args.Error(1)
}

func (m *mockNotepadRepository) ClearEntries(ctx context.Context, notepadID string) error {
	args := m.Called(ctx, notepadID)
	return args.Error(0)
}

func (m *mockNotepadRepository) Link(ctx context.Context, notepadID, userID string, tier entities.AccountTier, expiresAt *time.Time) error {
	args := m.Called(ctx, notepadID, userID, tier, expiresAt)
	return args.Error(0)
}

func (m *mockNotepadRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Notepad, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Notepad), args.Error(1)
}

func (m *mockNotepadRepository) ListSharedWith(ctx context.Context, userID string) ([]*entities.Notepad, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Notepad), args.Error(1)
}

func (m *mockNotepadRepository) AddCollaborator(ctx context.Context, notepadID, userID string) (bool, error) {
	args := m.Called(ctx, notepadID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockNotepadRepository) RemoveCollaborator(ctx context.Context, notepadID, userID string) error {
	args := m.Called(ctx, notepadID, userID)
	return args.Error(0)
}

func (m *mockNotepadRepository) ListCollaborators(ctx context.Context, notepadID string) ([]*entities.User, error) {
	args := m.Called(ctx, notepadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *mockNotepadRepository) Search(ctx context.Context, userID string, filter repositories.SearchFilter) ([]repositories.SearchHit, int, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]repositories.SearchHit), args.Int(1), args.Error(2)
}

func (m *mockNotepadRepository) UpgradeTierForUser(ctx context.Context, userID string, tier entities.AccountTier) error {
	args := m.Called(ctx, userID, tier)
	return args.Error(0)
}

func (m *mockNotepadRepository) DeleteExpired(ctx context.Context, now time.Time, guestLifetime, userLifetime time.Duration) (int64, error) {
	args := m.Called(ctx, now, guestLifetime, userLifetime)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) UpdateName(ctx context.Context, id, name string) (*entities.User, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *mockUserRepository) UpdatePlan(ctx context.Context, id string, tier entities.AccountTier, plan *string) error {
	args := m.Called(ctx, id, tier, plan)
	return args.Error(0)
}

func (m *mockUserRepository) AddPushToken(ctx context.Context, id, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func (m *mockUserRepository) RemovePushToken(ctx context.Context, id, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

type mockWebhookRepository struct {
	mock.Mock
}

func (m *mockWebhookRepository) Create(ctx context.Context, webhook *entities.Webhook) (*entities.Webhook, error) {
	args := m.Called(ctx, webhook)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Webhook), args.Error(1)
}

func (m *mockWebhookRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Webhook, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Webhook), args.Error(1)
}

func (m *mockWebhookRepository) Delete(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *mockWebhookRepository) ListActiveForEvent(ctx context.Context, userID, event string) ([]*entities.Webhook, error) {
	args := m.Called(ctx, userID, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Webhook), args.Error(1)
}

type mockFeedbackRepository struct {
	mock.Mock
}

func (m *mockFeedbackRepository) Create(ctx context.Context, item *entities.Feedback) (*entities.Feedback, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Feedback), args.Error(1)
}

func (m *mockFeedbackRepository) List(ctx context.Context, filter repositories.FeedbackFilter) ([]*entities.Feedback, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Feedback), args.Int(1), args.Error(2)
}

func (m *mockFeedbackRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockFeedbackRepository) ListOpen(ctx context.Context) ([]*entities.Feedback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Feedback), args.Error(1)
}

type mockPaymentRepository struct {
	mock.Mock
}

func (m *mockPaymentRepository) Create(ctx context.Context, payment *entities.Payment) (*entities.Payment, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payment), args.Error(1)
}

func (m *mockPaymentRepository) GetBySessionID(ctx context.Context, sessionID string) (*entities.Payment, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payment), args.Error(1)
}

func (m *mockPaymentRepository) UpdateStatus(ctx context.Context, sessionID, paymentStatus string) error {
	args := m.Called(ctx, sessionID, paymentStatus)
	return args.Error(0)
}

func (m *mockPaymentRepository) Activate(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

type mockResetTokenRepository struct {
	mock.Mock
}

func (m *mockResetTokenRepository) Create(ctx context.Context, token *entities.ResetToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockResetTokenRepository) Get(ctx context.Context, token string) (*entities.ResetToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ResetToken), args.Error(1)
}

func (m *mockResetTokenRepository) Consume(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Generate(ctx context.Context, userID string) (string, time.Time, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) Validate(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockSummarizer struct {
	mock.Mock
}

func (m *mockSummarizer) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	args := m.Called(ctx, text, maxLength)
	return args.String(0), args.Error(1)
}

func (m *mockSummarizer) Model() string {
	args := m.Called()
	return args.String(0)
}

func (m *mockSummarizer) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

type mockPushSender struct {
	mock.Mock
}

func (m *mockPushSender) Send(ctx context.Context, tokens []string, title, body string) error {
	args := m.Called(ctx, tokens, title, body)
	return args.Error(0)
}

type mockWebhookDispatcher struct {
	mock.Mock
}

func (m *mockWebhookDispatcher) Dispatch(ctx context.Context, webhook *entities.Webhook, event svc.WebhookEvent) error {
	args := m.Called(ctx, webhook, event)
	return args.Error(0)
}

type mockCheckoutProvider struct {
	mock.Mock
}

func (m *mockCheckoutProvider) CreateSession(ctx context.Context, plan entities.Plan, userID, originURL string) (*svc.CheckoutSession, error) {
	args := m.Called(ctx, plan, userID, originURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*svc.CheckoutSession), args.Error(1)
}

func (m *mockCheckoutProvider) SessionState(ctx context.Context, sessionID string) (*svc.SessionState, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*svc.SessionState), args.Error(1)
}

func (m *mockCheckoutProvider) VerifyWebhook(payload []byte, signature string) (string, bool, error) {
	args := m.Called(payload, signature)
	return args.String(0), args.Bool(1), args.Error(2)
}
