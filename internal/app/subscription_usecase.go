package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pastebridge/internal/app/dto"
	"pastebridge/internal/domain/entities"
	"pastebridge/internal/ports/repositories"
	svc "pastebridge/internal/ports/services"
	"pastebridge/pkg/logger"
)

const (
	msgCheckoutStarted     = "checkout session started"
	msgSubscriptionActive  = "subscription activated"
	msgWebhookActivation   = "provider webhook processed"
	msgActivationDuplicate = "activation already performed"

	errCtxCreatingCheckout = "creating checkout session"
	errCtxStoringPayment   = "storing payment"
	errCtxPollingSession   = "polling checkout session"
	errCtxActivatingPlan   = "activating plan"

	paidCurrency = "usd"
)

// SubscriptionUseCase implements the billing flow: plan catalog,
// checkout, status polling and provider webhooks. Activation is
// idempotent; whichever of the poll or the webhook sees the paid state
// first performs the upgrade.
type SubscriptionUseCase struct {
	paymentRepo repositories.PaymentRepository
	userRepo    repositories.UserRepository
	notepadRepo repositories.NotepadRepository
	checkout    svc.CheckoutProvider
}

// NewSubscriptionUseCase creates the subscription use case.
func NewSubscriptionUseCase(
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
	notepadRepo repositories.NotepadRepository,
	checkout svc.CheckoutProvider,
) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		notepadRepo: notepadRepo,
		checkout:    checkout,
	}
}

// Plans returns the subscription catalog.
func (uc *SubscriptionUseCase) Plans() *dto.PlansResponse {
	return dto.NewPlansResponse(entities.Plans())
}

// Checkout opens a provider session for a paid plan and records the
// pending payment.
func (uc *SubscriptionUseCase) Checkout(ctx context.Context, userID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	log := logger.Log(ctx).With(zap.String("usecase", "subscription"), zap.String("method", "Checkout"))

	plan, err := entities.PlanByID(req.Plan)
	if err != nil {
		return nil, err
	}

	session, err := uc.checkout.CreateSession(ctx, plan, userID, req.OriginURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingCheckout, err)
	}

	if _, err := uc.paymentRepo.Create(ctx, &entities.Payment{
		SessionID:     session.ID,
		UserID:        userID,
		Plan:          plan.ID,
		Amount:        plan.AmountUS,
		Currency:      paidCurrency,
		PaymentStatus: entities.PaymentPending,
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxStoringPayment, err)
	}

	log.Info(ctx, msgCheckoutStarted, zap.String("sessionID", session.ID), zap.String("plan", plan.ID))
	return &dto.CheckoutResponse{URL: session.URL, SessionID: session.ID}, nil
}

// Status polls the provider for the session state and activates the
// plan when payment is reported.
func (uc *SubscriptionUseCase) Status(ctx context.Context, sessionID string) (*dto.CheckoutStatusResponse, error) {
	state, err := uc.checkout.SessionState(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxPollingSession, err)
	}

	if state.PaymentStatus == entities.PaymentPaid {
		if err := uc.activate(ctx, sessionID); err != nil {
			return nil, err
		}
	} else if err := uc.paymentRepo.UpdateStatus(ctx, sessionID, state.PaymentStatus); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxStoringPayment, err)
	}

	return &dto.CheckoutStatusResponse{Status: state.Status, PaymentStatus: state.PaymentStatus}, nil
}

// HandleProviderWebhook verifies a provider webhook and runs the same
// idempotent activation as the status poll.
func (uc *SubscriptionUseCase) HandleProviderWebhook(ctx context.Context, payload []byte, signature string) error {
	log := logger.Log(ctx).With(zap.String("usecase", "subscription"), zap.String("method", "HandleProviderWebhook"))

	sessionID, paid, err := uc.checkout.VerifyWebhook(payload, signature)
	if err != nil {
		return err
	}
	if sessionID == "" || !paid {
		return nil
	}

	if err := uc.activate(ctx, sessionID); err != nil {
		return err
	}

	log.Info(ctx, msgWebhookActivation, zap.String("sessionID", sessionID))
	return nil
}

// activate flips the payment's activation flag exactly once, then
// upgrades the user and every notepad they own to premium.
func (uc *SubscriptionUseCase) activate(ctx context.Context, sessionID string) error {
	log := logger.Log(ctx).With(zap.String("usecase", "subscription"), zap.String("method", "activate"))

	payment, err := uc.paymentRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := uc.paymentRepo.UpdateStatus(ctx, sessionID, entities.PaymentPaid); err != nil {
		return fmt.Errorf("%s: %w", errCtxStoringPayment, err)
	}

	first, err := uc.paymentRepo.Activate(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxActivatingPlan, err)
	}
	if !first {
		log.Debug(ctx, msgActivationDuplicate, zap.String("sessionID", sessionID))
		return nil
	}

	plan := payment.Plan
	if err := uc.userRepo.UpdatePlan(ctx, payment.UserID, entities.TierPremium, &plan); err != nil {
		return fmt.Errorf("%s: %w", errCtxActivatingPlan, err)
	}
	if err := uc.notepadRepo.UpgradeTierForUser(ctx, payment.UserID, entities.TierPremium); err != nil {
		return fmt.Errorf("%s: %w", errCtxActivatingPlan, err)
	}

	log.Info(ctx, msgSubscriptionActive, zap.String("userID", payment.UserID), zap.String("plan", plan))
	return nil
}
