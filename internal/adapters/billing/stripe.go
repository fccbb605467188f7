// Package billing wraps the Stripe checkout API behind the
// CheckoutProvider interface.
package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	"pastebridge/internal/config"
	"pastebridge/internal/domain/entities"
	svc "pastebridge/internal/ports/services"
	"pastebridge/pkg/logger"
)

const (
	errMsgCreateSession    = "failed to create checkout session"
	errMsgRetrieveSession  = "failed to retrieve checkout session"
	errMsgVerifySignature  = "failed to verify webhook signature"
	errMsgDecodeEvent      = "failed to decode webhook event"
	eventCheckoutCompleted = "checkout.session.completed"
	currencyUSD            = "usd"
)

// StripeProvider implements CheckoutProvider on the Stripe API.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
}

// NewStripeProvider creates a Stripe checkout provider. With an empty
// API key the provider stays constructed but every call reports
// ErrCheckoutUnavailable.
func NewStripeProvider(cfg *config.StripeConfig) *StripeProvider {
	var api *client.API
	if cfg.APIKey != "" {
		api = &client.API{}
		api.Init(cfg.APIKey, nil)
	}
	return &StripeProvider{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
	}
}

// CreateSession opens a checkout session for the plan. The notepad
// service sells flat one-time upgrades, so the session uses payment
// mode with inline price data.
func (p *StripeProvider) CreateSession(ctx context.Context, plan entities.Plan, userID, originURL string) (*svc.CheckoutSession, error) {
	log := logger.Log(ctx).With(
		zap.String("service", "billing"),
		zap.String("method", "CreateSession"),
		zap.String("plan", plan.ID),
	)

	if p.api == nil {
		return nil, svc.ErrCheckoutUnavailable
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(originURL + "/api/subscription/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(originURL + "/api/subscription/plans-page"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currencyUSD),
					UnitAmount: stripe.Int64(plan.AmountUS),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("PasteBridge " + plan.Name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("user_id", userID)
	params.AddMetadata("plan", plan.ID)

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		log.Error(ctx, errMsgCreateSession, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errMsgCreateSession, svc.ErrCheckoutUnavailable)
	}

	log.Info(ctx, "checkout session created", zap.String("sessionID", sess.ID))
	return &svc.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// SessionState polls the provider for the session's payment status.
func (p *StripeProvider) SessionState(ctx context.Context, sessionID string) (*svc.SessionState, error) {
	log := logger.Log(ctx).With(
		zap.String("service", "billing"),
		zap.String("method", "SessionState"),
		zap.String("sessionID", sessionID),
	)

	if p.api == nil {
		return nil, svc.ErrCheckoutUnavailable
	}

	sess, err := p.api.CheckoutSessions.Get(sessionID, nil)
	if err != nil {
		log.Error(ctx, errMsgRetrieveSession, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errMsgRetrieveSession, svc.ErrCheckoutUnavailable)
	}

	return &svc.SessionState{
		Status:        string(sess.Status),
		PaymentStatus: string(sess.PaymentStatus),
	}, nil
}

// VerifyWebhook authenticates a provider webhook and extracts the
// checkout session it refers to.
func (p *StripeProvider) VerifyWebhook(payload []byte, signature string) (string, bool, error) {
	if p.webhookSecret == "" {
		return "", false, svc.ErrCheckoutUnavailable
	}

	event, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", errMsgVerifySignature, err)
	}

	if event.Type != eventCheckoutCompleted {
		return "", false, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return "", false, fmt.Errorf("%s: %w", errMsgDecodeEvent, err)
	}

	return sess.ID, sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, nil
}

var _ svc.CheckoutProvider = (*StripeProvider)(nil)
