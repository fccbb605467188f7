// Package webhooks delivers notepad events to subscriber endpoints.
package webhooks

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"pastebridge/internal/config"
	"pastebridge/internal/domain/entities"
	svc "pastebridge/internal/ports/services"
	"pastebridge/pkg/logger"
)

const (
	errMsgMarshalEvent  = "failed to marshal webhook event"
	errMsgCreateRequest = "failed to create webhook request"
	errMsgDeliverEvent  = "failed to deliver webhook event"
	errMsgBadStatus     = "webhook endpoint returned non-success status"

	headerSignature = "X-PasteBridge-Signature"
	headerEvent     = "X-PasteBridge-Event"
)

// HTTPDispatcher posts events to subscriber endpoints. Delivery is a
// single attempt with a fixed timeout.
type HTTPDispatcher struct {
	client *http.Client
}

// NewHTTPDispatcher creates a dispatcher from the webhooks configuration.
func NewHTTPDispatcher(cfg *config.WebhooksConfig) *HTTPDispatcher {
	return &HTTPDispatcher{
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Dispatch posts the event to the webhook's URL. When the webhook has a
// secret the payload is signed with HMAC-SHA256.
func (d *HTTPDispatcher) Dispatch(ctx context.Context, webhook *entities.Webhook, event svc.WebhookEvent) error {
	log := logger.Log(ctx).With(
		zap.String("service", "webhooks"),
		zap.String("webhookID", webhook.ID),
		zap.String("event", event.Event),
	)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", errMsgMarshalEvent, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhook.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: %w", errMsgCreateRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerEvent, event.Event)
	if webhook.Secret != "" {
		req.Header.Set(headerSignature, sign(payload, webhook.Secret))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		log.Warn(ctx, errMsgDeliverEvent, zap.Error(err))
		return fmt.Errorf("%s: %w", errMsgDeliverEvent, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		log.Warn(ctx, errMsgBadStatus, zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%s: %d", errMsgBadStatus, resp.StatusCode)
	}

	log.Debug(ctx, "webhook event delivered")
	return nil
}

func sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

var _ svc.WebhookDispatcher = (*HTTPDispatcher)(nil)
