// Package push delivers notifications to mobile devices through the
// Expo push gateway.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"pastebridge/internal/config"
	svc "pastebridge/internal/ports/services"
	"pastebridge/pkg/logger"
)

const (
	errMsgMarshalMessages = "failed to marshal push messages"
	errMsgCreateRequest   = "failed to create push request"
	errMsgRequestFailed   = "push request failed"
	errMsgGatewayError    = "push gateway error"
)

// ExpoSender sends notifications through the Expo push API.
type ExpoSender struct {
	endpoint string
	client   *http.Client
}

type expoMessage struct {
	To    string `json:"to"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound"`
}

// NewExpoSender creates a push sender from the push configuration.
func NewExpoSender(cfg *config.PushConfig) *ExpoSender {
	return &ExpoSender{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// Send posts one message per token to the gateway. Tokens that do not
// look like Expo tokens are skipped.
func (s *ExpoSender) Send(ctx context.Context, tokens []string, title, body string) error {
	log := logger.Log(ctx).With(zap.String("service", "push"), zap.Int("tokens", len(tokens)))

	messages := make([]expoMessage, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		messages = append(messages, expoMessage{
			To:    token,
			Title: title,
			Body:  body,
			Sound: "default",
		})
	}
	if len(messages) == 0 {
		return nil
	}

	payload, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("%s: %w", errMsgMarshalMessages, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: %w", errMsgCreateRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error(ctx, errMsgRequestFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", errMsgRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Error(ctx, errMsgGatewayError, zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%s: status %d", errMsgGatewayError, resp.StatusCode)
	}

	log.Debug(ctx, "push notifications sent")
	return nil
}

var _ svc.PushSender = (*ExpoSender)(nil)
