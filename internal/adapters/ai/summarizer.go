// Package ai contains the chat-completions client used for notepad and
// feedback summarization.
package ai

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
	errMsgMarshalRequest  = "failed to marshal summarization request"
	errMsgCreateRequest   = "failed to create summarization request"
	errMsgRequestFailed   = "summarization request failed"
	errMsgReadResponse    = "failed to read summarization response"
	errMsgDecodeResponse  = "failed to decode summarization response"
	errMsgProviderError   = "summarization provider error"
	errMsgEmptyCompletion = "provider returned no completion"
)

// ChatSummarizer talks to an OpenAI-compatible chat-completions API.
type ChatSummarizer struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewChatSummarizer creates a summarizer from the AI configuration.
func NewChatSummarizer(cfg *config.AIConfig) *ChatSummarizer {
	return &ChatSummarizer{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Enabled reports whether a provider key is configured.
func (s *ChatSummarizer) Enabled() bool {
	return s.apiKey != ""
}

// Model returns the configured model name.
func (s *ChatSummarizer) Model() string {
	return s.model
}

// Summarize asks the provider for a summary of at most maxLength words.
func (s *ChatSummarizer) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	log := logger.Log(ctx).With(zap.String("service", "summarizer"), zap.String("model", s.model))

	if !s.Enabled() {
		return "", svc.ErrSummarizerUnavailable
	}

	prompt := fmt.Sprintf("Summarize the following text in at most %d words. Reply with the summary only.\n\n%s", maxLength, text)
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errMsgMarshalRequest, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: %w", errMsgCreateRequest, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		log.Error(ctx, errMsgRequestFailed, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errMsgRequestFailed, svc.ErrSummarizerUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errMsgReadResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		var provErr chatError
		if json.Unmarshal(respBody, &provErr) == nil && provErr.Error.Message != "" {
			log.Error(ctx, errMsgProviderError,
				zap.Int("status", resp.StatusCode),
				zap.String("message", provErr.Error.Message))
		} else {
			log.Error(ctx, errMsgProviderError, zap.Int("status", resp.StatusCode))
		}
		return "", fmt.Errorf("%s (%d): %w", errMsgProviderError, resp.StatusCode, svc.ErrSummarizerUnavailable)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("%s: %w", errMsgDecodeResponse, err)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%s: %w", errMsgEmptyCompletion, svc.ErrSummarizerUnavailable)
	}

	return chatResp.Choices[0].Message.Content, nil
}

var _ svc.Summarizer = (*ChatSummarizer)(nil)
