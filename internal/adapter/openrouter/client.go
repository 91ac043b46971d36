// Package openrouter implements the chat-completion upstream client
// speaking the OpenAI completions format.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/englearn/backend/internal/config"
	"github.com/englearn/backend/internal/domain"
)

// Client calls the chat-completions endpoint. Upstream failures are
// surfaced immediately with their original status code; there are no
// retries.
type Client struct {
	cfg        config.ChatConfig
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a completions client from ChatConfig.
func NewClient(cfg config.ChatConfig, logger *slog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "openrouter"),
	}
}

// Complete sends a system prompt plus one user message and returns the
// assistant's reply text. Non-2xx responses become domain.UpstreamError
// carrying the upstream status code, so 402 payment-required and friends
// reach the HTTP layer unchanged.
func (c *Client) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openrouter: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openrouter: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("HTTP-Referer", c.cfg.Referer)
	req.Header.Set("X-Title", c.cfg.Title)

	c.log.DebugContext(ctx, "completions request", slog.String("model", model))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openrouter: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openrouter: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := upstreamMessage(raw)
		c.log.WarnContext(ctx, "completions upstream error",
			slog.Int("status", resp.StatusCode),
			slog.String("message", msg),
		)
		return "", &domain.UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("openrouter: decode json: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openrouter: empty choices in response")
	}

	return parsed.Choices[0].Message.Content, nil
}

// upstreamMessage extracts the error message from an upstream error body,
// falling back to the raw body when it is not the expected envelope.
func upstreamMessage(raw []byte) string {
	var e apiError
	if err := json.Unmarshal(raw, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	if len(raw) > 0 {
		return string(raw)
	}
	return "upstream error"
}
