package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/englearn/backend/internal/domain"
)

const maxMessageLen = 4000

// mockResponse stands in for the upstream when no API key is configured,
// so local development works without an account.
const mockResponse = "This is a mock tutor response. Configure a chat API key " +
	"to talk to a real model. Meanwhile: your sentence looks good, try " +
	"rephrasing it more formally for a workplace setting."

// SendInput carries one chat request. An empty Model falls back to the
// configured default.
type SendInput struct {
	Message string
	Model   string
}

// Validate checks the chat input after trimming.
func (in SendInput) Validate() error {
	if in.Message == "" {
		return domain.NewValidationError("message", "is required")
	}
	if len(in.Message) > maxMessageLen {
		return domain.NewValidationError("message", "is too long")
	}
	return nil
}

// Send completes the user's message against the upstream model and persists
// the exchange. Upstream failures propagate with their original status code
// and nothing is stored; without an API key a mock reply is stored instead.
func (s *Service) Send(ctx context.Context, userID uuid.UUID, input SendInput) (*domain.ChatMessage, error) {
	input.Message = strings.TrimSpace(input.Message)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	model := input.Model
	if model == "" {
		model = s.cfg.DefaultModel
	}

	var reply string
	if s.cfg.APIKey == "" {
		s.log.DebugContext(ctx, "no api key configured, returning mock response")
		reply = mockResponse
	} else {
		var err error
		reply, err = s.upstream.Complete(ctx, model, systemPrompt, input.Message)
		if err != nil {
			return nil, fmt.Errorf("chat.Send: %w", err)
		}
	}

	stored, err := s.history.Create(ctx, &domain.ChatMessage{
		UserID:   userID,
		Message:  input.Message,
		Response: reply,
		ModelID:  model,
	})
	if err != nil {
		return nil, fmt.Errorf("chat.Send store exchange: %w", err)
	}

	s.log.InfoContext(ctx, "chat exchange stored",
		slog.String("user_id", userID.String()),
		slog.String("model", model))

	return stored, nil
}
