// Package chat implements the tutoring chat: messages are completed by an
// upstream model and every exchange is persisted per user.
package chat

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/englearn/backend/internal/config"
	"github.com/englearn/backend/internal/domain"
)

// chatRepo defines the history repository interface needed by this service.
type chatRepo interface {
	Create(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ChatMessage, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page domain.PageSpec) ([]domain.ChatMessage, int, error)
	Delete(ctx context.Context, userID, messageID uuid.UUID) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// completer is the upstream chat-completion client.
type completer interface {
	Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error)
}

// DefaultPageLimit applies when a history request carries no explicit limit.
const DefaultPageLimit = 20

// systemPrompt pins every conversation to the tutoring persona.
const systemPrompt = "You are a helpful English tutor for business English learners. " +
	"Help the user practice professional English: correct their mistakes briefly, " +
	"suggest more natural phrasing, and keep the conversation going with " +
	"workplace-relevant questions. Keep replies short and encouraging."

// Service implements chat operations.
type Service struct {
	log      *slog.Logger
	history  chatRepo
	upstream completer
	cfg      config.ChatConfig
}

// NewService creates a new chat service instance.
func NewService(logger *slog.Logger, history chatRepo, upstream completer, cfg config.ChatConfig) *Service {
	return &Service{
		log:      logger.With("service", "chat"),
		history:  history,
		upstream: upstream,
		cfg:      cfg,
	}
}
