package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/englearn/backend/internal/domain"
)

// HistoryResult is one page of a user's chat history.
type HistoryResult struct {
	Messages   []domain.ChatMessage `json:"messages"`
	Pagination domain.Pagination    `json:"pagination"`
}

// History returns one page of the user's exchanges, newest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID, page domain.PageSpec) (*HistoryResult, error) {
	page = page.Normalize(DefaultPageLimit)

	messages, total, err := s.history.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("chat.History: %w", err)
	}

	return &HistoryResult{
		Messages:   messages,
		Pagination: domain.NewPagination(page, total),
	}, nil
}

// Get returns one exchange. An exchange owned by another user comes back
// as ErrForbidden, not ErrNotFound: the row exists, the caller may not
// read it.
func (s *Service) Get(ctx context.Context, userID, messageID uuid.UUID) (*domain.ChatMessage, error) {
	m, err := s.history.GetByID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("chat.Get: %w", err)
	}
	if m.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return m, nil
}

// Delete removes one of the user's exchanges. Exchanges belonging to other
// users are indistinguishable from missing ones.
func (s *Service) Delete(ctx context.Context, userID, messageID uuid.UUID) error {
	if err := s.history.Delete(ctx, userID, messageID); err != nil {
		return fmt.Errorf("chat.Delete: %w", err)
	}
	return nil
}

// DeleteAll clears the user's whole chat history.
func (s *Service) DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.history.DeleteAllByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("chat.DeleteAll: %w", err)
	}

	s.log.InfoContext(ctx, "chat history cleared",
		slog.String("user_id", userID.String()),
		slog.Int64("removed", n))

	return n, nil
}
