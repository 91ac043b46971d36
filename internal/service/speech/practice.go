package speech

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/englearn/backend/internal/domain"
)

// PracticeInput carries one recorded attempt. AudioURL points at an
// already stored upload, if the request carried one.
type PracticeInput struct {
	SentenceID uuid.UUID
	Accuracy   float64
	AudioURL   *string
}

// Validate checks the attempt input. Accuracy is a percentage.
func (in PracticeInput) Validate() error {
	var v domain.ValidationError
	if in.SentenceID == uuid.Nil {
		v.Errors = append(v.Errors, domain.FieldError{Field: "sentence_id", Message: "is required"})
	}
	if in.Accuracy < 0 || in.Accuracy > 100 {
		v.Errors = append(v.Errors, domain.FieldError{Field: "accuracy", Message: "must be between 0 and 100"})
	}
	if len(v.Errors) > 0 {
		return &v
	}
	return nil
}

// RecordPractice stores one attempt. An unknown sentence surfaces as
// ErrNotFound through the foreign key.
func (s *Service) RecordPractice(ctx context.Context, userID uuid.UUID, input PracticeInput) (*domain.PracticeAttempt, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.attempts.Create(ctx, &domain.PracticeAttempt{
		UserID:     userID,
		SentenceID: input.SentenceID,
		Accuracy:   input.Accuracy,
		AudioURL:   input.AudioURL,
	})
	if err != nil {
		return nil, fmt.Errorf("speech.RecordPractice: %w", err)
	}

	s.log.InfoContext(ctx, "practice recorded",
		slog.String("user_id", userID.String()),
		slog.String("sentence_id", input.SentenceID.String()))

	return created, nil
}

// HistoryResult is one page of a user's practice history.
type HistoryResult struct {
	History    []domain.PracticeHistoryItem `json:"history"`
	Pagination domain.Pagination            `json:"pagination"`
}

// History returns one page of the user's attempts, newest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID, page domain.PageSpec) (*HistoryResult, error) {
	page = page.Normalize(DefaultPageLimit)

	items, total, err := s.attempts.ListHistory(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("speech.History: %w", err)
	}

	return &HistoryResult{
		History:    items,
		Pagination: domain.NewPagination(page, total),
	}, nil
}

// DeleteAttempt removes one of the user's attempts. Attempts belonging to
// other users are indistinguishable from missing ones.
func (s *Service) DeleteAttempt(ctx context.Context, userID, attemptID uuid.UUID) error {
	if err := s.attempts.Delete(ctx, userID, attemptID); err != nil {
		return fmt.Errorf("speech.DeleteAttempt: %w", err)
	}
	return nil
}

// DeleteHistory removes the user's whole practice history.
func (s *Service) DeleteHistory(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.attempts.DeleteAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("speech.DeleteHistory: %w", err)
	}

	s.log.InfoContext(ctx, "practice history cleared",
		slog.String("user_id", userID.String()),
		slog.Int64("removed", n))

	return n, nil
}

// UserStats aggregates the user's practice history.
func (s *Service) UserStats(ctx context.Context, userID uuid.UUID) (*domain.PracticeStats, error) {
	stats, err := s.attempts.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("speech.UserStats: %w", err)
	}
	return stats, nil
}
