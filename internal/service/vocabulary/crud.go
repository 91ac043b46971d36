package vocabulary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/englearn/backend/internal/domain"
)

// ListResult is one page of words with its pagination envelope.
type ListResult struct {
	Words      []domain.Word     `json:"words"`
	Pagination domain.Pagination `json:"pagination"`
}

// List returns one page of the catalog filtered by optional CEFR level
// and topic.
func (s *Service) List(ctx context.Context, f domain.WordFilter, page domain.PageSpec) (*ListResult, error) {
	page = page.Normalize(DefaultPageLimit)

	words, total, err := s.words.List(ctx, f, page)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.List: %w", err)
	}

	return &ListResult{
		Words:      words,
		Pagination: domain.NewPagination(page, total),
	}, nil
}

// Get returns one word by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	w, err := s.words.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.Get: %w", err)
	}
	return w, nil
}

// Create inserts a single word. A duplicate headword surfaces as
// ErrAlreadyExists; unlike bulk import, single insert does not skip.
func (s *Service) Create(ctx context.Context, input WordInput) (*domain.Word, error) {
	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	w, err := s.words.Create(ctx, input.toDomain())
	if err != nil {
		return nil, fmt.Errorf("vocabulary.Create: %w", err)
	}

	s.log.InfoContext(ctx, "word created",
		slog.String("word_id", w.ID.String()),
		slog.String("headword", w.Headword))

	return w, nil
}

// Update replaces a word's fields.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input WordInput) (*domain.Word, error) {
	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	w, err := s.words.Update(ctx, id, input.toDomain())
	if err != nil {
		return nil, fmt.Errorf("vocabulary.Update: %w", err)
	}
	return w, nil
}

// Delete removes one word by id.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.words.Delete(ctx, id); err != nil {
		return fmt.Errorf("vocabulary.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "word deleted", slog.String("word_id", id.String()))
	return nil
}

// DeleteAll empties the catalog and returns the removed count.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.words.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("vocabulary.DeleteAll: %w", err)
	}

	s.log.InfoContext(ctx, "vocabulary cleared", slog.Int64("removed", n))
	return n, nil
}

// Stats returns catalog-wide counts grouped by CEFR level (in rank order)
// and by topic.
func (s *Service) Stats(ctx context.Context) (*domain.VocabularyStats, error) {
	byLevel, err := s.words.StatsByLevel(ctx)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.Stats: %w", err)
	}
	byTopic, err := s.words.StatsByTopic(ctx)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.Stats: %w", err)
	}
	total, err := s.words.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.Stats: %w", err)
	}

	return &domain.VocabularyStats{
		ByLevel: byLevel,
		ByTopic: byTopic,
		Total:   total,
	}, nil
}
