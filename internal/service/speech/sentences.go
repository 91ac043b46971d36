package speech

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/englearn/backend/internal/domain"
)

// SentenceInput carries the create/update request fields for a sentence.
type SentenceInput struct {
	Text        string
	Translation *string
	Difficulty  string
	Category    string
}

// normalize trims the text and lowercases difficulty and category,
// filling the same defaults the CSV import path uses.
func (in *SentenceInput) normalize() {
	in.Text = strings.TrimSpace(in.Text)
	in.Difficulty = strings.ToLower(strings.TrimSpace(in.Difficulty))
	if in.Difficulty == "" {
		in.Difficulty = domain.DifficultyMedium
	}
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if in.Category == "" {
		in.Category = domain.DefaultCategory
	}
}

// Validate checks the sentence input after normalization.
func (in SentenceInput) Validate() error {
	var v domain.ValidationError
	if in.Text == "" {
		v.Errors = append(v.Errors, domain.FieldError{Field: "sentence", Message: "is required"})
	}
	if !domain.ValidDifficulty(in.Difficulty) {
		v.Errors = append(v.Errors, domain.FieldError{Field: "difficulty", Message: "must be easy, medium, or hard"})
	}
	if len(v.Errors) > 0 {
		return &v
	}
	return nil
}

func (in SentenceInput) toDomain() *domain.Sentence {
	return &domain.Sentence{
		Text:        in.Text,
		Translation: in.Translation,
		Difficulty:  in.Difficulty,
		Category:    in.Category,
	}
}

// SentencesResult is one page of sentences with its pagination envelope.
type SentencesResult struct {
	Sentences  []domain.Sentence `json:"sentences"`
	Pagination domain.Pagination `json:"pagination"`
}

// ListSentences returns one page of the catalog filtered by optional
// difficulty and category.
func (s *Service) ListSentences(ctx context.Context, f domain.SentenceFilter, page domain.PageSpec) (*SentencesResult, error) {
	page = page.Normalize(DefaultPageLimit)

	sentences, total, err := s.sentences.List(ctx, f, page)
	if err != nil {
		return nil, fmt.Errorf("speech.ListSentences: %w", err)
	}

	return &SentencesResult{
		Sentences:  sentences,
		Pagination: domain.NewPagination(page, total),
	}, nil
}

// GetSentence returns one sentence by id.
func (s *Service) GetSentence(ctx context.Context, id uuid.UUID) (*domain.Sentence, error) {
	sent, err := s.sentences.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("speech.GetSentence: %w", err)
	}
	return sent, nil
}

// CreateSentence inserts a single sentence. A duplicate text surfaces as
// ErrAlreadyExists.
func (s *Service) CreateSentence(ctx context.Context, input SentenceInput) (*domain.Sentence, error) {
	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.sentences.Create(ctx, input.toDomain())
	if err != nil {
		return nil, fmt.Errorf("speech.CreateSentence: %w", err)
	}

	s.log.InfoContext(ctx, "sentence created",
		slog.String("sentence_id", created.ID.String()))

	return created, nil
}

// UpdateSentence replaces a sentence's fields.
func (s *Service) UpdateSentence(ctx context.Context, id uuid.UUID, input SentenceInput) (*domain.Sentence, error) {
	input.normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.sentences.Update(ctx, id, input.toDomain())
	if err != nil {
		return nil, fmt.Errorf("speech.UpdateSentence: %w", err)
	}
	return updated, nil
}

// DeleteSentence removes one sentence; its practice attempts cascade away.
func (s *Service) DeleteSentence(ctx context.Context, id uuid.UUID) error {
	if err := s.sentences.Delete(ctx, id); err != nil {
		return fmt.Errorf("speech.DeleteSentence: %w", err)
	}

	s.log.InfoContext(ctx, "sentence deleted", slog.String("sentence_id", id.String()))
	return nil
}

// Categories returns the distinct sentence categories.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.sentences.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("speech.Categories: %w", err)
	}
	return categories, nil
}

// CatalogStats returns catalog-wide sentence counts for the admin view.
func (s *Service) CatalogStats(ctx context.Context) (*domain.SpeechStats, error) {
	stats, err := s.sentences.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("speech.CatalogStats: %w", err)
	}
	return stats, nil
}
