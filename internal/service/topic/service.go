// Package topic implements topic catalog operations, including stored
// image cleanup on delete.
package topic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/englearn/backend/internal/domain"
)

// topicRepo defines the topic repository interface needed by this service.
type topicRepo interface {
	List(ctx context.Context) ([]domain.Topic, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error)
	Create(ctx context.Context, t *domain.Topic) (*domain.Topic, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// wordLister is the slice of the word repository used for topic browsing.
type wordLister interface {
	List(ctx context.Context, f domain.WordFilter, page domain.PageSpec) ([]domain.Word, int, error)
}

// fileStore removes stored files by relative URL.
type fileStore interface {
	Remove(relURL string) error
}

// DefaultPageLimit applies when a words-by-topic request has no limit.
const DefaultPageLimit = 20

// Service implements topic operations.
type Service struct {
	log    *slog.Logger
	topics topicRepo
	words  wordLister
	files  fileStore
}

// NewService creates a new topic service instance.
func NewService(logger *slog.Logger, topics topicRepo, words wordLister, files fileStore) *Service {
	return &Service{
		log:    logger.With("service", "topic"),
		topics: topics,
		words:  words,
		files:  files,
	}
}

// Input carries the create request fields. ImageURL points at an already
// stored upload, if the request carried one.
type Input struct {
	Name        string
	Description *string
	ImageURL    *string
}

// Validate checks the topic input.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.NewValidationError("name", "is required")
	}
	return nil
}

// List returns all topics ordered by name.
func (s *Service) List(ctx context.Context) ([]domain.Topic, error) {
	topics, err := s.topics.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("topic.List: %w", err)
	}
	return topics, nil
}

// Create inserts a new topic. A duplicate name surfaces as ErrAlreadyExists;
// in that case the stored image, if any, is removed so it does not leak.
func (s *Service) Create(ctx context.Context, input Input) (*domain.Topic, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.topics.Create(ctx, &domain.Topic{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		ImageURL:    input.ImageURL,
	})
	if err != nil {
		if input.ImageURL != nil {
			if rmErr := s.files.Remove(*input.ImageURL); rmErr != nil {
				s.log.WarnContext(ctx, "orphaned topic image not removed",
					slog.String("image_url", *input.ImageURL),
					slog.Any("error", rmErr))
			}
		}
		return nil, fmt.Errorf("topic.Create: %w", err)
	}

	s.log.InfoContext(ctx, "topic created",
		slog.String("topic_id", created.ID.String()),
		slog.String("name", created.Name))

	return created, nil
}

// Delete removes a topic and its stored image. Words keep their
// denormalized topic name, so none are touched.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	t, err := s.topics.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("topic.Delete: %w", err)
	}

	if err := s.topics.Delete(ctx, id); err != nil {
		return fmt.Errorf("topic.Delete: %w", err)
	}

	if t.ImageURL != nil {
		if err := s.files.Remove(*t.ImageURL); err != nil {
			s.log.WarnContext(ctx, "topic image not removed",
				slog.String("image_url", *t.ImageURL),
				slog.Any("error", err))
		}
	}

	s.log.InfoContext(ctx, "topic deleted", slog.String("topic_id", id.String()))
	return nil
}

// WordsResult is one page of words belonging to a topic.
type WordsResult struct {
	Words      []domain.Word     `json:"words"`
	Pagination domain.Pagination `json:"pagination"`
}

// Words returns one page of the words carrying the given topic name.
func (s *Service) Words(ctx context.Context, name string, page domain.PageSpec) (*WordsResult, error) {
	page = page.Normalize(DefaultPageLimit)

	words, total, err := s.words.List(ctx, domain.WordFilter{Topic: &name}, page)
	if err != nil {
		return nil, fmt.Errorf("topic.Words: %w", err)
	}

	return &WordsResult{
		Words:      words,
		Pagination: domain.NewPagination(page, total),
	}, nil
}
