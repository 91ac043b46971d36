// Package vocabulary implements the vocabulary catalog operations:
// listing, CRUD, statistics, and deduplicating CSV import.
package vocabulary

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/englearn/backend/internal/domain"
)

// wordRepo defines the word repository interface needed by this service.
type wordRepo interface {
	List(ctx context.Context, f domain.WordFilter, page domain.PageSpec) ([]domain.Word, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	ExistsByHeadword(ctx context.Context, headword string) (bool, error)
	Create(ctx context.Context, w *domain.Word) (*domain.Word, error)
	Update(ctx context.Context, id uuid.UUID, w *domain.Word) (*domain.Word, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int, error)
	StatsByLevel(ctx context.Context) ([]domain.LevelCount, error)
	StatsByTopic(ctx context.Context) ([]domain.TopicCount, error)
}

// txManager defines the transaction manager interface needed by this service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DefaultPageLimit applies when a list request carries no explicit limit.
// The catalog browser pulls 50 words per screen, so the default matches.
const DefaultPageLimit = 50

// Service implements vocabulary operations.
type Service struct {
	log   *slog.Logger
	words wordRepo
	tx    txManager
}

// NewService creates a new vocabulary service instance.
func NewService(logger *slog.Logger, words wordRepo, tx txManager) *Service {
	return &Service{
		log:   logger.With("service", "vocabulary"),
		words: words,
		tx:    tx,
	}
}
