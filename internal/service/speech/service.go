// Package speech implements the sentence catalog and per-user practice
// operations: CRUD, deduplicating CSV import, attempt recording, history,
// and statistics.
package speech

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/englearn/backend/internal/domain"
)

// sentenceRepo defines the sentence repository interface needed by this service.
type sentenceRepo interface {
	List(ctx context.Context, f domain.SentenceFilter, page domain.PageSpec) ([]domain.Sentence, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Sentence, error)
	ExistsByText(ctx context.Context, text string) (bool, error)
	Create(ctx context.Context, s *domain.Sentence) (*domain.Sentence, error)
	Update(ctx context.Context, id uuid.UUID, s *domain.Sentence) (*domain.Sentence, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Categories(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (*domain.SpeechStats, error)
}

// practiceRepo defines the attempt repository interface needed by this service.
type practiceRepo interface {
	Create(ctx context.Context, a *domain.PracticeAttempt) (*domain.PracticeAttempt, error)
	ListHistory(ctx context.Context, userID uuid.UUID, page domain.PageSpec) ([]domain.PracticeHistoryItem, int, error)
	Delete(ctx context.Context, userID, attemptID uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error)
	Stats(ctx context.Context, userID uuid.UUID) (*domain.PracticeStats, error)
}

// txManager defines the transaction manager interface needed by this service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DefaultPageLimit applies when a list request carries no explicit limit.
const DefaultPageLimit = 20

// Service implements speech-practice operations.
type Service struct {
	log       *slog.Logger
	sentences sentenceRepo
	attempts  practiceRepo
	tx        txManager
}

// NewService creates a new speech service instance.
func NewService(logger *slog.Logger, sentences sentenceRepo, attempts practiceRepo, tx txManager) *Service {
	return &Service{
		log:       logger.With("service", "speech"),
		sentences: sentences,
		attempts:  attempts,
		tx:        tx,
	}
}
