// Package progress implements per-user vocabulary progress operations:
// favorites, learned words with mastery, quiz attempts, and stats.
package progress

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/englearn/backend/internal/domain"
)

// progressRepo defines the progress repository interface needed by this service.
type progressRepo interface {
	AddFavorite(ctx context.Context, userID, wordID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, wordID uuid.UUID) error
	IsFavorite(ctx context.Context, userID, wordID uuid.UUID) (bool, error)
	ListFavorites(ctx context.Context, userID uuid.UUID, page domain.PageSpec) ([]domain.FavoriteWord, int, error)
	MarkLearned(ctx context.Context, userID, wordID uuid.UUID, masteryLevel int) error
	ListLearned(ctx context.Context, userID uuid.UUID, page domain.PageSpec) ([]domain.LearnedWord, int, error)
	GetLearnedState(ctx context.Context, userID, wordID uuid.UUID) (*domain.LearnedState, error)
	CreateQuizAttempt(ctx context.Context, a *domain.QuizAttempt) (*domain.QuizAttempt, error)
	ListQuizAttempts(ctx context.Context, userID uuid.UUID, page domain.PageSpec) ([]domain.QuizAttempt, int, error)
	LearningStats(ctx context.Context, userID uuid.UUID) (*domain.LearningStats, error)
}

// DefaultPageLimit applies when a list request carries no explicit limit.
const DefaultPageLimit = 20

// Mastery levels are a small closed scale.
const (
	MinMasteryLevel = 0
	MaxMasteryLevel = 5
)

// Service implements user progress operations.
type Service struct {
	log  *slog.Logger
	repo progressRepo
}

// NewService creates a new progress service instance.
func NewService(logger *slog.Logger, repo progressRepo) *Service {
	return &Service{
		log:  logger.With("service", "progress"),
		repo: repo,
	}
}

// AddFavorite marks a word as favorite. Already-favorited words are a
// no-op; an unknown word surfaces as ErrNotFound.
func (s *Service) AddFavorite(ctx context.Context, userID, wordID uuid.UUID) error {
	if err := s.repo.AddFavorite(ctx, userID, wordID); err != nil {
		return fmt.Errorf("progress.AddFavorite: %w", err)
	}
	return nil
}

// RemoveFavorite unmarks a favorite.
func (s *Service) RemoveFavorite(ctx context.Context, userID, wordID uuid.UUID) error {
	if err := s.repo.RemoveFavorite(ctx, userID, wordID); err != nil {
		return fmt.Errorf("progress.RemoveFavorite: %w", err)
	}
	return nil
}

// IsFavorite reports whether the user has favorited the word.
func (s *Service) IsFavorite(ctx context.Context, userID, wordID uuid.UUID) (bool, error) {
	fav, err := s.repo.IsFavorite(ctx, userID, wordID)
	if err != nil {
		return false, fmt.Errorf("progress.IsFavorite: %w", err)
	}
	return fav, nil
}

// FavoritesResult is one page of a user's favorite words.
type FavoritesResult struct {
	Favorites  []domain.FavoriteWord `json:"favorites"`
	Pagination domain.Pagination     `json:"pagination"`
}

// Favorites returns one page of the user's favorites, newest first.
func (s *Service) Favorites(ctx context.Context, userID uuid.UUID, page domain.PageSpec) (*FavoritesResult, error) {
	page = page.Normalize(DefaultPageLimit)

	favorites, total, err := s.repo.ListFavorites(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("progress.Favorites: %w", err)
	}

	return &FavoritesResult{
		Favorites:  favorites,
		Pagination: domain.NewPagination(page, total),
	}, nil
}

// MarkLearned upserts the learned record for the word. Marking again
// updates the mastery level and refreshes the review time.
func (s *Service) MarkLearned(ctx context.Context, userID, wordID uuid.UUID, masteryLevel int) error {
	if masteryLevel < MinMasteryLevel || masteryLevel > MaxMasteryLevel {
		return domain.NewValidationError("mastery_level",
			fmt.Sprintf("must be between %d and %d", MinMasteryLevel, MaxMasteryLevel))
	}

	if err := s.repo.MarkLearned(ctx, userID, wordID, masteryLevel); err != nil {
		return fmt.Errorf("progress.MarkLearned: %w", err)
	}

	s.log.DebugContext(ctx, "word marked learned",
		slog.String("user_id", userID.String()),
		slog.String("word_id", wordID.String()),
		slog.Int("mastery_level", masteryLevel))

	return nil
}

// LearnedResult is one page of a user's learned words.
type LearnedResult struct {
	Learned    []domain.LearnedWord `json:"learned"`
	Pagination domain.Pagination    `json:"pagination"`
}

// Learned returns one page of the user's learned words, most recently
// reviewed first.
func (s *Service) Learned(ctx context.Context, userID uuid.UUID, page domain.PageSpec) (*LearnedResult, error) {
	page = page.Normalize(DefaultPageLimit)

	learned, total, err := s.repo.ListLearned(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("progress.Learned: %w", err)
	}

	return &LearnedResult{
		Learned:    learned,
		Pagination: domain.NewPagination(page, total),
	}, nil
}

// LearnedState answers "has this user learned this word". A word never
// marked comes back with Learned false, not an error.
func (s *Service) LearnedState(ctx context.Context, userID, wordID uuid.UUID) (*domain.LearnedState, error) {
	state, err := s.repo.GetLearnedState(ctx, userID, wordID)
	if err != nil {
		return nil, fmt.Errorf("progress.LearnedState: %w", err)
	}
	return state, nil
}

// QuizInput carries one finished quiz.
type QuizInput struct {
	Topic          *string
	Score          int
	TotalQuestions int
}

// Validate checks the quiz input. Score can never exceed the question count.
func (in QuizInput) Validate() error {
	var v domain.ValidationError
	if in.TotalQuestions < 1 {
		v.Errors = append(v.Errors, domain.FieldError{Field: "total_questions", Message: "must be positive"})
	}
	if in.Score < 0 || (in.TotalQuestions >= 1 && in.Score > in.TotalQuestions) {
		v.Errors = append(v.Errors, domain.FieldError{Field: "score", Message: "must be between 0 and total_questions"})
	}
	if len(v.Errors) > 0 {
		return &v
	}
	return nil
}

// RecordQuiz stores one finished quiz attempt.
func (s *Service) RecordQuiz(ctx context.Context, userID uuid.UUID, input QuizInput) (*domain.QuizAttempt, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateQuizAttempt(ctx, &domain.QuizAttempt{
		UserID:         userID,
		Topic:          input.Topic,
		Score:          input.Score,
		TotalQuestions: input.TotalQuestions,
	})
	if err != nil {
		return nil, fmt.Errorf("progress.RecordQuiz: %w", err)
	}

	s.log.InfoContext(ctx, "quiz recorded",
		slog.String("user_id", userID.String()),
		slog.Int("score", input.Score),
		slog.Int("total", input.TotalQuestions))

	return created, nil
}

// QuizAttemptsResult is one page of a user's quiz attempts.
type QuizAttemptsResult struct {
	Attempts   []domain.QuizAttempt `json:"attempts"`
	Pagination domain.Pagination    `json:"pagination"`
}

// QuizAttempts returns one page of the user's quiz attempts, newest first.
func (s *Service) QuizAttempts(ctx context.Context, userID uuid.UUID, page domain.PageSpec) (*QuizAttemptsResult, error) {
	page = page.Normalize(DefaultPageLimit)

	attempts, total, err := s.repo.ListQuizAttempts(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("progress.QuizAttempts: %w", err)
	}

	return &QuizAttemptsResult{
		Attempts:   attempts,
		Pagination: domain.NewPagination(page, total),
	}, nil
}

// Stats summarizes the user's vocabulary progress.
func (s *Service) Stats(ctx context.Context, userID uuid.UUID) (*domain.LearningStats, error) {
	stats, err := s.repo.LearningStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("progress.Stats: %w", err)
	}
	return stats, nil
}
