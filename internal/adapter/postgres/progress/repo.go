// Package progress implements per-user vocabulary progress persistence:
// favorites, learned words with mastery, and quiz attempts.
package progress

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/englearn/backend/internal/adapter/postgres"
	"github.com/englearn/backend/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// wordColumns are the joined word columns returned by listing queries.
const wordColumns = "w.id, w.headword, w.cefr_level, w.translation, w.topic, w.image_url, w.audio_url, w.created_at"

// Repo provides user progress persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new progress repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Favorites
// ---------------------------------------------------------------------------

// AddFavorite marks a word as favorite. Adding an existing favorite is a
// no-op (ON CONFLICT DO NOTHING); a missing word surfaces as ErrNotFound
// via the FK violation.
func (r *Repo) AddFavorite(ctx context.Context, userID, wordID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Insert("user_favorite_words").
		Columns("user_id", "word_id").
		Values(userID, wordID).
		Suffix("ON CONFLICT (user_id, word_id) DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "favorite", wordID)
	}
	return nil
}

// RemoveFavorite unmarks a favorite. Removing a non-favorite returns ErrNotFound.
func (r *Repo) RemoveFavorite(ctx context.Context, userID, wordID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Delete("user_favorite_words").
		Where(sq.Eq{"user_id": userID, "word_id": wordID}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "favorite", wordID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("favorite %s: %w", wordID, domain.ErrNotFound)
	}
	return nil
}

// IsFavorite reports whether the user has favorited the word.
func (r *Repo) IsFavorite(ctx context.Context, userID, wordID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var fav bool
	if err := pgxscan.Get(ctx, q, &fav,
		"SELECT EXISTS(SELECT 1 FROM user_favorite_words WHERE user_id = $1 AND word_id = $2)",
		userID, wordID); err != nil {
		return false, fmt.Errorf("is favorite: %w", err)
	}
	return fav, nil
}

// ListFavorites returns one page of the user's favorite words, most
// recently favorited first, plus the total favorite count.
func (r *Repo) ListFavorites(ctx context.Context, userID uuid.UUID, page domain.PageSpec) ([]domain.FavoriteWord, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var total int
	if err := pgxscan.Get(ctx, q, &total,
		"SELECT COUNT(*) FROM user_favorite_words WHERE user_id = $1", userID); err != nil {
		return nil, 0, fmt.Errorf("count favorites: %w", err)
	}

	sql := `SELECT ` + wordColumns + `, f.created_at AS favorited_at
		FROM user_favorite_words f
		JOIN words w ON w.id = f.word_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC, w.id
		LIMIT $2 OFFSET $3`

	favorites := []domain.FavoriteWord{}
	if err := pgxscan.Select(ctx, q, &favorites, sql, userID, page.Limit, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, total, nil
}

// ---------------------------------------------------------------------------
// Learned words
// ---------------------------------------------------------------------------

// MarkLearned upserts the learned record for (user, word): a repeat mark
// updates mastery_level and refreshes last_reviewed.
func (r *Repo) MarkLearned(ctx context.Context, userID, wordID uuid.UUID, masteryLevel int) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Insert("user_learned_words").
		Columns("user_id", "word_id", "mastery_level").
		Values(userID, wordID, masteryLevel).
		Suffix(`ON CONFLICT (user_id, word_id)
			DO UPDATE SET mastery_level = EXCLUDED.mastery_level, last_reviewed = now()`).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "learned word", wordID)
	}
	return nil
}

// ListLearned returns one page of the user's learned words, most recently
// reviewed first, plus the total learned count.
func (r *Repo) ListLearned(ctx context.Context, userID uuid.UUID, page domain.PageSpec) ([]domain.LearnedWord, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var total int
	if err := pgxscan.Get(ctx, q, &total,
		"SELECT COUNT(*) FROM user_learned_words WHERE user_id = $1", userID); err != nil {
		return nil, 0, fmt.Errorf("count learned: %w", err)
	}

	sql := `SELECT ` + wordColumns + `, l.mastery_level, l.last_reviewed
		FROM user_learned_words l
		JOIN words w ON w.id = l.word_id
		WHERE l.user_id = $1
		ORDER BY l.last_reviewed DESC, w.id
		LIMIT $2 OFFSET $3`

	learned := []domain.LearnedWord{}
	if err := pgxscan.Select(ctx, q, &learned, sql, userID, page.Limit, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list learned: %w", err)
	}
	return learned, total, nil
}

// GetLearnedState answers "has this user learned this word" with the
// mastery details when they have.
func (r *Repo) GetLearnedState(ctx context.Context, userID, wordID uuid.UUID) (*domain.LearnedState, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row struct {
		MasteryLevel int       `db:"mastery_level"`
		LastReviewed time.Time `db:"last_reviewed"`
	}
	err := pgxscan.Get(ctx, q, &row,
		"SELECT mastery_level, last_reviewed FROM user_learned_words WHERE user_id = $1 AND word_id = $2",
		userID, wordID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return &domain.LearnedState{Learned: false}, nil
		}
		return nil, fmt.Errorf("get learned state: %w", err)
	}

	return &domain.LearnedState{
		Learned:      true,
		MasteryLevel: row.MasteryLevel,
		LastReviewed: &row.LastReviewed,
	}, nil
}

// ---------------------------------------------------------------------------
// Quiz attempts
// ---------------------------------------------------------------------------

// CreateQuizAttempt records a finished quiz and returns the persisted row.
func (r *Repo) CreateQuizAttempt(ctx context.Context, a *domain.QuizAttempt) (*domain.QuizAttempt, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Insert("quiz_attempts").
		Columns("user_id", "topic", "score", "total_questions").
		Values(a.UserID, a.Topic, a.Score, a.TotalQuestions).
		Suffix("RETURNING id, user_id, topic, score, total_questions, created_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var created domain.QuizAttempt
	if err := pgxscan.Get(ctx, q, &created, sql, args...); err != nil {
		return nil, postgres.MapError(err, "quiz attempt", a.UserID)
	}
	return &created, nil
}

// ListQuizAttempts returns one page of the user's quiz attempts, newest
// first, plus the total attempt count.
func (r *Repo) ListQuizAttempts(ctx context.Context, userID uuid.UUID, page domain.PageSpec) ([]domain.QuizAttempt, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var total int
	if err := pgxscan.Get(ctx, q, &total,
		"SELECT COUNT(*) FROM quiz_attempts WHERE user_id = $1", userID); err != nil {
		return nil, 0, fmt.Errorf("count quiz attempts: %w", err)
	}

	sql := `SELECT id, user_id, topic, score, total_questions, created_at
		FROM quiz_attempts
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`

	attempts := []domain.QuizAttempt{}
	if err := pgxscan.Select(ctx, q, &attempts, sql, userID, page.Limit, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list quiz attempts: %w", err)
	}
	return attempts, total, nil
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

// LearningStats aggregates the user's vocabulary progress: learned and
// favorite counts, quiz totals with average score, and a mastery histogram.
func (r *Repo) LearningStats(ctx context.Context, userID uuid.UUID) (*domain.LearningStats, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var stats domain.LearningStats

	totalsSQL := `SELECT
		(SELECT COUNT(*) FROM user_learned_words WHERE user_id = $1) AS learned,
		(SELECT COUNT(*) FROM user_favorite_words WHERE user_id = $1) AS favorites,
		(SELECT COUNT(*) FROM quiz_attempts WHERE user_id = $1) AS quizzes,
		(SELECT COALESCE(ROUND(AVG(score * 100.0 / NULLIF(total_questions, 0))), 0)
			FROM quiz_attempts WHERE user_id = $1) AS avg_score`

	var totals struct {
		Learned   int `db:"learned"`
		Favorites int `db:"favorites"`
		Quizzes   int `db:"quizzes"`
		AvgScore  int `db:"avg_score"`
	}
	if err := pgxscan.Get(ctx, q, &totals, totalsSQL, userID); err != nil {
		return nil, fmt.Errorf("learning stats totals: %w", err)
	}
	stats.LearnedWords = totals.Learned
	stats.FavoriteWords = totals.Favorites
	stats.QuizAttempts = totals.Quizzes
	stats.QuizAvgScore = totals.AvgScore

	stats.MasteryLevels = []domain.MasteryCount{}
	if err := pgxscan.Select(ctx, q, &stats.MasteryLevels,
		`SELECT mastery_level, COUNT(*) AS count
		 FROM user_learned_words
		 WHERE user_id = $1
		 GROUP BY mastery_level
		 ORDER BY mastery_level`, userID); err != nil {
		return nil, fmt.Errorf("mastery histogram: %w", err)
	}

	return &stats, nil
}
