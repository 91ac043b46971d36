// Package practice implements speech-practice attempt persistence.
package practice

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/englearn/backend/internal/adapter/postgres"
	"github.com/englearn/backend/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "practice_attempts"

// Repo provides practice-attempt persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new practice repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create records one practice attempt and returns the persisted row.
// A missing sentence surfaces as ErrNotFound via the FK violation.
func (r *Repo) Create(ctx context.Context, a *domain.PracticeAttempt) (*domain.PracticeAttempt, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Insert(table).
		Columns("user_id", "sentence_id", "accuracy", "audio_url").
		Values(a.UserID, a.SentenceID, a.Accuracy, a.AudioURL).
		Suffix("RETURNING id, user_id, sentence_id, accuracy, audio_url, practiced_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var created domain.PracticeAttempt
	if err := pgxscan.Get(ctx, q, &created, sql, args...); err != nil {
		return nil, postgres.MapError(err, "practice attempt", a.SentenceID)
	}
	return &created, nil
}

// ListHistory returns one page of the user's practice attempts joined with
// their sentences, newest first, plus the total attempt count.
func (r *Repo) ListHistory(ctx context.Context, userID uuid.UUID, page domain.PageSpec) ([]domain.PracticeHistoryItem, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var total int
	if err := pgxscan.Get(ctx, q, &total,
		"SELECT COUNT(*) FROM practice_attempts WHERE user_id = $1", userID); err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}

	sql := `SELECT p.id, p.user_id, p.sentence_id, p.accuracy, p.audio_url, p.practiced_at,
			s.text AS sentence, s.translation, s.difficulty, s.category
		FROM practice_attempts p
		JOIN sentences s ON s.id = p.sentence_id
		WHERE p.user_id = $1
		ORDER BY p.practiced_at DESC, p.id
		LIMIT $2 OFFSET $3`

	history := []domain.PracticeHistoryItem{}
	if err := pgxscan.Select(ctx, q, &history, sql, userID, page.Limit, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list history: %w", err)
	}
	return history, total, nil
}

// Delete removes one attempt, but only when it belongs to the user.
// A foreign attempt looks identical to a missing one: ErrNotFound.
func (r *Repo) Delete(ctx context.Context, userID, attemptID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Delete(table).
		Where(sq.Eq{"id": attemptID, "user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "practice attempt", attemptID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("practice attempt %s: %w", attemptID, domain.ErrNotFound)
	}
	return nil
}

// DeleteAll removes the user's whole practice history and returns the
// number of removed attempts.
func (r *Repo) DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Delete(table).Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete history: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Stats aggregates the user's practice history: totals, average accuracy,
// per-difficulty and per-category breakdowns, and a 7-day accuracy series.
func (r *Repo) Stats(ctx context.Context, userID uuid.UUID) (*domain.PracticeStats, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var stats domain.PracticeStats

	var totals struct {
		Total       int     `db:"total"`
		AvgAccuracy float64 `db:"avg_accuracy"`
	}
	if err := pgxscan.Get(ctx, q, &totals,
		`SELECT COUNT(*) AS total, COALESCE(AVG(accuracy), 0) AS avg_accuracy
		 FROM practice_attempts WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("practice totals: %w", err)
	}
	stats.TotalPractices = totals.Total
	stats.AvgAccuracy = totals.AvgAccuracy

	stats.ByDifficulty = []domain.DifficultyCount{}
	if err := pgxscan.Select(ctx, q, &stats.ByDifficulty,
		`SELECT s.difficulty, COUNT(*) AS count
		 FROM practice_attempts p
		 JOIN sentences s ON s.id = p.sentence_id
		 WHERE p.user_id = $1
		 GROUP BY s.difficulty
		 ORDER BY CASE s.difficulty WHEN 'easy' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END`,
		userID); err != nil {
		return nil, fmt.Errorf("practice stats by difficulty: %w", err)
	}

	stats.ByCategory = []domain.CategoryCount{}
	if err := pgxscan.Select(ctx, q, &stats.ByCategory,
		`SELECT s.category, COUNT(*) AS count
		 FROM practice_attempts p
		 JOIN sentences s ON s.id = p.sentence_id
		 WHERE p.user_id = $1
		 GROUP BY s.category
		 ORDER BY count DESC, s.category`,
		userID); err != nil {
		return nil, fmt.Errorf("practice stats by category: %w", err)
	}

	stats.RecentProgress = []domain.DailyAccuracy{}
	if err := pgxscan.Select(ctx, q, &stats.RecentProgress,
		`SELECT date_trunc('day', practiced_at) AS practice_date,
			AVG(accuracy) AS avg_accuracy,
			COUNT(*) AS count
		 FROM practice_attempts
		 WHERE user_id = $1 AND practiced_at >= now() - INTERVAL '7 days'
		 GROUP BY practice_date
		 ORDER BY practice_date`,
		userID); err != nil {
		return nil, fmt.Errorf("practice recent progress: %w", err)
	}

	return &stats, nil
}
