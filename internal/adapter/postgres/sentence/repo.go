// Package sentence implements the speech-practice sentence catalog
// repository using PostgreSQL.
package sentence

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/englearn/backend/internal/adapter/postgres"
	"github.com/englearn/backend/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const table = "sentences"

var columns = []string{"id", "text", "translation", "difficulty", "category", "created_at"}

// Repo provides sentence persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new sentence repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// predicates converts a SentenceFilter into squirrel conjuncts shared by
// the count and data queries.
func predicates(f domain.SentenceFilter) []sq.Sqlizer {
	var preds []sq.Sqlizer
	if f.Difficulty != nil {
		preds = append(preds, sq.Eq{"difficulty": *f.Difficulty})
	}
	if f.Category != nil {
		preds = append(preds, sq.Eq{"category": *f.Category})
	}
	return preds
}

func applyPredicates(b sq.SelectBuilder, preds []sq.Sqlizer) sq.SelectBuilder {
	for _, p := range preds {
		b = b.Where(p)
	}
	return b
}

// List returns one page of sentences matching the filter plus the total
// count over the same predicate. Sentences are ordered by insertion time.
func (r *Repo) List(ctx context.Context, f domain.SentenceFilter, page domain.PageSpec) ([]domain.Sentence, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	preds := predicates(f)

	countSQL, countArgs, err := applyPredicates(
		builder.Select("COUNT(*)").From(table), preds).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := pgxscan.Get(ctx, q, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count sentences: %w", err)
	}

	dataSQL, dataArgs, err := applyPredicates(
		builder.Select(columns...).From(table), preds).
		OrderBy("created_at", "id").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	sentences := []domain.Sentence{}
	if err := pgxscan.Select(ctx, q, &sentences, dataSQL, dataArgs...); err != nil {
		return nil, 0, fmt.Errorf("list sentences: %w", err)
	}
	return sentences, total, nil
}

// GetByID returns a sentence by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sentence, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Select(columns...).From(table).
		Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s domain.Sentence
	if err := pgxscan.Get(ctx, q, &s, sql, args...); err != nil {
		return nil, postgres.MapError(err, "sentence", id)
	}
	return &s, nil
}

// ExistsByText reports whether a sentence with exactly this text exists.
// Comparison is verbatim: case and punctuation are significant.
func (r *Repo) ExistsByText(ctx context.Context, text string) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var exists bool
	if err := pgxscan.Get(ctx, q, &exists,
		"SELECT EXISTS(SELECT 1 FROM sentences WHERE text = $1)", text); err != nil {
		return false, fmt.Errorf("exists by text: %w", err)
	}
	return exists, nil
}

// Create inserts a new sentence and returns the persisted domain.Sentence.
func (r *Repo) Create(ctx context.Context, s *domain.Sentence) (*domain.Sentence, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Insert(table).
		Columns("text", "translation", "difficulty", "category").
		Values(s.Text, s.Translation, s.Difficulty, s.Category).
		Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var created domain.Sentence
	if err := pgxscan.Get(ctx, q, &created, sql, args...); err != nil {
		return nil, postgres.MapError(err, "sentence", s.Text)
	}
	return &created, nil
}

// Update replaces the mutable fields of a sentence and returns the updated row.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, s *domain.Sentence) (*domain.Sentence, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Update(table).
		Set("text", s.Text).
		Set("translation", s.Translation).
		Set("difficulty", s.Difficulty).
		Set("category", s.Category).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var updated domain.Sentence
	if err := pgxscan.Get(ctx, q, &updated, sql, args...); err != nil {
		return nil, postgres.MapError(err, "sentence", id)
	}
	return &updated, nil
}

// Delete removes a sentence; practice attempts referencing it cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "sentence", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sentence %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Categories returns the distinct sentence categories in alphabetical order.
func (r *Repo) Categories(ctx context.Context) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	categories := []string{}
	if err := pgxscan.Select(ctx, q, &categories,
		"SELECT DISTINCT category FROM sentences ORDER BY category"); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Stats returns catalog-wide sentence counts for the admin view.
func (r *Repo) Stats(ctx context.Context) (*domain.SpeechStats, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var stats domain.SpeechStats
	if err := pgxscan.Get(ctx, q, &stats.Total, "SELECT COUNT(*) FROM sentences"); err != nil {
		return nil, fmt.Errorf("count sentences: %w", err)
	}

	stats.ByDifficulty = []domain.DifficultyCount{}
	if err := pgxscan.Select(ctx, q, &stats.ByDifficulty,
		`SELECT difficulty, COUNT(*) AS count FROM sentences
		 GROUP BY difficulty
		 ORDER BY CASE difficulty WHEN 'easy' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END`); err != nil {
		return nil, fmt.Errorf("stats by difficulty: %w", err)
	}

	stats.ByCategory = []domain.CategoryCount{}
	if err := pgxscan.Select(ctx, q, &stats.ByCategory,
		`SELECT category, COUNT(*) AS count FROM sentences
		 GROUP BY category
		 ORDER BY count DESC, category`); err != nil {
		return nil, fmt.Errorf("stats by category: %w", err)
	}

	return &stats, nil
}
