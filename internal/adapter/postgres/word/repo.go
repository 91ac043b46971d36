// Package word implements the vocabulary catalog repository using PostgreSQL.
package word

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

const table = "words"

var columns = []string{
	"id", "headword", "cefr_level", "translation", "topic",
	"image_url", "audio_url", "created_at",
}

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new word repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// List returns one page of words matching the filter plus the total count
// over the same predicate. Words are ordered by headword ASC.
func (r *Repo) List(ctx context.Context, f domain.WordFilter, page domain.PageSpec) ([]domain.Word, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	preds := predicates(f)

	countSQL, countArgs, err := applyPredicates(
		builder.Select("COUNT(*)").From(table), preds).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := pgxscan.Get(ctx, q, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count words: %w", err)
	}

	dataSQL, dataArgs, err := applyPredicates(
		builder.Select(columns...).From(table), preds).
		OrderBy("headword ASC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	words := []domain.Word{}
	if err := pgxscan.Select(ctx, q, &words, dataSQL, dataArgs...); err != nil {
		return nil, 0, fmt.Errorf("list words: %w", err)
	}
	return words, total, nil
}

// GetByID returns a word by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Select(columns...).From(table).
		Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var w domain.Word
	if err := pgxscan.Get(ctx, q, &w, sql, args...); err != nil {
		return nil, postgres.MapError(err, "word", id)
	}
	return &w, nil
}

// ExistsByHeadword reports whether a word with exactly this headword exists.
// Comparison is verbatim: case and diacritics are significant.
func (r *Repo) ExistsByHeadword(ctx context.Context, headword string) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var exists bool
	if err := pgxscan.Get(ctx, q, &exists,
		"SELECT EXISTS(SELECT 1 FROM words WHERE headword = $1)", headword); err != nil {
		return false, fmt.Errorf("exists by headword: %w", err)
	}
	return exists, nil
}

// Create inserts a new word and returns the persisted domain.Word.
func (r *Repo) Create(ctx context.Context, w *domain.Word) (*domain.Word, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Insert(table).
		Columns("headword", "cefr_level", "translation", "topic", "image_url", "audio_url").
		Values(w.Headword, w.CEFRLevel, w.Translation, w.Topic, w.ImageURL, w.AudioURL).
		Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var created domain.Word
	if err := pgxscan.Get(ctx, q, &created, sql, args...); err != nil {
		return nil, postgres.MapError(err, "word", w.Headword)
	}
	return &created, nil
}

// Update replaces the mutable fields of a word and returns the updated row.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, w *domain.Word) (*domain.Word, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Update(table).
		Set("headword", w.Headword).
		Set("cefr_level", w.CEFRLevel).
		Set("translation", w.Translation).
		Set("topic", w.Topic).
		Set("image_url", w.ImageURL).
		Set("audio_url", w.AudioURL).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var updated domain.Word
	if err := pgxscan.Get(ctx, q, &updated, sql, args...); err != nil {
		return nil, postgres.MapError(err, "word", id)
	}
	return &updated, nil
}

// Delete removes a word; favorites and learned rows cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "word", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("word %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteAll empties the vocabulary catalog and returns the number of
// removed words.
func (r *Repo) DeleteAll(ctx context.Context) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM words")
	if err != nil {
		return 0, fmt.Errorf("delete all words: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Count returns the total number of words.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var count int
	if err := pgxscan.Get(ctx, q, &count, "SELECT COUNT(*) FROM words"); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return count, nil
}

// StatsByLevel returns word counts per CEFR level in CEFR rank order.
func (r *Repo) StatsByLevel(ctx context.Context) ([]domain.LevelCount, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql := `SELECT cefr_level, COUNT(*) AS count
		FROM words
		GROUP BY cefr_level
		ORDER BY ` + cefrOrder

	counts := []domain.LevelCount{}
	if err := pgxscan.Select(ctx, q, &counts, sql); err != nil {
		return nil, fmt.Errorf("stats by level: %w", err)
	}
	return counts, nil
}

// StatsByTopic returns word counts per topic, most populated first.
// Words without a topic are not counted.
func (r *Repo) StatsByTopic(ctx context.Context) ([]domain.TopicCount, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql := `SELECT topic, COUNT(*) AS count
		FROM words
		WHERE topic IS NOT NULL
		GROUP BY topic
		ORDER BY count DESC, topic`

	counts := []domain.TopicCount{}
	if err := pgxscan.Select(ctx, q, &counts, sql); err != nil {
		return nil, fmt.Errorf("stats by topic: %w", err)
	}
	return counts, nil
}
