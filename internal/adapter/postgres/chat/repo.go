// Package chat implements chat-history persistence.
package chat

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

const table = "chat_messages"

var columns = []string{"id", "user_id", "message", "response", "model_id", "created_at"}

// Repo provides chat-history persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new chat repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create persists one exchange and returns the stored row.
func (r *Repo) Create(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Insert(table).
		Columns("user_id", "message", "response", "model_id").
		Values(m.UserID, m.Message, m.Response, m.ModelID).
		Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var created domain.ChatMessage
	if err := pgxscan.Get(ctx, q, &created, sql, args...); err != nil {
		return nil, postgres.MapError(err, "chat message", m.UserID)
	}
	return &created, nil
}

// GetByID returns one message regardless of owner; the service layer
// decides whether the caller may see it.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ChatMessage, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Select(columns...).From(table).
		Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var m domain.ChatMessage
	if err := pgxscan.Get(ctx, q, &m, sql, args...); err != nil {
		return nil, postgres.MapError(err, "chat message", id)
	}
	return &m, nil
}

// ListByUser returns one page of the user's chat history, newest first,
// plus the total message count.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, page domain.PageSpec) ([]domain.ChatMessage, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var total int
	if err := pgxscan.Get(ctx, q, &total,
		"SELECT COUNT(*) FROM chat_messages WHERE user_id = $1", userID); err != nil {
		return nil, 0, fmt.Errorf("count chat history: %w", err)
	}

	sql, args, err := builder.Select(columns...).From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build query: %w", err)
	}

	messages := []domain.ChatMessage{}
	if err := pgxscan.Select(ctx, q, &messages, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list chat history: %w", err)
	}
	return messages, total, nil
}

// Delete removes one message owned by the user.
func (r *Repo) Delete(ctx context.Context, userID, messageID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Delete(table).
		Where(sq.Eq{"id": messageID, "user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "chat message", messageID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("chat message %s: %w", messageID, domain.ErrNotFound)
	}
	return nil
}

// DeleteAllByUser clears the user's chat history and returns the number
// of removed messages.
func (r *Repo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := builder.Delete(table).Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete chat history: %w", err)
	}
	return tag.RowsAffected(), nil
}
