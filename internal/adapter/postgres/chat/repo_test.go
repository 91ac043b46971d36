package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/englearn/backend/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestRepo_Create(t *testing.T) {
	mock := newMock(t)
	repo := New(mock)

	userID := uuid.New()
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "user_id", "message", "response", "model_id", "created_at"}).
		AddRow(uuid.New(), userID, "hello", "Hi! Let's practice.", "test/model", now)

	mock.ExpectQuery(`INSERT INTO chat_messages`).
		WithArgs(userID, "hello", "Hi! Let's practice.", "test/model").
		WillReturnRows(rows)

	created, err := repo.Create(context.Background(), &domain.ChatMessage{
		UserID:   userID,
		Message:  "hello",
		Response: "Hi! Let's practice.",
		ModelID:  "test/model",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == uuid.Nil || created.Response != "Hi! Let's practice." {
		t.Errorf("unexpected created message: %+v", created)
	}
}

func TestRepo_Delete_ScopedToOwner(t *testing.T) {
	mock := newMock(t)
	repo := New(mock)

	userID, messageID := uuid.New(), uuid.New()
	// A foreign message matches zero rows, indistinguishable from missing.
	mock.ExpectExec(`DELETE FROM chat_messages WHERE id = \$1 AND user_id = \$2`).
		WithArgs(messageID, userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), userID, messageID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete error = %v, want ErrNotFound", err)
	}
}

func TestRepo_ListByUser_Pagination(t *testing.T) {
	mock := newMock(t)
	repo := New(mock)

	userID := uuid.New()
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "user_id", "message", "response", "model_id", "created_at"}).
		AddRow(uuid.New(), userID, "q2", "a2", "test/model", now).
		AddRow(uuid.New(), userID, "q1", "a1", "test/model", now.Add(-time.Minute))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM chat_messages WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT .+ FROM chat_messages WHERE user_id = \$1 ORDER BY created_at DESC, id LIMIT 50 OFFSET 0`).
		WithArgs(userID).
		WillReturnRows(rows)

	messages, total, err := repo.ListByUser(context.Background(), userID,
		domain.PageSpec{Page: 1, Limit: 50})
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if total != 2 || len(messages) != 2 {
		t.Fatalf("total = %d, len = %d, want 2/2", total, len(messages))
	}
	if messages[0].Message != "q2" {
		t.Errorf("expected newest first, got %+v", messages[0])
	}
}

func TestRepo_DeleteAllByUser(t *testing.T) {
	mock := newMock(t)
	repo := New(mock)

	userID := uuid.New()
	mock.ExpectExec(`DELETE FROM chat_messages WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 9))

	n, err := repo.DeleteAllByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("DeleteAllByUser returned error: %v", err)
	}
	if n != 9 {
		t.Errorf("DeleteAllByUser = %d, want 9", n)
	}
}
