package chat

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/englearn/backend/internal/config"
	"github.com/englearn/backend/internal/domain"
)

// fakeChatRepo keeps exchanges in memory.
type fakeChatRepo struct {
	messages []*domain.ChatMessage
}

func (f *fakeChatRepo) Create(_ context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error) {
	created := *m
	created.ID = uuid.New()
	f.messages = append(f.messages, &created)
	return &created, nil
}

func (f *fakeChatRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.ChatMessage, error) {
	for _, m := range f.messages {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeChatRepo) ListByUser(_ context.Context, userID uuid.UUID, _ domain.PageSpec) ([]domain.ChatMessage, int, error) {
	out := []domain.ChatMessage{}
	for _, m := range f.messages {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	return out, len(out), nil
}

func (f *fakeChatRepo) Delete(_ context.Context, userID, messageID uuid.UUID) error {
	for i, m := range f.messages {
		if m.ID == messageID && m.UserID == userID {
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeChatRepo) DeleteAllByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	kept := f.messages[:0]
	var removed int64
	for _, m := range f.messages {
		if m.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	f.messages = kept
	return removed, nil
}

// fakeCompleter records the last call and returns a canned reply or error.
type fakeCompleter struct {
	reply string
	err   error

	called     bool
	lastModel  string
	lastSystem string
	lastUser   string
}

func (f *fakeCompleter) Complete(_ context.Context, model, systemPrompt, userMessage string) (string, error) {
	f.called = true
	f.lastModel = model
	f.lastSystem = systemPrompt
	f.lastUser = userMessage
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestService(repo *fakeChatRepo, upstream *fakeCompleter, apiKey string) *Service {
	cfg := config.ChatConfig{
		APIKey:       apiKey,
		DefaultModel: "test/default-model",
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(log, repo, upstream, cfg)
}

func TestSend_Success(t *testing.T) {
	repo := &fakeChatRepo{}
	upstream := &fakeCompleter{reply: "Great sentence! Try: ..."}
	svc := newTestService(repo, upstream, "key")
	userID := uuid.New()

	stored, err := svc.Send(context.Background(), userID, SendInput{
		Message: "  How I can improve my email? ",
	})

	require.NoError(t, err)
	assert.Equal(t, "How I can improve my email?", stored.Message)
	assert.Equal(t, "Great sentence! Try: ...", stored.Response)
	assert.Equal(t, "test/default-model", stored.ModelID, "empty model falls back to the default")
	assert.Equal(t, "How I can improve my email?", upstream.lastUser)
	assert.Contains(t, upstream.lastSystem, "English tutor")
	assert.Len(t, repo.messages, 1)
}

func TestSend_ExplicitModel(t *testing.T) {
	upstream := &fakeCompleter{reply: "ok"}
	svc := newTestService(&fakeChatRepo{}, upstream, "key")

	stored, err := svc.Send(context.Background(), uuid.New(), SendInput{
		Message: "hello",
		Model:   "openai/gpt-4o-mini",
	})

	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4o-mini", upstream.lastModel)
	assert.Equal(t, "openai/gpt-4o-mini", stored.ModelID)
}

func TestSend_EmptyMessage(t *testing.T) {
	svc := newTestService(&fakeChatRepo{}, &fakeCompleter{}, "key")

	_, err := svc.Send(context.Background(), uuid.New(), SendInput{Message: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSend_NoAPIKeyUsesMock(t *testing.T) {
	repo := &fakeChatRepo{}
	upstream := &fakeCompleter{reply: "real reply"}
	svc := newTestService(repo, upstream, "")

	stored, err := svc.Send(context.Background(), uuid.New(), SendInput{Message: "hello"})

	require.NoError(t, err)
	assert.False(t, upstream.called, "upstream must not be called without an API key")
	assert.Contains(t, stored.Response, "mock")
	assert.Len(t, repo.messages, 1, "mock exchanges are persisted like real ones")
}

func TestSend_UpstreamErrorStoresNothing(t *testing.T) {
	repo := &fakeChatRepo{}
	upstream := &fakeCompleter{err: &domain.UpstreamError{StatusCode: 402, Message: "insufficient credits"}}
	svc := newTestService(repo, upstream, "key")

	_, err := svc.Send(context.Background(), uuid.New(), SendInput{Message: "hello"})

	var ue *domain.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 402, ue.StatusCode)
	assert.Empty(t, repo.messages, "a failed completion must not be persisted")
}

func TestGet_OwnerCheck(t *testing.T) {
	repo := &fakeChatRepo{}
	svc := newTestService(repo, &fakeCompleter{reply: "ok"}, "key")
	owner := uuid.New()

	stored, err := svc.Send(context.Background(), owner, SendInput{Message: "hello"})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), owner, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)

	_, err = svc.Get(context.Background(), uuid.New(), stored.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Get(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteAll_OnlyOwnHistory(t *testing.T) {
	repo := &fakeChatRepo{}
	svc := newTestService(repo, &fakeCompleter{reply: "ok"}, "key")
	alice, bob := uuid.New(), uuid.New()

	for _, userID := range []uuid.UUID{alice, alice, bob} {
		_, err := svc.Send(context.Background(), userID, SendInput{Message: "hello"})
		require.NoError(t, err)
	}

	n, err := svc.DeleteAll(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, total, err := repo.ListByUser(context.Background(), bob, domain.PageSpec{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, left, 1)
}

func TestModels_ReturnsCatalogCopy(t *testing.T) {
	svc := newTestService(&fakeChatRepo{}, &fakeCompleter{}, "key")

	models := svc.Models()
	require.NotEmpty(t, models)

	models[0].ID = "mutated"
	assert.NotEqual(t, "mutated", svc.Models()[0].ID, "callers must not mutate the catalog")
}
