package topic

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/englearn/backend/internal/domain"
)

type fakeTopicRepo struct {
	topics map[uuid.UUID]*domain.Topic
}

func newFakeTopicRepo() *fakeTopicRepo {
	return &fakeTopicRepo{topics: map[uuid.UUID]*domain.Topic{}}
}

func (f *fakeTopicRepo) List(_ context.Context) ([]domain.Topic, error) {
	out := make([]domain.Topic, 0, len(f.topics))
	for _, t := range f.topics {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTopicRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Topic, error) {
	if t, ok := f.topics[id]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTopicRepo) Create(_ context.Context, t *domain.Topic) (*domain.Topic, error) {
	for _, existing := range f.topics {
		if existing.Name == t.Name {
			return nil, domain.ErrAlreadyExists
		}
	}
	created := *t
	created.ID = uuid.New()
	f.topics[created.ID] = &created
	return &created, nil
}

func (f *fakeTopicRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.topics[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.topics, id)
	return nil
}

type fakeWordLister struct {
	lastFilter domain.WordFilter
	words      []domain.Word
}

func (f *fakeWordLister) List(_ context.Context, filter domain.WordFilter, _ domain.PageSpec) ([]domain.Word, int, error) {
	f.lastFilter = filter
	return f.words, len(f.words), nil
}

type fakeFileStore struct {
	removed []string
}

func (f *fakeFileStore) Remove(relURL string) error {
	f.removed = append(f.removed, relURL)
	return nil
}

func newTestService(repo *fakeTopicRepo, words *fakeWordLister, files *fakeFileStore) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(log, repo, words, files)
}

func strPtr(s string) *string { return &s }

func TestCreate_Success(t *testing.T) {
	repo := newFakeTopicRepo()
	svc := newTestService(repo, &fakeWordLister{}, &fakeFileStore{})

	created, err := svc.Create(context.Background(), Input{
		Name:     "  Food  ",
		ImageURL: strPtr("/uploads/images/x.png"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Food", created.Name)
	require.NotNil(t, created.ImageURL)
}

func TestCreate_EmptyName(t *testing.T) {
	svc := newTestService(newFakeTopicRepo(), &fakeWordLister{}, &fakeFileStore{})

	_, err := svc.Create(context.Background(), Input{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_DuplicateRemovesUploadedImage(t *testing.T) {
	repo := newFakeTopicRepo()
	files := &fakeFileStore{}
	svc := newTestService(repo, &fakeWordLister{}, files)

	_, err := svc.Create(context.Background(), Input{Name: "Food"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), Input{
		Name:     "Food",
		ImageURL: strPtr("/uploads/images/dup.png"),
	})

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Equal(t, []string{"/uploads/images/dup.png"}, files.removed,
		"the stored image must not be left orphaned")
}

func TestDelete_RemovesStoredImage(t *testing.T) {
	repo := newFakeTopicRepo()
	files := &fakeFileStore{}
	svc := newTestService(repo, &fakeWordLister{}, files)

	created, err := svc.Create(context.Background(), Input{
		Name:     "Food",
		ImageURL: strPtr("/uploads/images/food.png"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.topics)
	assert.Equal(t, []string{"/uploads/images/food.png"}, files.removed)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService(newFakeTopicRepo(), &fakeWordLister{}, &fakeFileStore{})

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWords_FiltersByTopicName(t *testing.T) {
	words := &fakeWordLister{words: []domain.Word{{Headword: "apple"}}}
	svc := newTestService(newFakeTopicRepo(), words, &fakeFileStore{})

	res, err := svc.Words(context.Background(), "food", domain.PageSpec{})

	require.NoError(t, err)
	require.NotNil(t, words.lastFilter.Topic)
	assert.Equal(t, "food", *words.lastFilter.Topic)
	assert.Len(t, res.Words, 1)
	assert.Equal(t, 1, res.Pagination.Total)
	assert.Equal(t, 1, res.Pagination.Page, "page defaults to 1")
}
