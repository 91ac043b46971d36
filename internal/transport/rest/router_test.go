package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/englearn/backend/internal/config"
	"github.com/englearn/backend/internal/domain"
	"github.com/englearn/backend/internal/service/topic"
	"github.com/englearn/backend/internal/service/vocabulary"
)

type routerValidator struct{}

func (routerValidator) ValidateAccessToken(token string) (uuid.UUID, string, error) {
	switch token {
	case "user-token":
		return uuid.New(), "user", nil
	case "admin-token":
		return uuid.New(), "admin", nil
	}
	return uuid.Nil, "", errors.New("bad token")
}

type vocabularyServiceStub struct{}

func (vocabularyServiceStub) List(context.Context, domain.WordFilter, domain.PageSpec) (*vocabulary.ListResult, error) {
	return &vocabulary.ListResult{Words: []domain.Word{}}, nil
}

func (vocabularyServiceStub) Get(context.Context, uuid.UUID) (*domain.Word, error) {
	return &domain.Word{}, nil
}

func (vocabularyServiceStub) Create(context.Context, vocabulary.WordInput) (*domain.Word, error) {
	return &domain.Word{}, nil
}

func (vocabularyServiceStub) Update(context.Context, uuid.UUID, vocabulary.WordInput) (*domain.Word, error) {
	return &domain.Word{}, nil
}

func (vocabularyServiceStub) Delete(context.Context, uuid.UUID) error { return nil }

func (vocabularyServiceStub) DeleteAll(context.Context) (int64, error) { return 0, nil }

func (vocabularyServiceStub) Stats(context.Context) (*domain.VocabularyStats, error) {
	return &domain.VocabularyStats{}, nil
}

func (vocabularyServiceStub) Import(context.Context, io.Reader) (*vocabulary.ImportResult, error) {
	return &vocabulary.ImportResult{}, nil
}

type topicServiceStub struct{}

func (topicServiceStub) List(context.Context) ([]domain.Topic, error) { return nil, nil }

func (topicServiceStub) Create(context.Context, topic.Input) (*domain.Topic, error) {
	return &domain.Topic{}, nil
}

func (topicServiceStub) Delete(context.Context, uuid.UUID) error { return nil }

func (topicServiceStub) Words(context.Context, string, domain.PageSpec) (*topic.WordsResult, error) {
	return &topic.WordsResult{}, nil
}

type imageStoreStub struct{}

func (imageStoreStub) SaveImage(string, io.Reader, int64) (string, error) { return "", nil }

// newTestRouter wires only the catalog routes under test; handlers for
// the remaining routes stay nil, which is fine because registration only
// takes method values.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	uploads := config.UploadsConfig{MaxCSVBytes: 1 << 20, MaxFileBytes: 1 << 20, MaxImgBytes: 1 << 20}

	return NewRouter(Deps{
		Logger:         log,
		CORS:           config.CORSConfig{AllowedOrigins: "*"},
		UploadsDir:     t.TempDir(),
		TokenValidator: routerValidator{},

		Health:     NewHealthHandler(&dbPingerMock{}, "test"),
		Vocabulary: NewVocabularyHandler(vocabularyServiceStub{}, uploads, log),
		Topics:     NewTopicHandler(topicServiceStub{}, imageStoreStub{}, uploads, log),
	})
}

func TestRouter_CatalogReadsRequireToken(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/vocabulary", "/api/vocabulary/stats", "/api/topics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status = %d, want %d", path, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestRouter_CatalogReadsWithToken(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/vocabulary", "/api/topics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer user-token")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("GET %s with token: status = %d, want %d", path, rec.Code, http.StatusOK)
		}
	}
}

func TestRouter_CatalogMutationRequiresAdmin(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/vocabulary",
		strings.NewReader(`{"headword":"apple","cefr_level":"A1"}`))
	req.Header.Set("Authorization", "Bearer user-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin create: status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/vocabulary",
		strings.NewReader(`{"headword":"apple","cefr_level":"A1"}`))
	req.Header.Set("Authorization", "Bearer admin-token")
	rec = httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("admin create: status = %d, want %d", rec.Code, http.StatusCreated)
	}
}
