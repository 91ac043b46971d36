package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/englearn/backend/internal/config"
	"github.com/englearn/backend/internal/domain"
	"github.com/englearn/backend/internal/service/topic"
)

// topicService defines the minimal interface needed by TopicHandler.
type topicService interface {
	List(ctx context.Context) ([]domain.Topic, error)
	Create(ctx context.Context, input topic.Input) (*domain.Topic, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Words(ctx context.Context, name string, page domain.PageSpec) (*topic.WordsResult, error)
}

// imageStore saves uploaded images and returns their relative URL.
type imageStore interface {
	SaveImage(name string, r io.Reader, limit int64) (string, error)
}

// TopicHandler serves the topic catalog endpoints.
type TopicHandler struct {
	svc     topicService
	images  imageStore
	uploads config.UploadsConfig
	log     *slog.Logger
}

// NewTopicHandler creates a TopicHandler.
func NewTopicHandler(svc topicService, images imageStore, uploads config.UploadsConfig, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{
		svc:     svc,
		images:  images,
		uploads: uploads,
		log:     logger.With("handler", "topic"),
	}
}

// List handles GET /api/topics.
func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	topics, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"topics": topics})
}

// Create handles POST /api/topics: multipart form with name, optional
// description, and an optional image file.
func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.uploads.MaxImgBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	input := topic.Input{
		Name:        r.FormValue("name"),
		Description: optString(r.FormValue("description")),
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		url, err := h.images.SaveImage(header.Filename, file, h.uploads.MaxImgBytes)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		input.ImageURL = &url
	}

	created, err := h.svc.Create(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Delete handles DELETE /api/topics/{id}.
func (h *TopicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "topic deleted"})
}

// Words handles GET /api/topics/{topic}/words: words carrying the topic name.
func (h *TopicHandler) Words(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "topic")
	if name == "" {
		writeError(w, http.StatusBadRequest, "topic name is required")
		return
	}

	result, err := h.svc.Words(r.Context(), name, pageFromQuery(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
