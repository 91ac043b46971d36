package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"

	"github.com/englearn/backend/internal/config"
	"github.com/englearn/backend/internal/domain"
	"github.com/englearn/backend/internal/service/vocabulary"
)

// vocabularyService defines the minimal interface needed by VocabularyHandler.
type vocabularyService interface {
	List(ctx context.Context, f domain.WordFilter, page domain.PageSpec) (*vocabulary.ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	Create(ctx context.Context, input vocabulary.WordInput) (*domain.Word, error)
	Update(ctx context.Context, id uuid.UUID, input vocabulary.WordInput) (*domain.Word, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*domain.VocabularyStats, error)
	Import(ctx context.Context, r io.Reader) (*vocabulary.ImportResult, error)
}

// VocabularyHandler serves the vocabulary catalog endpoints.
type VocabularyHandler struct {
	svc        vocabularyService
	uploads    config.UploadsConfig
	httpClient *http.Client
	log        *slog.Logger
}

// NewVocabularyHandler creates a VocabularyHandler.
func NewVocabularyHandler(svc vocabularyService, uploads config.UploadsConfig, logger *slog.Logger) *VocabularyHandler {
	return &VocabularyHandler{
		svc:        svc,
		uploads:    uploads,
		httpClient: &http.Client{},
		log:        logger.With("handler", "vocabulary"),
	}
}

// List handles GET /api/vocabulary?cefr_level=&topic=&page=&limit=.
func (h *VocabularyHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.WordFilter{
		CEFRLevel: optString(r.URL.Query().Get("cefr_level")),
		Topic:     optString(r.URL.Query().Get("topic")),
	}

	result, err := h.svc.List(r.Context(), filter, pageFromQuery(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Stats handles GET /api/vocabulary/stats.
func (h *VocabularyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Get handles GET /api/vocabulary/{id}.
func (h *VocabularyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	word, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, word)
}

type wordRequest struct {
	Headword    string `json:"headword"`
	CEFRLevel   string `json:"cefr_level"`
	Translation string `json:"translation"`
	Topic       string `json:"topic"`
	ImageURL    string `json:"image_url"`
	AudioURL    string `json:"audio_url"`
}

func (req wordRequest) toInput() vocabulary.WordInput {
	return vocabulary.WordInput{
		Headword:    req.Headword,
		CEFRLevel:   req.CEFRLevel,
		Translation: optString(req.Translation),
		Topic:       optString(req.Topic),
		ImageURL:    optString(req.ImageURL),
		AudioURL:    optString(req.AudioURL),
	}
}

// Create handles POST /api/vocabulary.
func (h *VocabularyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req wordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	word, err := h.svc.Create(r.Context(), req.toInput())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, word)
}

// Update handles PUT /api/vocabulary/{id}.
func (h *VocabularyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req wordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	word, err := h.svc.Update(r.Context(), id, req.toInput())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, word)
}

// Delete handles DELETE /api/vocabulary/{id}.
func (h *VocabularyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "word deleted"})
}

// DeleteAll handles DELETE /api/vocabulary.
func (h *VocabularyHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.DeleteAll(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "vocabulary cleared", "count": n})
}

// Upload handles POST /api/vocabulary/upload: a multipart CSV under the
// "file" field, streamed straight into the importer.
func (h *VocabularyHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploads.MaxCSVBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "csv file is required under the 'file' field")
		return
	}
	defer file.Close()

	result, err := h.svc.Import(r.Context(), file)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type uploadFromURLRequest struct {
	URL string `json:"url"`
}

// UploadFromURL handles POST /api/vocabulary/upload-from-url: the CSV is
// downloaded to a temp file, imported, and the temp file removed whether
// the import succeeds or fails.
func (h *VocabularyHandler) UploadFromURL(w http.ResponseWriter, r *http.Request) {
	var req uploadFromURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	tmp, err := h.downloadCSV(r.Context(), req.URL)
	if err != nil {
		h.log.WarnContext(r.Context(), "csv download failed",
			slog.String("url", req.URL),
			slog.Any("error", err))
		writeError(w, http.StatusBadRequest, fmt.Sprintf("download failed: %v", err))
		return
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	result, err := h.svc.Import(r.Context(), tmp)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// downloadCSV fetches the URL into a temp file and rewinds it for reading.
// One attempt, no retries.
func (h *VocabularyHandler) downloadCSV(ctx context.Context, url string) (*os.File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "vocab-import-*.csv")
	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(tmp, io.LimitReader(resp.Body, h.uploads.MaxCSVBytes)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	return tmp, nil
}
