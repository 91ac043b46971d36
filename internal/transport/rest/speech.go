package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/englearn/backend/internal/config"
	"github.com/englearn/backend/internal/domain"
	"github.com/englearn/backend/internal/service/speech"
)

// speechService defines the minimal interface needed by SpeechHandler.
type speechService interface {
	ListSentences(ctx context.Context, f domain.SentenceFilter, page domain.PageSpec) (*speech.SentencesResult, error)
	GetSentence(ctx context.Context, id uuid.UUID) (*domain.Sentence, error)
	CreateSentence(ctx context.Context, input speech.SentenceInput) (*domain.Sentence, error)
	UpdateSentence(ctx context.Context, id uuid.UUID, input speech.SentenceInput) (*domain.Sentence, error)
	DeleteSentence(ctx context.Context, id uuid.UUID) error
	Import(ctx context.Context, r io.Reader) (*speech.ImportResult, error)
	RecordPractice(ctx context.Context, userID uuid.UUID, input speech.PracticeInput) (*domain.PracticeAttempt, error)
	History(ctx context.Context, userID uuid.UUID, page domain.PageSpec) (*speech.HistoryResult, error)
	DeleteAttempt(ctx context.Context, userID, attemptID uuid.UUID) error
	DeleteHistory(ctx context.Context, userID uuid.UUID) (int64, error)
	UserStats(ctx context.Context, userID uuid.UUID) (*domain.PracticeStats, error)
	CatalogStats(ctx context.Context) (*domain.SpeechStats, error)
	Categories(ctx context.Context) ([]string, error)
}

// audioStore saves uploaded audio and returns its relative URL.
type audioStore interface {
	SaveAudio(name string, r io.Reader, limit int64) (string, error)
}

// SpeechHandler serves the speech-practice endpoints.
type SpeechHandler struct {
	svc     speechService
	audio   audioStore
	uploads config.UploadsConfig
	log     *slog.Logger
}

// NewSpeechHandler creates a SpeechHandler.
func NewSpeechHandler(svc speechService, audio audioStore, uploads config.UploadsConfig, logger *slog.Logger) *SpeechHandler {
	return &SpeechHandler{
		svc:     svc,
		audio:   audio,
		uploads: uploads,
		log:     logger.With("handler", "speech"),
	}
}

// ListSentences handles GET /api/speech-practice/sentences?difficulty=&category=.
func (h *SpeechHandler) ListSentences(w http.ResponseWriter, r *http.Request) {
	filter := domain.SentenceFilter{
		Difficulty: optString(r.URL.Query().Get("difficulty")),
		Category:   optString(r.URL.Query().Get("category")),
	}

	result, err := h.svc.ListSentences(r.Context(), filter, pageFromQuery(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetSentence handles GET /api/speech-practice/sentences/{id}.
func (h *SpeechHandler) GetSentence(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	s, err := h.svc.GetSentence(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, s)
}

type sentenceRequest struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
	Difficulty  string `json:"difficulty"`
	Category    string `json:"category"`
}

func (req sentenceRequest) toInput() speech.SentenceInput {
	return speech.SentenceInput{
		Text:        req.Sentence,
		Translation: optString(req.Translation),
		Difficulty:  req.Difficulty,
		Category:    req.Category,
	}
}

// CreateSentence handles POST /api/speech-practice/sentences.
func (h *SpeechHandler) CreateSentence(w http.ResponseWriter, r *http.Request) {
	var req sentenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateSentence(r.Context(), req.toInput())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateSentence handles PUT /api/speech-practice/sentences/{id}.
func (h *SpeechHandler) UpdateSentence(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req sentenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateSentence(r.Context(), id, req.toInput())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteSentence handles DELETE /api/speech-practice/sentences/{id}.
func (h *SpeechHandler) DeleteSentence(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteSentence(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "sentence deleted"})
}

// Upload handles POST /api/speech-practice/upload: a multipart CSV under
// the "file" field.
func (h *SpeechHandler) Upload(w http.ResponseWriter, r *http.Request) {
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

// RecordPractice handles POST /api/speech-practice/practice: multipart
// form with sentence_id, accuracy, and an optional audio recording.
func (h *SpeechHandler) RecordPractice(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(h.uploads.MaxFileBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	sentenceID, err := uuid.Parse(r.FormValue("sentence_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "sentence_id is not a valid id")
		return
	}
	accuracy, err := strconv.ParseFloat(r.FormValue("accuracy"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "accuracy is not a number")
		return
	}

	input := speech.PracticeInput{SentenceID: sentenceID, Accuracy: accuracy}

	if file, header, err := r.FormFile("audio"); err == nil {
		defer file.Close()
		url, err := h.audio.SaveAudio(header.Filename, file, h.uploads.MaxFileBytes)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		input.AudioURL = &url
	}

	created, err := h.svc.RecordPractice(r.Context(), userID, input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// History handles GET /api/speech-practice/history.
func (h *SpeechHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	result, err := h.svc.History(r.Context(), userID, pageFromQuery(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// DeleteAttempt handles DELETE /api/speech-practice/history/{id}.
func (h *SpeechHandler) DeleteAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	attemptID, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteAttempt(r.Context(), userID, attemptID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "attempt deleted"})
}

// DeleteHistory handles DELETE /api/speech-practice/history.
func (h *SpeechHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	n, err := h.svc.DeleteHistory(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "history cleared", "count": n})
}

// Stats handles GET /api/speech-practice/stats.
func (h *SpeechHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	stats, err := h.svc.UserStats(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// AdminStats handles GET /api/speech-practice/admin/stats.
func (h *SpeechHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.CatalogStats(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Categories handles GET /api/speech-practice/categories.
func (h *SpeechHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}
