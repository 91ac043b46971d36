package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/englearn/backend/internal/domain"
	"github.com/englearn/backend/internal/service/progress"
	"github.com/englearn/backend/pkg/ctxutil"
)

// progressService defines the minimal interface needed by ProgressHandler.
type progressService interface {
	AddFavorite(ctx context.Context, userID, wordID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, wordID uuid.UUID) error
	IsFavorite(ctx context.Context, userID, wordID uuid.UUID) (bool, error)
	Favorites(ctx context.Context, userID uuid.UUID, page domain.PageSpec) (*progress.FavoritesResult, error)
	MarkLearned(ctx context.Context, userID, wordID uuid.UUID, masteryLevel int) error
	Learned(ctx context.Context, userID uuid.UUID, page domain.PageSpec) (*progress.LearnedResult, error)
	LearnedState(ctx context.Context, userID, wordID uuid.UUID) (*domain.LearnedState, error)
	RecordQuiz(ctx context.Context, userID uuid.UUID, input progress.QuizInput) (*domain.QuizAttempt, error)
	QuizAttempts(ctx context.Context, userID uuid.UUID, page domain.PageSpec) (*progress.QuizAttemptsResult, error)
	Stats(ctx context.Context, userID uuid.UUID) (*domain.LearningStats, error)
}

// ProgressHandler serves the per-user vocabulary progress endpoints.
type ProgressHandler struct {
	svc progressService
	log *slog.Logger
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(svc progressService, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{svc: svc, log: logger.With("handler", "progress")}
}

// currentUser extracts the authenticated user; the auth middleware
// guarantees it is set on these routes.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// AddFavorite handles POST /api/user-vocabulary/favorites/{wordID}.
func (h *ProgressHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	wordID, err := uuidParam(r, "wordID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.AddFavorite(r.Context(), userID, wordID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "favorited"})
}

// RemoveFavorite handles DELETE /api/user-vocabulary/favorites/{wordID}.
func (h *ProgressHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	wordID, err := uuidParam(r, "wordID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.RemoveFavorite(r.Context(), userID, wordID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "unfavorited"})
}

// IsFavorite handles GET /api/user-vocabulary/favorites/{wordID}.
func (h *ProgressHandler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	wordID, err := uuidParam(r, "wordID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	fav, err := h.svc.IsFavorite(r.Context(), userID, wordID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"isFavorite": fav})
}

// Favorites handles GET /api/user-vocabulary/favorites.
func (h *ProgressHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Favorites(r.Context(), userID, pageFromQuery(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type markLearnedRequest struct {
	MasteryLevel int `json:"mastery_level"`
}

// MarkLearned handles POST /api/user-vocabulary/learned/{wordID}.
// An empty body means mastery level 0.
func (h *ProgressHandler) MarkLearned(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	wordID, err := uuidParam(r, "wordID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req markLearnedRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if err := h.svc.MarkLearned(r.Context(), userID, wordID, req.MasteryLevel); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "marked learned"})
}

// Learned handles GET /api/user-vocabulary/learned.
func (h *ProgressHandler) Learned(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Learned(r.Context(), userID, pageFromQuery(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// LearnedState handles GET /api/user-vocabulary/learned/{wordID}.
func (h *ProgressHandler) LearnedState(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	wordID, err := uuidParam(r, "wordID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	state, err := h.svc.LearnedState(r.Context(), userID, wordID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"learned":       state.Learned,
		"mastery_level": state.MasteryLevel,
		"last_reviewed": state.LastReviewed,
	})
}

type quizRequest struct {
	Topic          string `json:"topic"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
}

// RecordQuiz handles POST /api/user-vocabulary/quiz-attempts.
func (h *ProgressHandler) RecordQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req quizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.RecordQuiz(r.Context(), userID, progress.QuizInput{
		Topic:          optString(req.Topic),
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// QuizAttempts handles GET /api/user-vocabulary/quiz-attempts.
func (h *ProgressHandler) QuizAttempts(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	result, err := h.svc.QuizAttempts(r.Context(), userID, pageFromQuery(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Stats handles GET /api/user-vocabulary/stats.
func (h *ProgressHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	stats, err := h.svc.Stats(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
