package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/englearn/backend/internal/domain"
	"github.com/englearn/backend/internal/service/chat"
)

// chatService defines the minimal interface needed by ChatHandler.
type chatService interface {
	Send(ctx context.Context, userID uuid.UUID, input chat.SendInput) (*domain.ChatMessage, error)
	Models() []domain.ChatModel
	History(ctx context.Context, userID uuid.UUID, page domain.PageSpec) (*chat.HistoryResult, error)
	Get(ctx context.Context, userID, messageID uuid.UUID) (*domain.ChatMessage, error)
	Delete(ctx context.Context, userID, messageID uuid.UUID) error
	DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error)
}

// ChatHandler serves the tutoring chat endpoints.
type ChatHandler struct {
	svc chatService
	log *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(svc chatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, log: logger.With("handler", "chat")}
}

type sendRequest struct {
	Message string `json:"message"`
	Model   string `json:"model"`
}

// Send handles POST /api/chat/send. Upstream failures, including 402
// payment-required, pass through with their original status code.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stored, err := h.svc.Send(r.Context(), userID, chat.SendInput{
		Message: req.Message,
		Model:   req.Model,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, stored)
}

// Models handles GET /api/chat/models.
func (h *ChatHandler) Models(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"models": h.svc.Models()})
}

// History handles GET /api/chat/history.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
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

// Get handles GET /api/chat/history/{id}. Someone else's exchange is 403.
func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	messageID, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	m, err := h.svc.Get(r.Context(), userID, messageID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// Delete handles DELETE /api/chat/history/{id}.
func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	messageID, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.Delete(r.Context(), userID, messageID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "exchange deleted"})
}

// DeleteAll handles DELETE /api/chat/history.
func (h *ChatHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	n, err := h.svc.DeleteAll(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "history cleared", "count": n})
}
