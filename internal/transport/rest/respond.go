// Package rest implements the HTTP JSON API handlers.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/englearn/backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// handleError maps domain errors to HTTP statuses. Duplicate natural keys
// on single inserts are client mistakes (400), not conflicts; upstream
// chat failures keep their original status code.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var upstream *domain.UpstreamError

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusBadRequest, "already exists")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.As(err, &upstream):
		writeJSON(w, upstream.StatusCode, map[string]string{
			"message": "chat completion failed",
			"error":   upstream.Message,
		})
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "internal server error",
			"error":   err.Error(),
		})
	}
}

// pageFromQuery reads ?page= and ?limit=; invalid values fall back to the
// service defaults through PageSpec.Normalize.
func pageFromQuery(r *http.Request) domain.PageSpec {
	var page domain.PageSpec
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		page.Limit = v
	}
	return page
}

// uuidParam parses a chi URL parameter as a UUID.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "is not a valid id")
	}
	return id, nil
}

// optString turns an empty string into nil so optional JSON fields map to
// NULL columns.
func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
