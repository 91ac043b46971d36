package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/englearn/backend/internal/service/admin"
	"github.com/englearn/backend/internal/service/auth"
)

// adminAuthService is the admin slice of the auth service.
type adminAuthService interface {
	AdminLogin(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
}

// adminService defines the minimal interface needed by AdminHandler.
type adminService interface {
	Users(ctx context.Context) ([]admin.UserView, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	CreateUser(ctx context.Context, input admin.CreateUserInput) (admin.UserView, error)
	DashboardStats(ctx context.Context) (*admin.Dashboard, error)
}

// AdminHandler serves the admin panel endpoints.
type AdminHandler struct {
	authSvc adminAuthService
	svc     adminService
	log     *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(authSvc adminAuthService, svc adminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		authSvc: authSvc,
		svc:     svc,
		log:     logger.With("handler", "admin"),
	}
}

// Login handles POST /api/admin/login. Only admin accounts get a token.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authSvc.AdminLogin(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Users handles GET /api/admin/users.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Users(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

// DeleteUser handles DELETE /api/admin/users/{id}.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

// CreateUser handles POST /api/admin/create.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.svc.CreateUser(r.Context(), admin.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// Dashboard handles GET /api/admin/dashboard.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.DashboardStats(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
