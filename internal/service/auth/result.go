package auth

import (
	"github.com/google/uuid"

	"github.com/englearn/backend/internal/domain"
)

// UserView is the safe subset of a user returned to clients.
type UserView struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	IsAdmin  bool      `json:"is_admin"`
}

// AuthResult is the outcome of a successful register or login.
type AuthResult struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

func toUserView(u *domain.User) UserView {
	return UserView{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}
