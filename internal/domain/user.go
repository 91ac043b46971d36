package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves the service layer.
type User struct {
	ID               uuid.UUID
	Username         string
	Email            string
	PasswordHash     string
	IsAdmin          bool
	ResetToken       *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
}
