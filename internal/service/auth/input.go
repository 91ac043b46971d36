package auth

import (
	"net/mail"
	"unicode/utf8"

	"github.com/englearn/backend/internal/domain"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt input limit
	maxUsernameLen = 50
)

// RegisterInput carries the registration request fields.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Validate checks the registration input.
func (in RegisterInput) Validate() error {
	var v domain.ValidationError
	if in.Username == "" {
		v.Errors = append(v.Errors, domain.FieldError{Field: "username", Message: "is required"})
	} else if utf8.RuneCountInString(in.Username) > maxUsernameLen {
		v.Errors = append(v.Errors, domain.FieldError{Field: "username", Message: "is too long"})
	}
	if in.Email == "" {
		v.Errors = append(v.Errors, domain.FieldError{Field: "email", Message: "is required"})
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		v.Errors = append(v.Errors, domain.FieldError{Field: "email", Message: "is not a valid address"})
	}
	if err := validatePassword(in.Password); err != nil {
		v.Errors = append(v.Errors, err.Errors...)
	}
	if len(v.Errors) > 0 {
		return &v
	}
	return nil
}

// LoginInput carries the login request fields.
type LoginInput struct {
	Email    string
	Password string
}

// Validate checks the login input.
func (in LoginInput) Validate() error {
	var v domain.ValidationError
	if in.Email == "" {
		v.Errors = append(v.Errors, domain.FieldError{Field: "email", Message: "is required"})
	}
	if in.Password == "" {
		v.Errors = append(v.Errors, domain.FieldError{Field: "password", Message: "is required"})
	}
	if len(v.Errors) > 0 {
		return &v
	}
	return nil
}

// ResetPasswordInput carries the password-reset completion fields.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// Validate checks the reset input.
func (in ResetPasswordInput) Validate() error {
	var v domain.ValidationError
	if in.Token == "" {
		v.Errors = append(v.Errors, domain.FieldError{Field: "token", Message: "is required"})
	}
	if err := validatePassword(in.NewPassword); err != nil {
		v.Errors = append(v.Errors, err.Errors...)
	}
	if len(v.Errors) > 0 {
		return &v
	}
	return nil
}

func validatePassword(password string) *domain.ValidationError {
	switch {
	case password == "":
		return domain.NewValidationError("password", "is required")
	case len(password) < minPasswordLen:
		return domain.NewValidationError("password", "must be at least 6 characters")
	case len(password) > maxPasswordLen:
		return domain.NewValidationError("password", "is too long")
	}
	return nil
}
