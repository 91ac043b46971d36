package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/englearn/backend/internal/domain"
)

// Login authenticates a user with email + password.
// Returns ErrUnauthorized if the email is not found or the password is wrong.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.authenticate(ctx, input)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("auth.Login issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID.String()))

	return &AuthResult{Token: token, User: toUserView(user)}, nil
}

// AdminLogin authenticates like Login but rejects non-admin accounts with
// ErrForbidden. The issued token carries the admin role and the longer
// admin TTL.
func (s *Service) AdminLogin(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.authenticate(ctx, input)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, domain.ErrForbidden
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("auth.AdminLogin issue token: %w", err)
	}

	s.log.InfoContext(ctx, "admin logged in",
		slog.String("user_id", user.ID.String()))

	return &AuthResult{Token: token, User: toUserView(user)}, nil
}

// authenticate resolves the account and verifies the password. Missing
// accounts and wrong passwords are indistinguishable to the caller.
func (s *Service) authenticate(ctx context.Context, input LoginInput) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.authenticate get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	return user, nil
}
