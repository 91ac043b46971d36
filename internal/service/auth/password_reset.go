package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	authtoken "github.com/englearn/backend/internal/auth"
	"github.com/englearn/backend/internal/domain"
)

// ForgotPassword starts a reset flow for the given email and returns the
// raw reset token. A missing account returns an empty token with no error,
// so the endpoint cannot be used to probe for registered addresses.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", domain.NewValidationError("email", "is required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.InfoContext(ctx, "password reset requested for unknown email")
			return "", nil
		}
		return "", fmt.Errorf("auth.ForgotPassword get user: %w", err)
	}

	raw, hash, err := s.jwt.GenerateResetToken()
	if err != nil {
		return "", fmt.Errorf("auth.ForgotPassword generate token: %w", err)
	}

	expiry := time.Now().Add(s.cfg.ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, &hash, &expiry); err != nil {
		return "", fmt.Errorf("auth.ForgotPassword store token: %w", err)
	}

	s.log.InfoContext(ctx, "password reset token issued",
		slog.String("user_id", user.ID.String()))

	return raw, nil
}

// ResetPassword completes a reset flow: the raw token is hashed, matched
// against an unexpired stored token, and the password replaced. The stored
// token is cleared on success, so a token is single-use.
func (s *Service) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	user, err := s.users.GetByResetToken(ctx, authtoken.HashToken(input.Token))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("token", "is invalid or expired")
		}
		return fmt.Errorf("auth.ResetPassword get user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth.ResetPassword hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("auth.ResetPassword update password: %w", err)
	}

	s.log.InfoContext(ctx, "password reset completed",
		slog.String("user_id", user.ID.String()))

	return nil
}
