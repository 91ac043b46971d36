// Package admin implements account administration and the dashboard
// aggregates behind the admin panel.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/englearn/backend/internal/domain"
)

// userRepo defines the user repository interface needed by the admin service.
type userRepo interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
	CountNewSince(ctx context.Context, since time.Time) (int, error)
}

// counter is the slice of a catalog repository used for dashboard totals.
type counter interface {
	Count(ctx context.Context) (int, error)
}

// newUserWindow is the dashboard's "recent signups" lookback.
const newUserWindow = 7 * 24 * time.Hour

// Service implements admin operations.
type Service struct {
	log   *slog.Logger
	users userRepo
	words counter
}

// NewService creates a new admin service instance.
func NewService(logger *slog.Logger, users userRepo, words counter) *Service {
	return &Service{
		log:   logger.With("service", "admin"),
		users: users,
		words: words,
	}
}

// UserView is the safe subset of an account shown in the admin panel.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserView(u *domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// Users returns all accounts without their password hashes.
func (s *Service) Users(ctx context.Context) ([]UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin.Users: %w", err)
	}

	views := make([]UserView, len(users))
	for i := range users {
		views[i] = toUserView(&users[i])
	}
	return views, nil
}

// DeleteUser removes an account; progress, practice history, and chat
// history cascade away with it. Admin accounts cannot be deleted.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("admin.DeleteUser: %w", err)
	}
	if u.IsAdmin {
		return fmt.Errorf("admin.DeleteUser: admin account: %w", domain.ErrForbidden)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("admin.DeleteUser: %w", err)
	}

	s.log.InfoContext(ctx, "user deleted by admin", slog.String("user_id", id.String()))
	return nil
}

// CreateUserInput carries the admin account-creation fields.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

// Validate checks the input.
func (in CreateUserInput) Validate() error {
	var v domain.ValidationError
	if in.Username == "" {
		v.Errors = append(v.Errors, domain.FieldError{Field: "username", Message: "is required"})
	}
	if in.Email == "" {
		v.Errors = append(v.Errors, domain.FieldError{Field: "email", Message: "is required"})
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		v.Errors = append(v.Errors, domain.FieldError{Field: "email", Message: "is not a valid address"})
	}
	if len(in.Password) < 6 {
		v.Errors = append(v.Errors, domain.FieldError{Field: "password", Message: "must be at least 6 characters"})
	}
	if len(v.Errors) > 0 {
		return &v
	}
	return nil
}

// CreateUser creates an account on a user's behalf, optionally with the
// admin flag set.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (UserView, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)

	if err := input.Validate(); err != nil {
		return UserView{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserView{}, fmt.Errorf("admin.CreateUser hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		IsAdmin:      input.IsAdmin,
	})
	if err != nil {
		return UserView{}, fmt.Errorf("admin.CreateUser: %w", err)
	}

	s.log.InfoContext(ctx, "user created by admin",
		slog.String("user_id", created.ID.String()),
		slog.Bool("is_admin", created.IsAdmin))

	return toUserView(created), nil
}

// Dashboard aggregates the admin landing-page numbers.
type Dashboard struct {
	TotalUsers    int `json:"totalUsers"`
	NewUsers7Days int `json:"newUsers7Days"`
	TotalWords    int `json:"totalWords"`
}

// DashboardStats returns account totals and the catalog size.
func (s *Service) DashboardStats(ctx context.Context) (*Dashboard, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin.DashboardStats: %w", err)
	}

	newUsers, err := s.users.CountNewSince(ctx, time.Now().Add(-newUserWindow))
	if err != nil {
		return nil, fmt.Errorf("admin.DashboardStats: %w", err)
	}

	totalWords, err := s.words.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin.DashboardStats: %w", err)
	}

	return &Dashboard{
		TotalUsers:    totalUsers,
		NewUsers7Days: newUsers,
		TotalWords:    totalWords,
	}, nil
}
