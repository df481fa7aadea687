package auth

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/karimbakri/homeport/internal/session"
)

// ErrInvalidCredentials signals a failed sign-in. Unknown emails and wrong
// passwords are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("auth: invalid email or password")

// Service authenticates stored accounts.
type Service struct {
	repo *Repository
}

// NewService creates an auth service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate checks the credentials and returns the account's identity.
func (s *Service) Authenticate(email, password string) (*session.Identity, error) {
	user, err := s.repo.UserByEmail(email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Debug("auth: password mismatch", "email", user.Email)
		return nil, ErrInvalidCredentials
	}

	return &session.Identity{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Mobile:      user.Mobile,
		Roles:       append([]session.Role(nil), user.Roles...),
	}, nil
}

// HashPassword produces the stored credential hash for seeding.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
