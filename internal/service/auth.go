package service

import (
	"context"
	"errors"
	"net/url"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ecoride/internal/domain"
	"ecoride/internal/repository"
)

// AuthService handles registration, authentication and sessions.
type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, sessions repository.SessionStore) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
	}
}

const defaultRating = 5.0

// Register creates a new user and opens a session for it.
// Fails with ErrDuplicateEmail if the email is already taken (exact,
// case-sensitive match).
func (s *AuthService) Register(ctx context.Context, name, email, secret string) (*domain.User, string, error) {
	if name == "" || email == "" || secret == "" {
		return nil, "", ErrInvalidSignup
	}

	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, "", err
	}

	for _, u := range users {
		if u.Email == email {
			return nil, "", ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := domain.User{
		ID:         uuid.New().String(),
		Name:       name,
		Email:      email,
		SecretHash: string(hash),
		Avatar:     "https://i.pravatar.cc/150?u=" + url.QueryEscape(name),
		Rating:     defaultRating,
		Verified:   true,
	}

	if err := s.users.Append(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.createSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

// Authenticate verifies email and secret and opens a session.
// Any mismatch fails with ErrInvalidCredentials; the caller cannot tell an
// unknown email from a wrong secret.
func (s *AuthService) Authenticate(ctx context.Context, email, secret string) (*domain.User, string, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, "", err
	}

	for _, u := range users {
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.SecretHash), []byte(secret)) != nil {
			return nil, "", ErrInvalidCredentials
		}

		token, err := s.createSession(ctx, u)
		if err != nil {
			return nil, "", err
		}
		return &u, token, nil
	}

	return nil, "", ErrInvalidCredentials
}

// Logout removes the session for a token. Unknown tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// CurrentUser returns the user bound to a session token.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	user, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	return user, nil
}

func (s *AuthService) createSession(ctx context.Context, user domain.User) (string, error) {
	token := uuid.New().String()
	if err := s.sessions.Put(ctx, token, user); err != nil {
		return "", err
	}
	return token, nil
}
