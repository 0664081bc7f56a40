package tests

import (
	"context"
	"errors"
	"testing"

	"ecoride/internal/service"
)

// ──────────────────────────────────────────────
// REGISTRATION
// ──────────────────────────────────────────────

func TestRegister_FreshEmail_OpensSession(t *testing.T) {
	t.Parallel()

	l := newLedger()
	ctx := context.Background()

	user, token, err := l.auth.Register(ctx, "Priya Sharma", "priya@example.com", "secret123")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if user.ID == "" {
		t.Error("expected user ID to be set")
	}
	if user.Rating != 5.0 {
		t.Errorf("expected default rating 5.0, got %v", user.Rating)
	}
	if !user.Verified {
		t.Error("expected new user to be verified")
	}
	if user.TotalKm != 0 || user.TotalCarbonSaved != 0 {
		t.Error("expected zero cumulative totals for new user")
	}
	if user.SecretHash == "secret123" {
		t.Error("expected secret to be stored hashed, not plaintext")
	}

	current, err := l.auth.CurrentUser(ctx, token)
	if err != nil {
		t.Fatalf("expected session for new user, got: %v", err)
	}
	if current.ID != user.ID {
		t.Errorf("expected current user %s, got %s", user.ID, current.ID)
	}
}

func TestRegister_DuplicateEmail_Fails(t *testing.T) {
	t.Parallel()

	l := newLedger()
	ctx := context.Background()

	if _, _, err := l.auth.Register(ctx, "Priya Sharma", "priya@example.com", "secret123"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, _, err := l.auth.Register(ctx, "Someone Else", "priya@example.com", "other")
	if !errors.Is(err, service.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got: %v", err)
	}

	users, err := l.users.GetAll(ctx)
	if err != nil {
		t.Fatalf("failed to list users: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("expected 1 user after duplicate signup, got %d", len(users))
	}
}

func TestRegister_MissingFields_Fails(t *testing.T) {
	t.Parallel()

	l := newLedger()

	_, _, err := l.auth.Register(context.Background(), "", "a@example.com", "pw")
	if !errors.Is(err, service.ErrInvalidSignup) {
		t.Errorf("expected ErrInvalidSignup, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// AUTHENTICATION
// ──────────────────────────────────────────────

func TestAuthenticate_CorrectCredentials_Succeeds(t *testing.T) {
	t.Parallel()

	l := newLedger()
	ctx := context.Background()

	registered, _, err := l.auth.Register(ctx, "Priya Sharma", "priya@example.com", "secret123")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	user, token, err := l.auth.Authenticate(ctx, "priya@example.com", "secret123")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %s, got %s", registered.ID, user.ID)
	}

	current, err := l.auth.CurrentUser(ctx, token)
	if err != nil {
		t.Fatalf("expected session after login, got: %v", err)
	}
	if current.ID != registered.ID {
		t.Errorf("expected current user %s, got %s", registered.ID, current.ID)
	}
}

func TestAuthenticate_BadCredentials_Fails(t *testing.T) {
	t.Parallel()

	l := newLedger()
	ctx := context.Background()

	if _, _, err := l.auth.Register(ctx, "Priya Sharma", "priya@example.com", "secret123"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	testCases := []struct {
		name   string
		email  string
		secret string
	}{
		{name: "wrong secret", email: "priya@example.com", secret: "wrong"},
		{name: "unknown email", email: "nobody@example.com", secret: "secret123"},
		{name: "email case differs", email: "Priya@example.com", secret: "secret123"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := l.auth.Authenticate(ctx, tc.email, tc.secret)
			if !errors.Is(err, service.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got: %v", err)
			}
		})
	}
}

// ──────────────────────────────────────────────
// SESSIONS
// ──────────────────────────────────────────────

func TestLogout_ClearsSession(t *testing.T) {
	t.Parallel()

	l := newLedger()
	ctx := context.Background()

	_, token, err := l.auth.Register(ctx, "Priya Sharma", "priya@example.com", "secret123")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if err := l.auth.Logout(ctx, token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	_, err = l.auth.CurrentUser(ctx, token)
	if !errors.Is(err, service.ErrNoSession) {
		t.Errorf("expected ErrNoSession after logout, got: %v", err)
	}

	// Logging out again is not an error.
	if err := l.auth.Logout(ctx, token); err != nil {
		t.Errorf("expected repeated logout to succeed, got: %v", err)
	}
}

func TestCurrentUser_UnknownToken_Fails(t *testing.T) {
	t.Parallel()

	l := newLedger()

	_, err := l.auth.CurrentUser(context.Background(), "no-such-token")
	if !errors.Is(err, service.ErrNoSession) {
		t.Errorf("expected ErrNoSession, got: %v", err)
	}

	_, err = l.auth.CurrentUser(context.Background(), "")
	if !errors.Is(err, service.ErrNoSession) {
		t.Errorf("expected ErrNoSession for empty token, got: %v", err)
	}
}
