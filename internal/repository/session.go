package repository

import (
	"context"

	"ecoride/internal/domain"
)

// SessionStore defines the persistence operations for sessions. A session
// maps a bearer token to a snapshot of the authenticated user; the snapshot
// is refreshed whenever the user's totals change.
type SessionStore interface {
	// Get retrieves the user bound to a token.
	// Returns ErrNotFound if the token has no session.
	Get(ctx context.Context, token string) (*domain.User, error)

	// Put binds a token to a user snapshot.
	Put(ctx context.Context, token string, user domain.User) error

	// Delete removes a session. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error

	// RefreshUser updates the stored snapshot in every session that belongs
	// to the given user.
	RefreshUser(ctx context.Context, user domain.User) error
}
