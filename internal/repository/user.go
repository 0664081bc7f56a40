package repository

import (
	"context"

	"ecoride/internal/domain"
)

// UserRepository defines the persistence operations for users.
//
// The ledger reads and writes whole collections: lookups and mutations
// operate on the full list, which preserves insertion order and keeps the
// serialized format identical across store backends.
type UserRepository interface {
	// GetAll retrieves all users in insertion order.
	GetAll(ctx context.Context) ([]domain.User, error)

	// Append adds a new user to the collection.
	Append(ctx context.Context, user domain.User) error

	// ReplaceAll overwrites the user collection.
	ReplaceAll(ctx context.Context, users []domain.User) error
}
