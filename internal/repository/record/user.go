package record

import (
	"context"

	"ecoride/internal/domain"
	"ecoride/internal/repository"
	"ecoride/internal/store"
)

// UserRepository is a record-store implementation of repository.UserRepository.
type UserRepository struct {
	store store.Store
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository.
func NewUserRepository(s store.Store) *UserRepository {
	return &UserRepository{store: s}
}

// GetAll retrieves all users in insertion order.
func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	return readList[domain.User](ctx, r.store, store.CollectionUsers)
}

// Append adds a new user to the collection.
func (r *UserRepository) Append(ctx context.Context, user domain.User) error {
	users, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	return writeList(ctx, r.store, store.CollectionUsers, append(users, user))
}

// ReplaceAll overwrites the user collection.
func (r *UserRepository) ReplaceAll(ctx context.Context, users []domain.User) error {
	return writeList(ctx, r.store, store.CollectionUsers, users)
}
