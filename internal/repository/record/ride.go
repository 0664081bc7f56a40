package record

import (
	"context"

	"ecoride/internal/domain"
	"ecoride/internal/repository"
	"ecoride/internal/store"
)

// RideRepository is a record-store implementation of repository.RideRepository.
type RideRepository struct {
	store store.Store
}

var _ repository.RideRepository = (*RideRepository)(nil)

// NewRideRepository creates a new RideRepository.
func NewRideRepository(s store.Store) *RideRepository {
	return &RideRepository{store: s}
}

// GetAll retrieves all rides in insertion order.
func (r *RideRepository) GetAll(ctx context.Context) ([]domain.Ride, error) {
	return readList[domain.Ride](ctx, r.store, store.CollectionRides)
}

// Append adds a new ride to the collection.
func (r *RideRepository) Append(ctx context.Context, ride domain.Ride) error {
	rides, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	return writeList(ctx, r.store, store.CollectionRides, append(rides, ride))
}

// ReplaceAll overwrites the ride collection.
func (r *RideRepository) ReplaceAll(ctx context.Context, rides []domain.Ride) error {
	return writeList(ctx, r.store, store.CollectionRides, rides)
}
