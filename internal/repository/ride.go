package repository

import (
	"context"

	"ecoride/internal/domain"
)

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// GetAll retrieves all rides in insertion order.
	GetAll(ctx context.Context) ([]domain.Ride, error)

	// Append adds a new ride to the collection.
	Append(ctx context.Context, ride domain.Ride) error

	// ReplaceAll overwrites the ride collection.
	ReplaceAll(ctx context.Context, rides []domain.Ride) error
}
