package repository

import (
	"context"

	"ecoride/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
// Bookings are append-only.
type BookingRepository interface {
	// GetAll retrieves all bookings in insertion order.
	GetAll(ctx context.Context) ([]domain.Booking, error)

	// Append adds a new booking to the collection.
	Append(ctx context.Context, booking domain.Booking) error
}
