package record

import (
	"context"

	"ecoride/internal/domain"
	"ecoride/internal/repository"
	"ecoride/internal/store"
)

// BookingRepository is a record-store implementation of
// repository.BookingRepository.
type BookingRepository struct {
	store store.Store
}

var _ repository.BookingRepository = (*BookingRepository)(nil)

// NewBookingRepository creates a new BookingRepository.
func NewBookingRepository(s store.Store) *BookingRepository {
	return &BookingRepository{store: s}
}

// GetAll retrieves all bookings in insertion order.
func (r *BookingRepository) GetAll(ctx context.Context) ([]domain.Booking, error) {
	return readList[domain.Booking](ctx, r.store, store.CollectionBookings)
}

// Append adds a new booking to the collection.
func (r *BookingRepository) Append(ctx context.Context, booking domain.Booking) error {
	bookings, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	return writeList(ctx, r.store, store.CollectionBookings, append(bookings, booking))
}
