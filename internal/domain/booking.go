package domain

import "time"

// Booking records one reserved seat on a ride. Immutable once created;
// each booking consumes exactly one seat.
type Booking struct {
	ID          string    `json:"id"`
	RideID      string    `json:"ride_id"`
	PassengerID string    `json:"passenger_id"`
	CreatedAt   time.Time `json:"created_at"`
}
