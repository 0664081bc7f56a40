package store

import (
	"context"
	"errors"
)

// Collection names. These are the fixed partitions of the record store; the
// names are part of the persisted format and must not change.
const (
	CollectionUsers    = "ecoride_all_users"
	CollectionRides    = "ecoride_rides"
	CollectionBookings = "ecoride_bookings"
	CollectionSessions = "ecoride_session"
)

// ErrNoCollection is returned when a collection has never been written.
var ErrNoCollection = errors.New("collection not found")

// Store is a persistent mapping from named collections to serialized record
// lists. Implementations exist for Redis, PostgreSQL and in-process memory.
type Store interface {
	// Read returns the serialized contents of a collection.
	// Returns ErrNoCollection if the collection has never been written.
	Read(ctx context.Context, collection string) ([]byte, error)

	// Write replaces the serialized contents of a collection.
	Write(ctx context.Context, collection string, data []byte) error

	// Delete removes a collection entirely.
	Delete(ctx context.Context, collection string) error
}
