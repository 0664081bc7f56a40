package redis

import (
	"context"
	"time"
)

// LocationStoreInterface defines the interface for user location operations.
type LocationStoreInterface interface {
	UpdateLocation(ctx context.Context, userID string, lat, lng float64) error
	GetLocation(ctx context.Context, userID string) (*UserLocation, error)
	RemoveLocation(ctx context.Context, userID string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireRideLock(ctx context.Context, rideID string, ttl time.Duration) (bool, error)
	ReleaseRideLock(ctx context.Context, rideID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ LocationStoreInterface = (*LocationStore)(nil)
	_ LockStoreInterface     = (*LockStore)(nil)
)
