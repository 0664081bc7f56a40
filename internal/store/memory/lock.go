package memory

import (
	"context"
	"sync"
	"time"
)

// RideLocker is an in-process ride lock, used when the record store backend
// has no distributed lock. TTL expiry mirrors the Redis lock so a failed
// booking cannot wedge a ride forever.
type RideLocker struct {
	mu   sync.Mutex
	held map[string]time.Time
}

// NewRideLocker creates a new RideLocker.
func NewRideLocker() *RideLocker {
	return &RideLocker{held: make(map[string]time.Time)}
}

// AcquireRideLock attempts to acquire the booking lock for the given ride.
func (l *RideLocker) AcquireRideLock(ctx context.Context, rideID string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if expiry, ok := l.held[rideID]; ok && time.Now().Before(expiry) {
		return false, nil
	}
	l.held[rideID] = time.Now().Add(ttl)
	return true, nil
}

// ReleaseRideLock releases the booking lock for the given ride.
func (l *RideLocker) ReleaseRideLock(ctx context.Context, rideID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, rideID)
	return nil
}
