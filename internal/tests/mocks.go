package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"ecoride/internal/domain"
	"ecoride/internal/repository/record"
	"ecoride/internal/service"
	"ecoride/internal/store/memory"
)

// ──────────────────────────────────────────────
// MOCK RIDE LOCKER
// ──────────────────────────────────────────────

// MockRideLocker is a mock implementation of service.RideLocker.
type MockRideLocker struct {
	mu   sync.Mutex
	held map[string]bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// When true, every acquire is denied.
	DenyAll bool

	// Error injection
	AcquireError error
}

// NewMockRideLocker creates a new mock ride locker.
func NewMockRideLocker() *MockRideLocker {
	return &MockRideLocker{held: make(map[string]bool)}
}

func (m *MockRideLocker) AcquireRideLock(ctx context.Context, rideID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.DenyAll {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[rideID] {
		return false, nil
	}
	m.held[rideID] = true
	return true, nil
}

func (m *MockRideLocker) ReleaseRideLock(ctx context.Context, rideID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, rideID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK STATS CACHE
// ──────────────────────────────────────────────

// MockStatsCache is a mock implementation of service.StatsCache.
type MockStatsCache struct {
	mu    sync.Mutex
	stats map[string]*domain.ImpactStats

	// Counters for verification
	GetCallCount        int32
	SetCallCount        int32
	InvalidateCallCount int32
}

// NewMockStatsCache creates a new mock stats cache.
func NewMockStatsCache() *MockStatsCache {
	return &MockStatsCache{stats: make(map[string]*domain.ImpactStats)}
}

func (m *MockStatsCache) GetStats(ctx context.Context, userID string) (*domain.ImpactStats, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stats[userID]; ok {
		copy := *s
		return &copy, nil
	}
	return nil, nil
}

func (m *MockStatsCache) SetStats(ctx context.Context, userID string, stats *domain.ImpactStats) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *stats
	m.stats[userID] = &copy
	return nil
}

func (m *MockStatsCache) InvalidateStats(ctx context.Context, userID string) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stats, userID)
	return nil
}

// ──────────────────────────────────────────────
// LEDGER FIXTURE
// ──────────────────────────────────────────────

// ledger bundles a fully wired service stack over an in-memory record store.
type ledger struct {
	store    *memory.Store
	users    *record.UserRepository
	rides    *record.RideRepository
	bookings *record.BookingRepository
	sessions *record.SessionStore
	locker   *MockRideLocker

	auth     *service.AuthService
	rideSvc  *service.RideService
	statsSvc *service.StatsService
}

// newLedger wires the services the way main does, minus external stores.
func newLedger() *ledger {
	s := memory.New()
	users := record.NewUserRepository(s)
	rides := record.NewRideRepository(s)
	bookings := record.NewBookingRepository(s)
	sessions := record.NewSessionStore(s)
	locker := NewMockRideLocker()

	return &ledger{
		store:    s,
		users:    users,
		rides:    rides,
		bookings: bookings,
		sessions: sessions,
		locker:   locker,
		auth:     service.NewAuthService(users, sessions),
		rideSvc:  service.NewRideService(rides, bookings, users, sessions, locker, nil, nil),
		statsSvc: service.NewStatsService(rides, bookings, sessions, nil),
	}
}
