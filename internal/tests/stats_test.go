package tests

import (
	"context"
	"testing"

	"ecoride/internal/domain"
	"ecoride/internal/service"
)

// ──────────────────────────────────────────────
// IMPACT STATS
// ──────────────────────────────────────────────

func TestComputeStats_NoSession_AllZero(t *testing.T) {
	t.Parallel()

	l := newLedger()

	for _, token := range []string{"", "no-such-token"} {
		stats, err := l.statsSvc.ComputeStats(context.Background(), token)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if stats != (domain.ImpactStats{}) {
			t.Errorf("expected all-zero stats for token %q, got %+v", token, stats)
		}
	}
}

func TestComputeStats_AfterOneBooking(t *testing.T) {
	t.Parallel()

	l := newLedger()
	ctx := context.Background()

	_, driverToken, err := l.auth.Register(ctx, "Arjun Mehta", "arjun@example.com", "pw")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	_, passengerToken, err := l.auth.Register(ctx, "Priya Sharma", "priya@example.com", "pw")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	ride := offerRide(t, l, driverToken, 20, 2)
	if _, err := l.rideSvc.BookRide(ctx, passengerToken, ride.ID); err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	stats, err := l.statsSvc.ComputeStats(ctx, passengerToken)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if stats.TripsCount != 1 {
		t.Errorf("expected tripsCount 1, got %d", stats.TripsCount)
	}
	if stats.TotalMoneySaved != 120 {
		t.Errorf("expected totalMoneySaved 120, got %v", stats.TotalMoneySaved)
	}
	if stats.TotalKmShared != 20 {
		t.Errorf("expected totalKmShared 20, got %v", stats.TotalKmShared)
	}
	if stats.TotalCarbonSaved != 4.00 {
		t.Errorf("expected totalCarbonSaved 4.00, got %v", stats.TotalCarbonSaved)
	}
}

func TestComputeStats_OfferedRidesCountAsTrips(t *testing.T) {
	t.Parallel()

	l := newLedger()
	ctx := context.Background()

	_, driverToken, err := l.auth.Register(ctx, "Arjun Mehta", "arjun@example.com", "pw")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	offerRide(t, l, driverToken, 15, 2)
	offerRide(t, l, driverToken, 30, 2)

	stats, err := l.statsSvc.ComputeStats(ctx, driverToken)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// Two rides as driver, no bookings as passenger.
	if stats.TripsCount != 2 {
		t.Errorf("expected tripsCount 2, got %d", stats.TripsCount)
	}
	if stats.TotalMoneySaved != 240 {
		t.Errorf("expected totalMoneySaved 240, got %v", stats.TotalMoneySaved)
	}
	// Offering rides does not move cumulative distance/carbon; only booking
	// does.
	if stats.TotalKmShared != 0 || stats.TotalCarbonSaved != 0 {
		t.Errorf("expected zero cumulative totals, got %+v", stats)
	}
}

func TestComputeStats_UsesCache(t *testing.T) {
	t.Parallel()

	l := newLedger()
	ctx := context.Background()
	cache := NewMockStatsCache()
	statsSvc := service.NewStatsService(l.rides, l.bookings, l.sessions, cache)

	_, token, err := l.auth.Register(ctx, "Arjun Mehta", "arjun@example.com", "pw")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if _, err := statsSvc.ComputeStats(ctx, token); err != nil {
		t.Fatalf("first compute failed: %v", err)
	}
	if cache.SetCallCount != 1 {
		t.Errorf("expected 1 cache set, got %d", cache.SetCallCount)
	}

	// Second read is served from the cache.
	if _, err := statsSvc.ComputeStats(ctx, token); err != nil {
		t.Fatalf("second compute failed: %v", err)
	}
	if cache.SetCallCount != 1 {
		t.Errorf("expected cached read to skip recompute, sets=%d", cache.SetCallCount)
	}

	// Booking invalidates through the ride service.
	rideSvc := service.NewRideService(l.rides, l.bookings, l.users, l.sessions, l.locker, nil, cache)
	if _, err := rideSvc.CreateRide(ctx, token, service.CreateRideRequest{
		Origin: "A", Destination: "B", AvailableSeats: 1, DistanceKm: 10,
	}); err != nil {
		t.Fatalf("offer failed: %v", err)
	}
	if cache.InvalidateCallCount == 0 {
		t.Error("expected ride creation to invalidate cached stats")
	}

	stats, err := statsSvc.ComputeStats(ctx, token)
	if err != nil {
		t.Fatalf("compute after offer failed: %v", err)
	}
	if stats.TripsCount != 1 {
		t.Errorf("expected tripsCount 1 after offer, got %d", stats.TripsCount)
	}
}
