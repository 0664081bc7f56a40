package tests

import (
	"context"
	"errors"
	"testing"

	"ecoride/internal/domain"
	"ecoride/internal/repository"
	"ecoride/internal/service"
)

func offerRide(t *testing.T, l *ledger, token string, distanceKm float64, seats int) *domain.Ride {
	t.Helper()

	ride, err := l.rideSvc.CreateRide(context.Background(), token, service.CreateRideRequest{
		Origin:         "Koramangala",
		Destination:    "Whitefield",
		DepartureTime:  "Tomorrow 8:30 AM",
		AvailableSeats: seats,
		Price:          150,
		DistanceKm:     distanceKm,
	})
	if err != nil {
		t.Fatalf("failed to offer ride: %v", err)
	}
	return ride
}

// ──────────────────────────────────────────────
// RIDE CREATION
// ──────────────────────────────────────────────

func TestCreateRide_ComputesCarbonAndDenormalizesDriver(t *testing.T) {
	t.Parallel()

	l := newLedger()
	ctx := context.Background()

	driver, token, err := l.auth.Register(ctx, "Arjun Mehta", "arjun@example.com", "pw")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	ride := offerRide(t, l, token, 20, 3)

	if ride.CarbonSavedKg != 4.00 {
		t.Errorf("expected carbonSavedKg 4.00 for 20km, got %v", ride.CarbonSavedKg)
	}
	if ride.Status != domain.RideStatusActive {
		t.Errorf("expected status active, got %s", ride.Status)
	}
	if ride.DriverID != driver.ID || ride.DriverName != driver.Name || ride.DriverAvatar != driver.Avatar {
		t.Error("expected driver identity to be denormalized into the ride")
	}
}

func TestCreateRide_IdentifiersAreDistinct(t *testing.T) {
	t.Parallel()

	l := newLedger()
	ctx := context.Background()

	_, token, err := l.auth.Register(ctx, "Arjun Mehta", "arjun@example.com", "pw")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		ride := offerRide(t, l, token, 12.5, 2)
		if seen[ride.ID] {
			t.Fatalf("duplicate ride ID: %s", ride.ID)
		}
		seen[ride.ID] = true
	}

	rides, err := l.rideSvc.ListRides(ctx)
	if err != nil {
		t.Fatalf("failed to list rides: %v", err)
	}
	if len(rides) != 10 {
		t.Errorf("expected 10 rides, got %d", len(rides))
	}
}

func TestCreateRide_CarbonRoundsToTwoDecimals(t *testing.T) {
	t.Parallel()

	l := newLedger()
	ctx := context.Background()

	_, token, err := l.auth.Register(ctx, "Arjun Mehta", "arjun@example.com", "pw")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	// 17.77 * 0.2 = 3.554, rounds to 3.55.
	ride := offerRide(t, l, token, 17.77, 2)
	if ride.CarbonSavedKg != 3.55 {
		t.Errorf("expected carbonSavedKg 3.55, got %v", ride.CarbonSavedKg)
	}
}

func TestCreateRide_RequiresSession(t *testing.T) {
	t.Parallel()

	l := newLedger()

	_, err := l.rideSvc.CreateRide(context.Background(), "", service.CreateRideRequest{
		Origin:         "A",
		Destination:    "B",
		AvailableSeats: 2,
		DistanceKm:     10,
	})
	if !errors.Is(err, service.ErrNoSession) {
		t.Errorf("expected ErrNoSession, got: %v", err)
	}
}

func TestCreateRide_InvalidSpec_Rejected(t *testing.T) {
	t.Parallel()

	l := newLedger()
	ctx := context.Background()

	_, token, err := l.auth.Register(ctx, "Arjun Mehta", "arjun@example.com", "pw")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	testCases := []struct {
		name string
		req  service.CreateRideRequest
	}{
		{
			name: "zero seats",
			req:  service.CreateRideRequest{Origin: "A", Destination: "B", AvailableSeats: 0, DistanceKm: 10},
		},
		{
			name: "negative seats",
			req:  service.CreateRideRequest{Origin: "A", Destination: "B", AvailableSeats: -1, DistanceKm: 10},
		},
		{
			name: "zero distance",
			req:  service.CreateRideRequest{Origin: "A", Destination: "B", AvailableSeats: 2, DistanceKm: 0},
		},
		{
			name: "negative price",
			req:  service.CreateRideRequest{Origin: "A", Destination: "B", AvailableSeats: 2, DistanceKm: 10, Price: -5},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := l.rideSvc.CreateRide(ctx, token, tc.req)
			if !errors.Is(err, service.ErrInvalidRideSpec) {
				t.Errorf("expected ErrInvalidRideSpec, got: %v", err)
			}
		})
	}
}

// ──────────────────────────────────────────────
// RIDE LIFECYCLE
// ──────────────────────────────────────────────

func TestRideLifecycle_OwnerCanCompleteAndCancel(t *testing.T) {
	t.Parallel()

	l := newLedger()
	ctx := context.Background()

	_, token, err := l.auth.Register(ctx, "Arjun Mehta", "arjun@example.com", "pw")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	completed := offerRide(t, l, token, 10, 2)
	cancelled := offerRide(t, l, token, 10, 2)

	ride, err := l.rideSvc.CompleteRide(ctx, token, completed.ID)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if ride.Status != domain.RideStatusCompleted {
		t.Errorf("expected status completed, got %s", ride.Status)
	}

	ride, err = l.rideSvc.CancelRide(ctx, token, cancelled.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if ride.Status != domain.RideStatusCancelled {
		t.Errorf("expected status cancelled, got %s", ride.Status)
	}

	// A completed ride cannot transition again.
	if _, err := l.rideSvc.CancelRide(ctx, token, completed.ID); !errors.Is(err, service.ErrRideNotActive) {
		t.Errorf("expected ErrRideNotActive, got: %v", err)
	}
}

func TestRideLifecycle_NonOwnerRejected(t *testing.T) {
	t.Parallel()

	l := newLedger()
	ctx := context.Background()

	_, driverToken, err := l.auth.Register(ctx, "Arjun Mehta", "arjun@example.com", "pw")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	_, otherToken, err := l.auth.Register(ctx, "Priya Sharma", "priya@example.com", "pw")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	ride := offerRide(t, l, driverToken, 10, 2)

	if _, err := l.rideSvc.CompleteRide(ctx, otherToken, ride.ID); !errors.Is(err, service.ErrNotRideOwner) {
		t.Errorf("expected ErrNotRideOwner, got: %v", err)
	}
}

func TestGetRide_UnknownID_NotFound(t *testing.T) {
	t.Parallel()

	l := newLedger()

	_, err := l.rideSvc.GetRide(context.Background(), "no-such-ride")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}
