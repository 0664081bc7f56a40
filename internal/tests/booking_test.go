package tests

import (
	"context"
	"errors"
	"testing"

	"ecoride/internal/repository"
	"ecoride/internal/service"
)

// ──────────────────────────────────────────────
// BOOKING
// ──────────────────────────────────────────────

func TestBookRide_LastSeat_SecondBookingFails(t *testing.T) {
	t.Parallel()

	l := newLedger()
	ctx := context.Background()

	_, driverToken, err := l.auth.Register(ctx, "Arjun Mehta", "arjun@example.com", "pw")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	passenger, passengerToken, err := l.auth.Register(ctx, "Priya Sharma", "priya@example.com", "pw")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	ride := offerRide(t, l, driverToken, 20, 1)

	booking, err := l.rideSvc.BookRide(ctx, passengerToken, ride.ID)
	if err != nil {
		t.Fatalf("expected booking to succeed, got: %v", err)
	}
	if booking.RideID != ride.ID || booking.PassengerID != passenger.ID {
		t.Error("booking does not reference the right ride and passenger")
	}

	updated, err := l.rideSvc.GetRide(ctx, ride.ID)
	if err != nil {
		t.Fatalf("failed to reload ride: %v", err)
	}
	if updated.AvailableSeats != 0 {
		t.Errorf("expected 0 seats left, got %d", updated.AvailableSeats)
	}

	// Seat count has floor 0; a second booking must fail and record nothing.
	if _, err := l.rideSvc.BookRide(ctx, passengerToken, ride.ID); !errors.Is(err, service.ErrNoSeatsAvailable) {
		t.Errorf("expected ErrNoSeatsAvailable, got: %v", err)
	}

	bookings, err := l.rideSvc.ListBookings(ctx)
	if err != nil {
		t.Fatalf("failed to list bookings: %v", err)
	}
	if len(bookings) != 1 {
		t.Errorf("expected exactly 1 booking, got %d", len(bookings))
	}
}

func TestBookRide_AccumulatesPassengerTotals(t *testing.T) {
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

	ride := offerRide(t, l, driverToken, 20, 3)

	if _, err := l.rideSvc.BookRide(ctx, passengerToken, ride.ID); err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	// The session snapshot reflects the new totals immediately.
	current, err := l.auth.CurrentUser(ctx, passengerToken)
	if err != nil {
		t.Fatalf("failed to read session: %v", err)
	}
	if current.TotalKm != 20 {
		t.Errorf("expected TotalKm 20, got %v", current.TotalKm)
	}
	if current.TotalCarbonSaved != 4.00 {
		t.Errorf("expected TotalCarbonSaved 4.00, got %v", current.TotalCarbonSaved)
	}

	// And so does the user collection.
	users, err := l.users.GetAll(ctx)
	if err != nil {
		t.Fatalf("failed to list users: %v", err)
	}
	for _, u := range users {
		if u.Email == "priya@example.com" && (u.TotalKm != 20 || u.TotalCarbonSaved != 4.00) {
			t.Errorf("user collection not updated: km=%v carbon=%v", u.TotalKm, u.TotalCarbonSaved)
		}
	}
}

func TestBookRide_NoSession_MutatesNothing(t *testing.T) {
	t.Parallel()

	l := newLedger()
	ctx := context.Background()

	_, driverToken, err := l.auth.Register(ctx, "Arjun Mehta", "arjun@example.com", "pw")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	ride := offerRide(t, l, driverToken, 20, 2)

	if _, err := l.rideSvc.BookRide(ctx, "", ride.ID); !errors.Is(err, service.ErrNoSession) {
		t.Errorf("expected ErrNoSession, got: %v", err)
	}

	updated, err := l.rideSvc.GetRide(ctx, ride.ID)
	if err != nil {
		t.Fatalf("failed to reload ride: %v", err)
	}
	if updated.AvailableSeats != 2 {
		t.Errorf("expected seats unchanged at 2, got %d", updated.AvailableSeats)
	}

	bookings, err := l.rideSvc.ListBookings(ctx)
	if err != nil {
		t.Fatalf("failed to list bookings: %v", err)
	}
	if len(bookings) != 0 {
		t.Errorf("expected no bookings, got %d", len(bookings))
	}
}

func TestBookRide_UnknownRide_NotFound(t *testing.T) {
	t.Parallel()

	l := newLedger()
	ctx := context.Background()

	_, token, err := l.auth.Register(ctx, "Priya Sharma", "priya@example.com", "pw")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if _, err := l.rideSvc.BookRide(ctx, token, "no-such-ride"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestBookRide_CancelledRide_Rejected(t *testing.T) {
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
	if _, err := l.rideSvc.CancelRide(ctx, driverToken, ride.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if _, err := l.rideSvc.BookRide(ctx, passengerToken, ride.ID); !errors.Is(err, service.ErrRideNotActive) {
		t.Errorf("expected ErrRideNotActive, got: %v", err)
	}
}

func TestBookRide_LockHeld_Rejected(t *testing.T) {
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

	l.locker.DenyAll = true
	if _, err := l.rideSvc.BookRide(ctx, passengerToken, ride.ID); !errors.Is(err, service.ErrRideLocked) {
		t.Errorf("expected ErrRideLocked, got: %v", err)
	}

	l.locker.DenyAll = false
	if _, err := l.rideSvc.BookRide(ctx, passengerToken, ride.ID); err != nil {
		t.Fatalf("expected booking to succeed once lock is free, got: %v", err)
	}

	if l.locker.ReleaseCallCount != 1 {
		t.Errorf("expected exactly 1 lock release, got %d", l.locker.ReleaseCallCount)
	}
}
