package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"ecoride/internal/domain"
	"ecoride/internal/repository"
)

// carbonPerKm is the fixed emission-factor heuristic: kilograms of CO2
// avoided per shared kilometer versus a solo car trip.
const carbonPerKm = 0.2

// bookingLockTTL bounds how long a crashed booking can hold a ride lock.
const bookingLockTTL = 5 * time.Second

// RideLocker serializes bookings per ride. Implemented by the Redis lock
// store and by an in-process locker for stores without one.
type RideLocker interface {
	AcquireRideLock(ctx context.Context, rideID string, ttl time.Duration) (bool, error)
	ReleaseRideLock(ctx context.Context, rideID string) error
}

// StatsCache caches computed impact stats. Implemented by the Redis cache
// store; optional.
type StatsCache interface {
	GetStats(ctx context.Context, userID string) (*domain.ImpactStats, error)
	SetStats(ctx context.Context, userID string, stats *domain.ImpactStats) error
	InvalidateStats(ctx context.Context, userID string) error
}

// RideService handles ride offering, booking and lifecycle.
type RideService struct {
	rides               repository.RideRepository
	bookings            repository.BookingRepository
	users               repository.UserRepository
	sessions            repository.SessionStore
	locker              RideLocker
	notificationService *NotificationService
	statsCache          StatsCache
}

// NewRideService creates a new RideService. locker, notificationService and
// statsCache may be nil.
func NewRideService(
	rides repository.RideRepository,
	bookings repository.BookingRepository,
	users repository.UserRepository,
	sessions repository.SessionStore,
	locker RideLocker,
	notificationService *NotificationService,
	statsCache StatsCache,
) *RideService {
	return &RideService{
		rides:               rides,
		bookings:            bookings,
		users:               users,
		sessions:            sessions,
		locker:              locker,
		notificationService: notificationService,
		statsCache:          statsCache,
	}
}

// ListRides returns all rides in insertion order, regardless of status.
// Callers filter by status and seat count as needed.
func (s *RideService) ListRides(ctx context.Context) ([]domain.Ride, error) {
	return s.rides.GetAll(ctx)
}

// GetRide returns a single ride by ID.
func (s *RideService) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	rides, err := s.rides.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rides {
		if rides[i].ID == rideID {
			return &rides[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

// ListBookings returns all bookings in insertion order.
func (s *RideService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.GetAll(ctx)
}

// CreateRideRequest contains the parameters for offering a ride.
type CreateRideRequest struct {
	Origin         string
	Destination    string
	DepartureTime  string
	AvailableSeats int
	Price          float64
	DistanceKm     float64
}

// CreateRide offers a new ride on behalf of the session user. Driver
// identity is denormalized into the ride record at creation time.
func (s *RideService) CreateRide(ctx context.Context, token string, req CreateRideRequest) (*domain.Ride, error) {
	driver, err := s.sessionUser(ctx, token)
	if err != nil {
		return nil, err
	}

	if req.AvailableSeats <= 0 || req.DistanceKm <= 0 || req.Price < 0 {
		return nil, ErrInvalidRideSpec
	}

	ride := domain.Ride{
		ID:             uuid.New().String(),
		DriverID:       driver.ID,
		DriverName:     driver.Name,
		DriverAvatar:   driver.Avatar,
		Origin:         req.Origin,
		Destination:    req.Destination,
		DepartureTime:  req.DepartureTime,
		AvailableSeats: req.AvailableSeats,
		Price:          req.Price,
		DistanceKm:     req.DistanceKm,
		CarbonSavedKg:  round2(req.DistanceKm * carbonPerKm),
		Status:         domain.RideStatusActive,
	}

	if err := s.rides.Append(ctx, ride); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyRideCreated(ctx, &ride)
	}

	// Offering a ride counts as a trip in the driver's stats.
	s.invalidateStats(ctx, driver.ID)

	return &ride, nil
}

// BookRide reserves one seat on a ride for the session user. The write order
// is fixed: rides, bookings, users, session. A partial failure over-reserves
// a booking rather than losing a seat.
func (s *RideService) BookRide(ctx context.Context, token, rideID string) (*domain.Booking, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	passenger, err := s.sessionUser(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.locker != nil {
		ok, err := s.locker.AcquireRideLock(ctx, rideID, bookingLockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrRideLocked
		}
		defer func() {
			_ = s.locker.ReleaseRideLock(ctx, rideID)
		}()
	}

	rides, err := s.rides.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range rides {
		if rides[i].ID == rideID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, repository.ErrNotFound
	}

	ride := &rides[idx]
	if ride.Status != domain.RideStatusActive {
		return nil, ErrRideNotActive
	}
	if ride.AvailableSeats <= 0 {
		return nil, ErrNoSeatsAvailable
	}

	ride.AvailableSeats--
	if err := s.rides.ReplaceAll(ctx, rides); err != nil {
		return nil, err
	}

	booking := domain.Booking{
		ID:          uuid.New().String(),
		RideID:      ride.ID,
		PassengerID: passenger.ID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.bookings.Append(ctx, booking); err != nil {
		return nil, err
	}

	// Accumulate the passenger's lifetime totals.
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == passenger.ID {
			users[i].TotalKm += ride.DistanceKm
			users[i].TotalCarbonSaved += ride.CarbonSavedKg
			if err := s.users.ReplaceAll(ctx, users); err != nil {
				return nil, err
			}
			if err := s.sessions.RefreshUser(ctx, users[i]); err != nil {
				return nil, err
			}
			break
		}
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyBookingConfirmed(ctx, &booking, ride, passenger)
		if ride.AvailableSeats == 0 {
			_ = s.notificationService.NotifyRideSoldOut(ctx, ride)
		}
	}

	s.invalidateStats(ctx, passenger.ID)

	return &booking, nil
}

// CompleteRide marks an active ride as completed. Only the offering driver
// may do this.
func (s *RideService) CompleteRide(ctx context.Context, token, rideID string) (*domain.Ride, error) {
	return s.transition(ctx, token, rideID, domain.RideStatusCompleted)
}

// CancelRide marks an active ride as cancelled. Only the offering driver may
// do this. Existing bookings and accumulated stats are left untouched.
func (s *RideService) CancelRide(ctx context.Context, token, rideID string) (*domain.Ride, error) {
	return s.transition(ctx, token, rideID, domain.RideStatusCancelled)
}

func (s *RideService) transition(ctx context.Context, token, rideID string, to domain.RideStatus) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	user, err := s.sessionUser(ctx, token)
	if err != nil {
		return nil, err
	}

	rides, err := s.rides.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range rides {
		if rides[i].ID != rideID {
			continue
		}
		if rides[i].DriverID != user.ID {
			return nil, ErrNotRideOwner
		}
		if rides[i].Status != domain.RideStatusActive {
			return nil, ErrRideNotActive
		}

		rides[i].Status = to
		if err := s.rides.ReplaceAll(ctx, rides); err != nil {
			return nil, err
		}

		if s.notificationService != nil {
			_ = s.notificationService.NotifyRideStatusChanged(ctx, &rides[i])
		}

		return &rides[i], nil
	}

	return nil, repository.ErrNotFound
}

func (s *RideService) sessionUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	user, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	return user, nil
}

func (s *RideService) invalidateStats(ctx context.Context, userID string) {
	if s.statsCache != nil {
		_ = s.statsCache.InvalidateStats(ctx, userID)
	}
}

// round2 rounds to two decimal places, the precision the ledger stores for
// carbon figures.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
