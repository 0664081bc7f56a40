package service

import (
	"context"
	"errors"

	"ecoride/internal/domain"
	"ecoride/internal/repository"
)

// moneySavedPerTrip is the flat per-trip savings heuristic, in currency
// units. Deliberately not derived from actual ride prices.
const moneySavedPerTrip = 120

// StatsService computes per-user environmental impact statistics.
type StatsService struct {
	rides    repository.RideRepository
	bookings repository.BookingRepository
	sessions repository.SessionStore
	cache    StatsCache
}

// NewStatsService creates a new StatsService. cache may be nil.
func NewStatsService(
	rides repository.RideRepository,
	bookings repository.BookingRepository,
	sessions repository.SessionStore,
	cache StatsCache,
) *StatsService {
	return &StatsService{
		rides:    rides,
		bookings: bookings,
		sessions: sessions,
		cache:    cache,
	}
}

// ComputeStats derives impact stats for the session user. Without a session
// it returns all-zero stats and no error.
//
// Carbon and distance totals come straight from the user's cumulative fields,
// so they cover the user's whole booking history including any seeded value.
// Trip count is recomputed from bookings (as passenger) plus rides (as
// driver).
func (s *StatsService) ComputeStats(ctx context.Context, token string) (domain.ImpactStats, error) {
	if token == "" {
		return domain.ImpactStats{}, nil
	}

	user, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ImpactStats{}, nil
		}
		return domain.ImpactStats{}, err
	}

	if s.cache != nil {
		if cached, err := s.cache.GetStats(ctx, user.ID); err == nil && cached != nil {
			return *cached, nil
		}
	}

	bookings, err := s.bookings.GetAll(ctx)
	if err != nil {
		return domain.ImpactStats{}, err
	}
	rides, err := s.rides.GetAll(ctx)
	if err != nil {
		return domain.ImpactStats{}, err
	}

	trips := 0
	for _, b := range bookings {
		if b.PassengerID == user.ID {
			trips++
		}
	}
	for _, r := range rides {
		if r.DriverID == user.ID {
			trips++
		}
	}

	stats := domain.ImpactStats{
		TotalCarbonSaved: user.TotalCarbonSaved,
		TotalKmShared:    user.TotalKm,
		TotalMoneySaved:  float64(trips * moneySavedPerTrip),
		TripsCount:       trips,
	}

	if s.cache != nil {
		_ = s.cache.SetStats(ctx, user.ID, &stats)
	}

	return stats, nil
}
