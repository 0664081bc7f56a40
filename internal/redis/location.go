package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const userLocationKey = "users:locations"

// UserLocation represents a user's last reported position. It is only used
// as grounding input for route suggestions, never for matching.
type UserLocation struct {
	UserID string
	Lat    float64
	Lng    float64
}

// LocationStore handles user location operations in Redis.
type LocationStore struct {
	client *redis.Client
}

// NewLocationStore creates a new LocationStore.
func NewLocationStore(client *redis.Client) *LocationStore {
	return &LocationStore{client: client}
}

// UpdateLocation stores a user's location using GEOADD.
func (s *LocationStore) UpdateLocation(ctx context.Context, userID string, lat, lng float64) error {
	return s.client.GeoAdd(ctx, userLocationKey, &redis.GeoLocation{
		Name:      userID,
		Longitude: lng,
		Latitude:  lat,
	}).Err()
}

// GetLocation returns a user's last reported position, or nil if none was
// ever recorded.
func (s *LocationStore) GetLocation(ctx context.Context, userID string) (*UserLocation, error) {
	positions, err := s.client.GeoPos(ctx, userLocationKey, userID).Result()
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 || positions[0] == nil {
		return nil, nil
	}
	return &UserLocation{
		UserID: userID,
		Lat:    positions[0].Latitude,
		Lng:    positions[0].Longitude,
	}, nil
}

// RemoveLocation removes a user's location from the geo index.
func (s *LocationStore) RemoveLocation(ctx context.Context, userID string) error {
	return s.client.ZRem(ctx, userLocationKey, userID).Err()
}
