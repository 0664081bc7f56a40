package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"ecoride/internal/domain"
)

// StatsCacheTTL bounds staleness of cached impact stats. Stats change only on
// booking or ride creation, both of which invalidate explicitly; the TTL is a
// backstop.
const StatsCacheTTL = 60 * time.Second

const statsCachePrefix = "cache:stats:"

// CacheStore caches computed impact statistics in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// GetStats retrieves cached stats for a user. Returns nil on cache miss.
func (s *CacheStore) GetStats(ctx context.Context, userID string) (*domain.ImpactStats, error) {
	data, err := s.client.Get(ctx, statsCachePrefix+userID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var stats domain.ImpactStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SetStats stores computed stats for a user.
func (s *CacheStore) SetStats(ctx context.Context, userID string, stats *domain.ImpactStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, statsCachePrefix+userID, data, StatsCacheTTL).Err()
}

// InvalidateStats removes a user's cached stats.
func (s *CacheStore) InvalidateStats(ctx context.Context, userID string) error {
	return s.client.Del(ctx, statsCachePrefix+userID).Err()
}
