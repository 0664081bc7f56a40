package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"ecoride/internal/store"
)

const collectionKeyPrefix = "collection:"

// RecordStore is a Redis implementation of store.Store. Each collection is
// held in a single string key, mirroring the one-key-per-collection layout
// the ledger was designed around.
type RecordStore struct {
	client *redis.Client
}

// NewRecordStore creates a new RecordStore.
func NewRecordStore(client *redis.Client) *RecordStore {
	return &RecordStore{client: client}
}

// Read returns the serialized contents of a collection.
func (s *RecordStore) Read(ctx context.Context, collection string) ([]byte, error) {
	data, err := s.client.Get(ctx, collectionKeyPrefix+collection).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, store.ErrNoCollection
		}
		return nil, err
	}
	return data, nil
}

// Write replaces the serialized contents of a collection. Collections have no
// TTL; they are the system of record, not a cache.
func (s *RecordStore) Write(ctx context.Context, collection string, data []byte) error {
	return s.client.Set(ctx, collectionKeyPrefix+collection, data, 0).Err()
}

// Delete removes a collection entirely.
func (s *RecordStore) Delete(ctx context.Context, collection string) error {
	return s.client.Del(ctx, collectionKeyPrefix+collection).Err()
}
