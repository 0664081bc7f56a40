package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ecoride/internal/store"
)

// RecordStore is a PostgreSQL implementation of store.Store. Collections are
// kept as serialized blobs in a single table, preserving the record store's
// one-value-per-collection contract.
type RecordStore struct {
	q Querier
}

var _ store.Store = (*RecordStore)(nil)

// NewRecordStore creates a new PostgreSQL record store.
func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{q: db}
}

// EnsureSchema creates the collections table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS collections (
			name       TEXT PRIMARY KEY,
			data       BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	_, err := db.ExecContext(ctx, query)
	return err
}

// Read returns the serialized contents of a collection.
func (s *RecordStore) Read(ctx context.Context, collection string) ([]byte, error) {
	query := `SELECT data FROM collections WHERE name = $1`

	var data []byte
	err := s.q.QueryRowContext(ctx, query, collection).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNoCollection
		}
		return nil, err
	}
	return data, nil
}

// Write replaces the serialized contents of a collection.
func (s *RecordStore) Write(ctx context.Context, collection string, data []byte) error {
	query := `
		INSERT INTO collections (name, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`
	_, err := s.q.ExecContext(ctx, query, collection, data)
	return err
}

// Delete removes a collection entirely.
func (s *RecordStore) Delete(ctx context.Context, collection string) error {
	query := `DELETE FROM collections WHERE name = $1`
	_, err := s.q.ExecContext(ctx, query, collection)
	return err
}
