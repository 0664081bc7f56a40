// Package record implements the typed repositories on top of the record
// store: each repository serializes its whole collection as one JSON list,
// the format the ledger has always persisted.
package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ecoride/internal/store"
)

// readList loads and decodes a collection. A collection that was never
// written decodes as an empty list.
func readList[T any](ctx context.Context, s store.Store, collection string) ([]T, error) {
	data, err := s.Read(ctx, collection)
	if err != nil {
		if errors.Is(err, store.ErrNoCollection) {
			return nil, nil
		}
		return nil, err
	}

	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", collection, err)
	}
	return list, nil
}

// writeList encodes and stores a collection.
func writeList[T any](ctx context.Context, s store.Store, collection string, list []T) error {
	if list == nil {
		list = []T{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", collection, err)
	}
	return s.Write(ctx, collection, data)
}
