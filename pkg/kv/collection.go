package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ReadAll unmarshals the collection stored under key. A missing key yields an
// empty collection, never an error.
func ReadAll[T any](ctx context.Context, store Store, key string) ([]T, error) {
	blob, err := store.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, fmt.Errorf("decoding collection %q: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// WriteAll replaces the collection stored under key.
func WriteAll[T any](ctx context.Context, store Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding collection %q: %w", key, err)
	}
	return store.Set(ctx, key, blob)
}
