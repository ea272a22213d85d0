package kv

import (
	"context"
	"errors"
)

// Collection keys used by the portal. Every collection is one JSON array
// under its namespaced key.
const (
	KeyUsers    = "users"
	KeyBrands   = "brands"
	KeyProducts = "products"
	KeyOrders   = "orders"
)

// ErrKeyNotFound signals a key with no stored blob. Collection readers treat
// it as an empty collection, never as a failure.
var ErrKeyNotFound = errors.New("kv: key not found")

// Store is the namespaced key-value substrate holding all collections. It is
// opened once at startup and passed by handle to the data-access services,
// which keeps tests free to swap in the in-memory implementation.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
