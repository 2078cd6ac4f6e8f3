// Package kvstore provides the client-persisted key-value state shared by the
// checkout flow, the session manager and the payment poller.
package kvstore

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned when a key has no value in the store.
var ErrKeyNotFound = errors.New("key not found")

// Store is a process-wide string key-value store with explicit lifecycle.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
