package storage

import (
	"context"
	"errors"
)

// ErrNotFound reports a missing key.
var ErrNotFound = errors.New("key not found")

// KV abstracts the durable key-value store backing all collections.
// Implementations can be file-based, Redis, etc. Values are opaque strings
// (serialized JSON). Get must return ErrNotFound for a missing key.
// Implementations must be safe for concurrent use.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
