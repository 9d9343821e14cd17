// Package metadata stores small key/value records in the local client
// database. The session token and the cached user record live here.
package metadata

import (
	"context"
	"errors"
)

// ErrEmptyKey is returned when a write is attempted with an empty key.
var ErrEmptyKey = errors.New("metadata key is empty")

// Repository is a flat key/value table. Get on a missing key returns
// (nil, nil); Delete and Clear are idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
