package kvstore

import (
	"context"
	"errors"
)

// ErrUnknownBackend is returned by Open when the configured backend name is not recognised.
var ErrUnknownBackend = errors.New("unknown storage backend")

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store closed")

// Store is a string key-value store. Get reports whether the key exists; a
// missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
