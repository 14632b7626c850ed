package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KV.Get when no document is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// KV is a durable key-value store of whole documents. Writes replace the
// previous value entirely; there are no partial updates.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
