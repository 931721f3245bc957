// Package store holds the key-value backends articles are persisted in.
package store

import (
	"context"
	"errors"
)

// ErrClosed is returned by a Memory store after Close.
var ErrClosed = errors.New("store: closed")

// Store is a hash-oriented key-value store. Every key in the store's key
// space holds one hash of named string fields.
type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	// WriteFields creates or overwrites the given fields under key in one write.
	WriteFields(ctx context.Context, key string, fields map[string]string) error
	WriteField(ctx context.Context, key, field, value string) error
	// ReadFields returns all fields under key, an empty map if key is absent.
	ReadFields(ctx context.Context, key string) (map[string]string, error)
	Delete(ctx context.Context, key string) error
	ListKeys(ctx context.Context) ([]string, error)
	Close() error
}
