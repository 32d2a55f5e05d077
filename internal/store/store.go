// Package store persists wallet records and the master password record in a
// string key-value store.
package store

import (
	"context"
)

// Writer stages writes inside a Batch
type Writer interface {
	Set(key, value string) error
	Delete(key string) error
}

// KV is the key-value collaborator behind the wallet store.
type KV interface {
	// Get returns the value at key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Keys lists keys with the given prefix in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Batch applies every write made by fn atomically, or none if fn fails.
	Batch(ctx context.Context, fn func(w Writer) error) error
	Close() error
}
