// Package store persists luna values under string keys, giving scripts a
// durable key-value surface across runs.
//
// Values are msgpack-encoded through their dynamic (JSON-shaped) form, so
// only the convertible kinds survive storage; error values round-trip as
// nil. The package ships a BadgerDB-backed implementation for persistent
// use and an in-memory implementation for tests and ephemeral runs.
package store

import (
	"context"
	"errors"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/smallfx/luna/pkg/luna"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("store: not found")

// Store is a key-value store for script values.
type Store interface {
	// Get retrieves the value for a key. Returns ErrNotFound if absent.
	Get(ctx context.Context, key string) (luna.Value, error)

	// Put stores a value under key, overwriting any existing value.
	Put(ctx context.Context, key string, v luna.Value) error

	// Delete removes a key. No error if the key does not exist.
	Delete(ctx context.Context, key string) error

	// Keys lists all keys starting with prefix, in lexicographic order.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}

// encode serializes a value for storage.
func encode(v luna.Value) ([]byte, error) {
	return msgpack.Marshal(luna.ToAny(v))
}

// decode deserializes a stored value.
func decode(data []byte) (luna.Value, error) {
	var raw any
	if err := msgpack.Unmarshal(data, &raw); err != nil {
		return luna.Nil(), err
	}
	return luna.FromAny(raw), nil
}
