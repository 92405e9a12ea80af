package store

import (
	"context"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore is a narrow key–value interface with string keys and byte values.
// Durations are given in seconds, zero meaning "no expiration".
type IStore interface {
	// Set inserts or updates a key–value pair without expiration.
	Set(ctx context.Context, key string, value []byte) (err error)
	// SetE inserts or updates a key–value pair that is deleted after expireIn seconds.
	SetE(ctx context.Context, key string, value []byte, expireIn uint64) (err error)
	// SetEIfUnset inserts a key–value pair if the key does not exist.
	// If the key already exists the old value and expiration are kept and stored is false.
	SetEIfUnset(ctx context.Context, key string, value []byte, expireIn uint64) (stored bool, err error)
	// Expire deletes the key after expireIn seconds (immediately for zero).
	// ok is false if the key does not exist.
	Expire(ctx context.Context, key string, expireIn uint64) (ok bool, err error)
	// Delete deletes a key–value pair. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) (err error)
	// DeleteIfEqual atomically deletes the key if its value equals expected.
	// deleted is false if the key is missing or holds another value.
	DeleteIfEqual(ctx context.Context, key string, expected []byte) (deleted bool, err error)
	// Get returns the value for a key. The boolean return value indicates whether a value for the key was found.
	Get(ctx context.Context, key string) (value []byte, loaded bool, err error)
	// Has returns whether a key exists in the store.
	Has(ctx context.Context, key string) (loaded bool, err error)
	// GetDBInfo returns metadata about the database underlying the store.
	GetDBInfo(ctx context.Context) (info DatabaseInfo, err error)
}

// DatabaseInfo describes the database behind a store
type DatabaseInfo struct {
	Keys     int64  `json:"keys"`
	Topology string `json:"topology"`
	Pooled   bool   `json:"pooled"`
}
