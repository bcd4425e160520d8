package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("store: not found")

// KV is the root persistence substrate. Concrete drivers (sqlite, memory)
// implement this. Every logical collection in the portal lives under one
// opaque string key whose value is an encoded blob; the substrate knows
// nothing about what the blobs contain.
//
// Get returns ErrNotFound when nothing has been written under key. Set fully
// replaces any prior value (no partial or merge semantics). Delete on an
// absent key is a no-op.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// ApplyMigrations prepares the underlying schema. Drivers without a
	// schema treat this as a no-op.
	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the substrate is still reachable.
	Ping(ctx context.Context) error
}
