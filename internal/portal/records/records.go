// Package records layers typed, ordered JSON collections on top of the blob
// KV substrate. One key holds one collection, encoded as a JSON array of flat
// records. Reads are fail-soft: an absent key, an unreadable value, or a
// substrate error all degrade to an empty collection rather than an error, so
// a single poisoned key can never take the whole portal down.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/myhealth/portal/internal/portal/store"
	"github.com/myhealth/portal/pkg/slogx"
)

// Record is implemented by collection element types. Valid reports whether a
// decoded record is structurally usable; invalid records are skipped on read
// instead of propagating into domain logic.
type Record interface {
	Valid() bool
}

// Store wraps a KV with per-key write serialization. Every mutation of a
// collection is a read-modify-write cycle; without the per-key lock two
// concurrent writers would silently lose one writer's changes (classic
// lost-update race). The lock makes this Store the single owning coordinator
// for its keys within one process.
type Store struct {
	kv store.KV

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(kv store.KV) *Store {
	return &Store{
		kv:    kv,
		locks: make(map[string]*sync.Mutex),
	}
}

// KV exposes the underlying substrate for scalar (non-collection) values.
func (s *Store) KV() store.KV { return s.kv }

func (s *Store) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// Read returns the collection under key in stored (append) order. Missing or
// corrupt data yields an empty slice, never an error. Individual records that
// fail to decode or fail their validity check are skipped and logged.
func Read[T Record](ctx context.Context, s *Store, key string) []T {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Warn("records: unreadable key, treating as empty",
				"key", key, "err", err)
		}
		return []T{}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		slogx.FromContext(ctx).Warn("records: corrupt collection, treating as empty",
			"key", key, "err", err)
		return []T{}
	}

	out := make([]T, 0, len(elems))
	for i, e := range elems {
		var rec T
		if err := json.Unmarshal(e, &rec); err != nil {
			slogx.FromContext(ctx).Warn("records: skipping undecodable record",
				"key", key, "index", i, "err", err)
			continue
		}
		if !rec.Valid() {
			slogx.FromContext(ctx).Warn("records: skipping invalid record",
				"key", key, "index", i)
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Write replaces the whole collection under key.
func Write[T any](ctx context.Context, s *Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, raw)
}

// Update runs one read-modify-write cycle under the key's lock. fn receives
// the current collection and returns the collection to persist.
func Update[T Record](ctx context.Context, s *Store, key string, fn func([]T) []T) error {
	l := s.keyLock(key)
	l.Lock()
	defer l.Unlock()

	items := Read[T](ctx, s, key)
	return Write(ctx, s, key, fn(items))
}
