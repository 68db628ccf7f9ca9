package store

import (
	"fmt"

	"arete/coaching-app/internal/cache"
)

// Local is the store for a cache-only collection. All operations are
// synchronous and never touch the remote store; clearing the cache loses
// the data. Callers supply globally-unique ids (uuid); Append performs
// no uniqueness check.
type Local[T Record] struct {
	collection string
	cache      *cache.Cache
}

// NewLocal wires a local-only store. The collection must be registered
// with TierEphemeral.
func NewLocal[T Record](collection string, c *cache.Cache) *Local[T] {
	if TierOf(collection) != TierEphemeral {
		panic(fmt.Sprintf("store: collection %q is not registered as ephemeral", collection))
	}
	return &Local[T]{collection: collection, cache: c}
}

// Append adds the record to the collection.
func (s *Local[T]) Append(rec T) {
	s.cache.Append(s.collection, rec.RecordID(), rec)
}

// Update overwrites the record stored under its id, reporting whether an
// existing entry was found.
func (s *Local[T]) Update(rec T) bool {
	if _, ok := s.cache.Get(s.collection, rec.RecordID()); !ok {
		return false
	}
	s.cache.Put(s.collection, rec.RecordID(), rec)
	return true
}

// Get returns the record stored under id.
func (s *Local[T]) Get(id string) (T, bool) {
	v, ok := s.cache.Get(s.collection, id)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Filter returns the records matching keep, in insertion order.
func (s *Local[T]) Filter(keep func(T) bool) []T {
	entries := s.cache.Snapshot(s.collection)
	var out []T
	for _, e := range entries {
		rec := e.Value.(T)
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// All returns every record in the collection, in insertion order.
func (s *Local[T]) All() []T {
	return s.Filter(func(T) bool { return true })
}
