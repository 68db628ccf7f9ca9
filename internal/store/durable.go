package store

import (
	"context"
	"errors"
	"fmt"

	"arete/coaching-app/internal/cache"
)

// Durable is the dual-write store for a remote-backed collection. The
// remote store is the source of truth; the cache entry is overwritten
// (not merged) after every successful remote interaction.
type Durable[T Record] struct {
	collection string
	remote     RemoteCollection[T]
	cache      *cache.Cache
}

// NewDurable wires a durable store for a collection. The collection must
// be registered with TierDurable; anything else is a programming error.
func NewDurable[T Record](collection string, remote RemoteCollection[T], c *cache.Cache) *Durable[T] {
	if TierOf(collection) != TierDurable {
		panic(fmt.Sprintf("store: collection %q is not registered as durable", collection))
	}
	return &Durable[T]{collection: collection, remote: remote, cache: c}
}

// Write persists the record remotely, then mirrors it into the cache.
// On remote failure the cache is left untouched and the write reports
// ErrRemoteUnavailable; callers see the failure instead of a silently
// diverged cache.
func (s *Durable[T]) Write(ctx context.Context, rec T) error {
	if err := s.remote.Set(ctx, rec); err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	s.cache.Put(s.collection, rec.RecordID(), rec)
	return nil
}

// Read fetches the record from the remote store, refreshing the cache on
// a hit. When the remote store cannot serve the read (missing record or
// unreachable), the cached copy is returned instead; only when both
// sides come up empty does the caller get an error: ErrNotFound for a
// confirmed miss, ErrRemoteUnavailable when the remote could not be
// consulted at all.
func (s *Durable[T]) Read(ctx context.Context, id string) (T, error) {
	rec, remoteErr := s.remote.Get(ctx, id)
	if remoteErr == nil {
		s.cache.Put(s.collection, id, rec)
		return rec, nil
	}

	if v, ok := s.cache.Get(s.collection, id); ok {
		return v.(T), nil
	}

	var zero T
	if errors.Is(remoteErr, ErrNotFound) {
		return zero, ErrNotFound
	}
	return zero, fmt.Errorf("%w: %v", ErrRemoteUnavailable, remoteErr)
}

// ReadAll lists the whole collection from the remote store, replacing
// the cached collection wholesale on success. On remote failure the
// cached snapshot is served; an empty cache plus an unreachable remote
// is reported as ErrRemoteUnavailable.
func (s *Durable[T]) ReadAll(ctx context.Context) ([]T, error) {
	recs, remoteErr := s.remote.List(ctx)
	if remoteErr == nil {
		entries := make([]cache.Entry, len(recs))
		for i, r := range recs {
			entries[i] = cache.Entry{ID: r.RecordID(), Value: r}
		}
		s.cache.ReplaceAll(s.collection, entries)
		return recs, nil
	}

	snapshot := s.cache.Snapshot(s.collection)
	if len(snapshot) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, remoteErr)
	}
	out := make([]T, len(snapshot))
	for i, e := range snapshot {
		out[i] = e.Value.(T)
	}
	return out, nil
}
