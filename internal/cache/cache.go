// Package cache implements the process-local collection store: a
// mutex-guarded map from collection name to an ordered list of records.
// A Cache is constructed at startup and passed to the stores that need
// it; there is no package-level instance, so tests get isolation from a
// fresh Cache per test.
package cache

import (
	"sync"
)

// Entry pairs a record with the id it is stored under.
type Entry struct {
	ID    string
	Value any
}

// Cache is the local store of named collections. All collections start
// empty. Writes replace whole entries; there is no merging.
type Cache struct {
	mu          sync.RWMutex
	collections map[string][]Entry
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{collections: make(map[string][]Entry)}
}

// Put overwrites the entry with the given id, or appends it if the
// collection has no entry under that id yet.
func (c *Cache) Put(collection, id string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.collections[collection]
	for i := range entries {
		if entries[i].ID == id {
			entries[i].Value = value
			return
		}
	}
	c.collections[collection] = append(entries, Entry{ID: id, Value: value})
}

// Append adds an entry without checking for an existing id. Callers are
// responsible for generating unique ids.
func (c *Cache) Append(collection, id string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collections[collection] = append(c.collections[collection], Entry{ID: id, Value: value})
}

// Get returns the entry stored under id, if any.
func (c *Cache) Get(collection, id string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, e := range c.collections[collection] {
		if e.ID == id {
			return e.Value, true
		}
	}
	return nil, false
}

// Snapshot returns a copy of the collection's entries in insertion order.
// Mutating the returned slice does not affect the cache.
func (c *Cache) Snapshot(collection string) []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := c.collections[collection]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// ReplaceAll swaps the entire collection for the given entries.
func (c *Cache) ReplaceAll(collection string, entries []Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	replacement := make([]Entry, len(entries))
	copy(replacement, entries)
	c.collections[collection] = replacement
}

// Len reports the number of entries in the collection.
func (c *Cache) Len(collection string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.collections[collection])
}
