// Package store is the persistence layer. Two collections (users,
// profiles) are durable: every write goes to the remote document store
// first, and the local cache is a read-through mirror refreshed on each
// successful remote interaction. Every other collection is ephemeral:
// the local cache is its only home and data does not survive a restart.
// The tier of each collection is declared once in the registry below so
// the asymmetry is explicit rather than a per-call special case.
package store

import (
	"context"
)

// Error constants for the persistence layer.
var (
	ErrNotFound          = StoreError("record not found")
	ErrRemoteUnavailable = StoreError("remote store unavailable")
)

// StoreError helps distinguish persistence errors.
type StoreError string

func (e StoreError) Error() string {
	return string(e)
}

// Record is anything the stores can persist, keyed by a stable id.
type Record interface {
	RecordID() string
}

// Tier declares where a collection's source of truth lives.
type Tier int

const (
	// TierDurable: remote store is authoritative, cache is a mirror.
	TierDurable Tier = iota + 1
	// TierEphemeral: the local cache is the only copy.
	TierEphemeral
)

// Collection names.
const (
	CollectionUsers          = "users"
	CollectionProfiles       = "profiles"
	CollectionWorkoutPlans   = "workout_plans"
	CollectionDietPlans      = "diet_plans"
	CollectionProgressLogs   = "progress_logs"
	CollectionActivityLogs   = "activity_logs"
	CollectionMessages       = "messages"
	CollectionEvents         = "events"
	CollectionBookReviews    = "book_reviews"
	CollectionWishlist       = "wishlist_books"
	CollectionCommunityPosts = "community_posts"
)

var tiers = map[string]Tier{
	CollectionUsers:          TierDurable,
	CollectionProfiles:       TierDurable,
	CollectionWorkoutPlans:   TierEphemeral,
	CollectionDietPlans:      TierEphemeral,
	CollectionProgressLogs:   TierEphemeral,
	CollectionActivityLogs:   TierEphemeral,
	CollectionMessages:       TierEphemeral,
	CollectionEvents:         TierEphemeral,
	CollectionBookReviews:    TierEphemeral,
	CollectionWishlist:       TierEphemeral,
	CollectionCommunityPosts: TierEphemeral,
}

// TierOf returns the declared tier for a collection. Unregistered
// collections have no tier; constructing a store for one panics.
func TierOf(collection string) Tier {
	return tiers[collection]
}

// RemoteCollection is the narrow contract the durable store needs from
// the remote document store: whole-record get/set plus a full listing.
// Set replaces the record wholesale (last-writer-wins).
type RemoteCollection[T Record] interface {
	Get(ctx context.Context, id string) (T, error)
	Set(ctx context.Context, rec T) error
	List(ctx context.Context) ([]T, error)
}
