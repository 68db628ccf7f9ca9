package api

import (
	"errors"

	"arete/coaching-app/internal/store"
)

// isRemoteUnavailable reports whether the error chain carries a remote
// store failure. These map to 503 with a retry affordance; they are
// never silently degraded to a stale success.
func isRemoteUnavailable(err error) bool {
	return errors.Is(err, store.ErrRemoteUnavailable)
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
