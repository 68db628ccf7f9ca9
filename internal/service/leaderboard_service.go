package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"arete/coaching-app/internal/domain"
	"arete/coaching-app/internal/store"
)

// Placeholder shown when a profile has no matching user record.
const unknownUserName = "Unknown user"

// LeaderboardEntry is one ranked row: profile gamification state joined
// with the user's display data.
type LeaderboardEntry struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Points    int    `json:"points"`
	Level     int    `json:"level"`
	Streak    int    `json:"streak"`
}

type LeaderboardService interface {
	// Compute ranks all profiles by points. Pure with respect to the
	// stores: repeated calls against unchanged input return the same
	// ordering.
	Compute(ctx context.Context) ([]LeaderboardEntry, error)

	// Refresh recomputes the cached snapshot; Snapshot returns it along
	// with the time it was taken. Readers of the snapshot may observe
	// state up to one polling interval old.
	Refresh(ctx context.Context) error
	Snapshot() ([]LeaderboardEntry, time.Time)
}

type leaderboardService struct {
	profiles *store.Durable[domain.UserProfile]
	users    *store.Durable[domain.User]

	mu          sync.RWMutex
	snapshot    []LeaderboardEntry
	refreshedAt time.Time
}

// NewLeaderboardService creates a LeaderboardService over the durable
// profile and user stores.
func NewLeaderboardService(profiles *store.Durable[domain.UserProfile], users *store.Durable[domain.User]) LeaderboardService {
	return &leaderboardService{profiles: profiles, users: users}
}

func (s *leaderboardService) Compute(ctx context.Context) ([]LeaderboardEntry, error) {
	profiles, err := s.profiles.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	entries := make([]LeaderboardEntry, 0, len(profiles))
	for _, p := range profiles {
		entry := LeaderboardEntry{
			UserID: p.UserID,
			Name:   unknownUserName,
			Points: p.Points,
			Level:  p.Level,
			Streak: p.Reading.Streak,
		}
		// A profile without a user record still ranks; the join is a
		// left join, never an error.
		if u, ok := byID[p.UserID]; ok {
			entry.Name = u.Name
			entry.AvatarURL = u.AvatarURL
		}
		if entry.Points < 0 {
			entry.Points = 0
		}
		entries = append(entries, entry)
	}

	// Points descending, streak as tie-break. The stable sort keeps
	// exact ties in store order across repeated calls.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Streak > entries[j].Streak
	})

	return entries, nil
}

func (s *leaderboardService) Refresh(ctx context.Context) error {
	entries, err := s.Compute(ctx)
	if err != nil {
		return err
	}

	// Drop results computed for an already-cancelled consumer.
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.mu.Lock()
	s.snapshot = entries
	s.refreshedAt = time.Now().UTC()
	s.mu.Unlock()
	return nil
}

func (s *leaderboardService) Snapshot() ([]LeaderboardEntry, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]LeaderboardEntry, len(s.snapshot))
	copy(out, s.snapshot)
	return out, s.refreshedAt
}
