package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arete/coaching-app/internal/cache"
	"arete/coaching-app/internal/domain"
	"arete/coaching-app/internal/store"
)

type leaderboardFixture struct {
	svc      LeaderboardService
	profiles *store.Durable[domain.UserProfile]
	users    *store.Durable[domain.User]
}

func newLeaderboardFixture(t *testing.T) *leaderboardFixture {
	t.Helper()
	c := cache.New()
	profiles := store.NewDurable[domain.UserProfile](store.CollectionProfiles, store.NewMemoryRemote[domain.UserProfile](), c)
	users := store.NewDurable[domain.User](store.CollectionUsers, store.NewMemoryRemote[domain.User](), c)
	return &leaderboardFixture{
		svc:      NewLeaderboardService(profiles, users),
		profiles: profiles,
		users:    users,
	}
}

func (f *leaderboardFixture) addRanked(t *testing.T, id, name string, points, streak int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.users.Write(ctx, domain.User{ID: id, Name: name, Email: id + "@example.com", Role: domain.RoleStudent}))
	require.NoError(t, f.profiles.Write(ctx, domain.UserProfile{
		UserID: id,
		Points: points,
		Level:  points/500 + 1,
		Reading: domain.ReadingStats{
			Streak: streak,
		},
	}))
}

func TestComputeRanksByPointsDescending(t *testing.T) {
	f := newLeaderboardFixture(t)
	f.addRanked(t, "u1", "alice", 300, 5)
	f.addRanked(t, "u2", "bob", 100, 2)
	f.addRanked(t, "u3", "carol", 300, 5)

	entries, err := f.svc.Compute(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Equal scores stay adjacent in insertion order; the lower score
	// comes last.
	assert.Equal(t, "u1", entries[0].UserID)
	assert.Equal(t, "u3", entries[1].UserID)
	assert.Equal(t, "u2", entries[2].UserID)
}

func TestComputeBreaksPointTiesByStreak(t *testing.T) {
	f := newLeaderboardFixture(t)
	f.addRanked(t, "u1", "alice", 200, 1)
	f.addRanked(t, "u2", "bob", 200, 7)

	entries, err := f.svc.Compute(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "u2", entries[0].UserID)
	assert.Equal(t, "u1", entries[1].UserID)
}

func TestComputeIsStableAcrossCalls(t *testing.T) {
	f := newLeaderboardFixture(t)
	f.addRanked(t, "u1", "alice", 150, 3)
	f.addRanked(t, "u2", "bob", 150, 3)
	f.addRanked(t, "u3", "carol", 150, 3)

	first, err := f.svc.Compute(context.Background())
	require.NoError(t, err)
	second, err := f.svc.Compute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeUsesPlaceholderForMissingUser(t *testing.T) {
	f := newLeaderboardFixture(t)
	require.NoError(t, f.profiles.Write(context.Background(), domain.UserProfile{
		UserID: "orphan",
		Points: 50,
		Level:  1,
	}))

	entries, err := f.svc.Compute(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Unknown user", entries[0].Name)
	assert.Equal(t, 50, entries[0].Points)
}

func TestComputeClampsNegativePoints(t *testing.T) {
	f := newLeaderboardFixture(t)
	require.NoError(t, f.profiles.Write(context.Background(), domain.UserProfile{
		UserID: "u1",
		Points: -20,
		Level:  1,
	}))

	entries, err := f.svc.Compute(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].Points)
}

func TestRefreshPopulatesSnapshot(t *testing.T) {
	f := newLeaderboardFixture(t)
	f.addRanked(t, "u1", "alice", 120, 4)

	entries, refreshedAt := f.svc.Snapshot()
	assert.Empty(t, entries)
	assert.True(t, refreshedAt.IsZero())

	require.NoError(t, f.svc.Refresh(context.Background()))

	entries, refreshedAt = f.svc.Snapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Name)
	assert.False(t, refreshedAt.IsZero())
}

func TestRefreshDropsResultAfterCancellation(t *testing.T) {
	f := newLeaderboardFixture(t)
	f.addRanked(t, "u1", "alice", 120, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.svc.Refresh(ctx)
	assert.Error(t, err)

	entries, _ := f.svc.Snapshot()
	assert.Empty(t, entries)
}
