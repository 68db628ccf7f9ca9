package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arete/coaching-app/internal/cache"
	"arete/coaching-app/internal/domain"
	"arete/coaching-app/internal/store"
)

func newProfileStore(t *testing.T) (*store.Durable[domain.UserProfile], *store.MemoryRemote[domain.UserProfile]) {
	t.Helper()
	remote := store.NewMemoryRemote[domain.UserProfile]()
	return store.NewDurable[domain.UserProfile](store.CollectionProfiles, remote, cache.New()), remote
}

func seedProfile(t *testing.T, profiles *store.Durable[domain.UserProfile], userID string) {
	t.Helper()
	err := profiles.Write(context.Background(), domain.UserProfile{
		UserID: userID,
		Level:  1,
		Badges: []string{},
		Reading: domain.ReadingStats{
			ReadChapters: []string{},
		},
	})
	require.NoError(t, err)
}

func newReadingServiceAt(profiles *store.Durable[domain.UserProfile], at time.Time) *readingService {
	return &readingService{profiles: profiles, now: func() time.Time { return at }}
}

func TestToggleChapterAwardsPoints(t *testing.T) {
	ctx := context.Background()
	profiles, _ := newProfileStore(t)
	seedProfile(t, profiles, "u1")
	svc := newReadingServiceAt(profiles, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	p, err := svc.ToggleChapter(ctx, "u1", "Genesis", 1)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, []string{"Genesis-1"}, p.Reading.ReadChapters)
	assert.Equal(t, 1, p.Reading.TotalChaptersRead)
	assert.Equal(t, 10, p.Points)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 1, p.Reading.Streak)
	assert.Equal(t, "2026-03-01", p.Reading.LastReadDate)
}

func TestToggleChapterTwiceRemovesIt(t *testing.T) {
	ctx := context.Background()
	profiles, _ := newProfileStore(t)
	seedProfile(t, profiles, "u1")
	svc := newReadingServiceAt(profiles, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	_, err := svc.ToggleChapter(ctx, "u1", "Genesis", 1)
	require.NoError(t, err)
	p, err := svc.ToggleChapter(ctx, "u1", "Genesis", 1)
	require.NoError(t, err)

	assert.Empty(t, p.Reading.ReadChapters)
	assert.Equal(t, 0, p.Reading.TotalChaptersRead)
	assert.Equal(t, 0, p.Points)
	assert.Equal(t, 1, p.Level)
	// The streak never rolls back on removal.
	assert.Equal(t, 1, p.Reading.Streak)
}

func TestStreakIncrementsOncePerDay(t *testing.T) {
	ctx := context.Background()
	profiles, _ := newProfileStore(t)
	seedProfile(t, profiles, "u1")

	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := newReadingServiceAt(profiles, day1)

	_, err := svc.ToggleChapter(ctx, "u1", "Genesis", 1)
	require.NoError(t, err)
	p, err := svc.ToggleChapter(ctx, "u1", "Genesis", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Reading.Streak)

	svc.now = func() time.Time { return day1.Add(24 * time.Hour) }
	p, err = svc.ToggleChapter(ctx, "u1", "Genesis", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Reading.Streak)
	assert.Equal(t, "2026-03-02", p.Reading.LastReadDate)
}

func TestLevelFollowsPoints(t *testing.T) {
	ctx := context.Background()
	profiles, _ := newProfileStore(t)
	seedProfile(t, profiles, "u1")
	svc := newReadingServiceAt(profiles, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	// 50 chapters x 10 points = 500 points = level 2.
	var p *domain.UserProfile
	var err error
	for ch := 1; ch <= 50; ch++ {
		p, err = svc.ToggleChapter(ctx, "u1", "Psalms", ch)
		require.NoError(t, err)
	}
	assert.Equal(t, 500, p.Points)
	assert.Equal(t, 2, p.Level)

	p, err = svc.ToggleChapter(ctx, "u1", "Psalms", 50)
	require.NoError(t, err)
	assert.Equal(t, 490, p.Points)
	assert.Equal(t, 1, p.Level)
}

func TestToggleChapterWithoutProfileIsNoOp(t *testing.T) {
	profiles, remote := newProfileStore(t)
	svc := newReadingServiceAt(profiles, time.Now())

	p, err := svc.ToggleChapter(context.Background(), "missing", "Genesis", 1)
	require.NoError(t, err)
	assert.Nil(t, p)

	all, err := remote.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestToggleChapterValidatesInput(t *testing.T) {
	profiles, _ := newProfileStore(t)
	svc := newReadingServiceAt(profiles, time.Now())

	_, err := svc.ToggleChapter(context.Background(), "u1", "", 1)
	assert.ErrorIs(t, err, ErrInvalidCheckIn)

	_, err = svc.ToggleChapter(context.Background(), "u1", "Genesis", 0)
	assert.ErrorIs(t, err, ErrInvalidCheckIn)

	_, err = svc.ToggleChapter(context.Background(), "u1", "   ", 3)
	assert.ErrorIs(t, err, ErrInvalidCheckIn)
}

func TestToggleChapterPersistsThroughStore(t *testing.T) {
	ctx := context.Background()
	profiles, remote := newProfileStore(t)
	seedProfile(t, profiles, "u1")
	svc := newReadingServiceAt(profiles, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	_, err := svc.ToggleChapter(ctx, "u1", "Genesis", 1)
	require.NoError(t, err)

	stored, err := remote.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10, stored.Points)
	assert.Equal(t, []string{"Genesis-1"}, stored.Reading.ReadChapters)
}
