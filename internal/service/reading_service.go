package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"arete/coaching-app/internal/domain"
	"arete/coaching-app/internal/store"
)

// Points awarded per chapter and points needed per level.
const (
	pointsPerChapter = 10
	pointsPerLevel   = 500
)

var ErrInvalidCheckIn = errors.New("check-in requires a book name and a chapter number greater than zero")

type ReadingService interface {
	// ToggleChapter flips the read state of one chapter for the user and
	// recomputes points, level and streak. A missing profile is not an
	// error: the call is a no-op returning (nil, nil).
	ToggleChapter(ctx context.Context, userID, book string, chapter int) (*domain.UserProfile, error)
}

// readingService implements the reading check-in engine.
type readingService struct {
	profiles *store.Durable[domain.UserProfile]
	now      func() time.Time
}

// NewReadingService creates a ReadingService persisting through the
// durable profile store.
func NewReadingService(profiles *store.Durable[domain.UserProfile]) ReadingService {
	return &readingService{profiles: profiles, now: time.Now}
}

func (s *readingService) ToggleChapter(ctx context.Context, userID, book string, chapter int) (*domain.UserProfile, error) {
	book = strings.TrimSpace(book)
	if book == "" || chapter <= 0 {
		return nil, ErrInvalidCheckIn
	}

	profile, err := s.profiles.Read(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	chapterID := fmt.Sprintf("%s-%d", book, chapter)
	stats := profile.Reading
	if stats.ReadChapters == nil {
		stats.ReadChapters = []string{}
	}

	added := false
	if stats.HasChapter(chapterID) {
		kept := make([]string, 0, len(stats.ReadChapters)-1)
		for _, id := range stats.ReadChapters {
			if id != chapterID {
				kept = append(kept, id)
			}
		}
		stats.ReadChapters = kept
	} else {
		stats.ReadChapters = append(stats.ReadChapters, chapterID)
		added = true
	}

	stats.TotalChaptersRead = len(stats.ReadChapters)
	profile.Points = stats.TotalChaptersRead * pointsPerChapter
	profile.Level = profile.Points/pointsPerLevel + 1

	// At most one streak increment per calendar day, and only when a
	// chapter was added. Removing a chapter never rolls the streak back.
	today := s.now().UTC().Format("2006-01-02")
	if added && stats.LastReadDate != today {
		stats.Streak++
		stats.LastReadDate = today
	}

	profile.Reading = stats
	profile.UpdatedAt = s.now().UTC()

	if err := s.profiles.Write(ctx, profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
