package domain

import (
	"time"
)

// The records below live only in the local cache (ephemeral tier).
// Each is exclusively owned by its creator; all relations are id
// references resolved by lookup.

// ProgressLog is a student's self-reported weight measurement.
type ProgressLog struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	Weight    float64   `json:"weight"`
	Note      string    `json:"note,omitempty"`
	LoggedAt  time.Time `json:"loggedAt"`
}

func (l ProgressLog) RecordID() string { return l.ID }

// ActivityLog records a free-form activity entry (run, walk, session).
type ActivityLog struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	Kind      string    `json:"kind"`
	Note      string    `json:"note,omitempty"`
	LoggedAt  time.Time `json:"loggedAt"`
}

func (l ActivityLog) RecordID() string { return l.ID }

// ChatMessage is one message between a trainer and a student.
// Ordering within a conversation follows SentAt.
type ChatMessage struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"senderId"`
	RecipientID string    `json:"recipientId"`
	Text        string    `json:"text"`
	SentAt      time.Time `json:"sentAt"`
}

func (m ChatMessage) RecordID() string { return m.ID }

// CalendarEvent is a scheduled item on a student's calendar.
type CalendarEvent struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes,omitempty"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e CalendarEvent) RecordID() string { return e.ID }

// BookReview is a social feed entry. Reviews never feed gamification;
// only reading check-ins do.
type BookReview struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	BookTitle string    `json:"bookTitle"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r BookReview) RecordID() string { return r.ID }

// WishlistBook is a book a student plans to read.
type WishlistBook struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	BookTitle string    `json:"bookTitle"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (w WishlistBook) RecordID() string { return w.ID }

// CommunityPost is a free-form post on the community feed.
type CommunityPost struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p CommunityPost) RecordID() string { return p.ID }
