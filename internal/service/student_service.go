package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"arete/coaching-app/internal/domain"
	"arete/coaching-app/internal/storage"
	"arete/coaching-app/internal/store"
	"arete/coaching-app/internal/suggest"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrEmptyMessage       = errors.New("message text cannot be empty")
	ErrInvalidWeight      = errors.New("weight must be greater than zero")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrInvalidEvent       = errors.New("event requires a title and a valid time range")
	ErrInvalidContentType = errors.New("avatar content type must be image/*")
	ErrUploadURLError     = errors.New("failed to generate upload URL")
	ErrDownloadURLError   = errors.New("failed to generate download URL")
	ErrNoAvatar           = errors.New("user has no avatar")
	ErrNoProgressHistory  = errors.New("no progress history to summarize")
)

// AvatarUploadResponse carries the presigned URL plus the object key the
// client reports back once the upload finished.
type AvatarUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type StudentService interface {
	// Messaging
	SendMessage(ctx context.Context, senderID, recipientID, text string) (*domain.ChatMessage, error)
	Conversation(ctx context.Context, userA, userB string) []domain.ChatMessage

	// Progress and activity
	LogProgress(ctx context.Context, studentID string, weight float64, note string) (*domain.ProgressLog, error)
	ProgressHistory(ctx context.Context, studentID string) []domain.ProgressLog
	LogActivity(ctx context.Context, studentID, kind, note string) (*domain.ActivityLog, error)

	// Calendar
	AddEvent(ctx context.Context, ownerID, title, notes string, startsAt, endsAt time.Time) (*domain.CalendarEvent, error)
	Events(ctx context.Context, ownerID string) []domain.CalendarEvent

	// Book feed
	AddBookReview(ctx context.Context, authorID, bookTitle string, rating int, review string) (*domain.BookReview, error)
	ReviewFeed(ctx context.Context) []domain.BookReview
	AddWishlistBook(ctx context.Context, ownerID, bookTitle, author string) (*domain.WishlistBook, error)
	Wishlist(ctx context.Context, ownerID string) []domain.WishlistBook
	AddCommunityPost(ctx context.Context, authorID, text string) (*domain.CommunityPost, error)
	CommunityFeed(ctx context.Context) []domain.CommunityPost

	// Avatar
	RequestAvatarUploadURL(ctx context.Context, userID, contentType string) (*AvatarUploadResponse, error)
	ConfirmAvatar(ctx context.Context, userID, objectKey string) (*domain.User, error)
	AvatarDownloadURL(ctx context.Context, userID string) (string, error)

	// AI suggestions (opaque collaborator; failures surface as-is)
	SuggestWorkout(ctx context.Context, userID, sport string) (*suggest.WorkoutSuggestion, error)
	SummarizeProgress(ctx context.Context, userID string) (string, error)
}

type studentService struct {
	users    *store.Durable[domain.User]
	profiles *store.Durable[domain.UserProfile]

	messages *store.Local[domain.ChatMessage]
	progress *store.Local[domain.ProgressLog]
	activity *store.Local[domain.ActivityLog]
	events   *store.Local[domain.CalendarEvent]
	reviews  *store.Local[domain.BookReview]
	wishlist *store.Local[domain.WishlistBook]
	posts    *store.Local[domain.CommunityPost]

	fileStorage storage.FileStorage
	suggestions suggest.Service
}

// NewStudentService creates a new instance of studentService.
func NewStudentService(
	users *store.Durable[domain.User],
	profiles *store.Durable[domain.UserProfile],
	messages *store.Local[domain.ChatMessage],
	progress *store.Local[domain.ProgressLog],
	activity *store.Local[domain.ActivityLog],
	events *store.Local[domain.CalendarEvent],
	reviews *store.Local[domain.BookReview],
	wishlist *store.Local[domain.WishlistBook],
	posts *store.Local[domain.CommunityPost],
	fileStorage storage.FileStorage,
	suggestions suggest.Service,
) StudentService {
	return &studentService{
		users:       users,
		profiles:    profiles,
		messages:    messages,
		progress:    progress,
		activity:    activity,
		events:      events,
		reviews:     reviews,
		wishlist:    wishlist,
		posts:       posts,
		fileStorage: fileStorage,
		suggestions: suggestions,
	}
}

// === Messaging ===

func (s *studentService) SendMessage(ctx context.Context, senderID, recipientID, text string) (*domain.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	msg := domain.ChatMessage{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Text:        text,
		SentAt:      time.Now().UTC(),
	}
	s.messages.Append(msg)
	return &msg, nil
}

// Conversation returns the messages between two users ordered by SentAt.
func (s *studentService) Conversation(ctx context.Context, userA, userB string) []domain.ChatMessage {
	msgs := s.messages.Filter(func(m domain.ChatMessage) bool {
		return (m.SenderID == userA && m.RecipientID == userB) ||
			(m.SenderID == userB && m.RecipientID == userA)
	})
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].SentAt.Before(msgs[j].SentAt)
	})
	return msgs
}

// === Progress and activity ===

func (s *studentService) LogProgress(ctx context.Context, studentID string, weight float64, note string) (*domain.ProgressLog, error) {
	if weight <= 0 {
		return nil, ErrInvalidWeight
	}
	log := domain.ProgressLog{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Weight:    weight,
		Note:      note,
		LoggedAt:  time.Now().UTC(),
	}
	s.progress.Append(log)
	return &log, nil
}

func (s *studentService) ProgressHistory(ctx context.Context, studentID string) []domain.ProgressLog {
	logs := s.progress.Filter(func(l domain.ProgressLog) bool {
		return l.StudentID == studentID
	})
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].LoggedAt.Before(logs[j].LoggedAt)
	})
	return logs
}

func (s *studentService) LogActivity(ctx context.Context, studentID, kind, note string) (*domain.ActivityLog, error) {
	if strings.TrimSpace(kind) == "" {
		return nil, errors.New("activity kind cannot be empty")
	}
	log := domain.ActivityLog{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Kind:      kind,
		Note:      note,
		LoggedAt:  time.Now().UTC(),
	}
	s.activity.Append(log)
	return &log, nil
}

// === Calendar ===

func (s *studentService) AddEvent(ctx context.Context, ownerID, title, notes string, startsAt, endsAt time.Time) (*domain.CalendarEvent, error) {
	if strings.TrimSpace(title) == "" || startsAt.IsZero() || endsAt.Before(startsAt) {
		return nil, ErrInvalidEvent
	}
	event := domain.CalendarEvent{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     title,
		Notes:     notes,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		CreatedAt: time.Now().UTC(),
	}
	s.events.Append(event)
	return &event, nil
}

func (s *studentService) Events(ctx context.Context, ownerID string) []domain.CalendarEvent {
	events := s.events.Filter(func(e domain.CalendarEvent) bool {
		return e.OwnerID == ownerID
	})
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartsAt.Before(events[j].StartsAt)
	})
	return events
}

// === Book feed ===

// AddBookReview records a review on the social feed. Reviews carry no
// gamification: points come from reading check-ins only.
func (s *studentService) AddBookReview(ctx context.Context, authorID, bookTitle string, rating int, review string) (*domain.BookReview, error) {
	if strings.TrimSpace(bookTitle) == "" {
		return nil, errors.New("book title cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	rec := domain.BookReview{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		BookTitle: bookTitle,
		Rating:    rating,
		Review:    review,
		CreatedAt: time.Now().UTC(),
	}
	s.reviews.Append(rec)
	return &rec, nil
}

func (s *studentService) ReviewFeed(ctx context.Context) []domain.BookReview {
	reviews := s.reviews.All()
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews
}

func (s *studentService) AddWishlistBook(ctx context.Context, ownerID, bookTitle, author string) (*domain.WishlistBook, error) {
	if strings.TrimSpace(bookTitle) == "" {
		return nil, errors.New("book title cannot be empty")
	}
	book := domain.WishlistBook{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		BookTitle: bookTitle,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}
	s.wishlist.Append(book)
	return &book, nil
}

func (s *studentService) Wishlist(ctx context.Context, ownerID string) []domain.WishlistBook {
	return s.wishlist.Filter(func(w domain.WishlistBook) bool {
		return w.OwnerID == ownerID
	})
}

func (s *studentService) AddCommunityPost(ctx context.Context, authorID, text string) (*domain.CommunityPost, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("post text cannot be empty")
	}
	post := domain.CommunityPost{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	s.posts.Append(post)
	return &post, nil
}

func (s *studentService) CommunityFeed(ctx context.Context) []domain.CommunityPost {
	posts := s.posts.All()
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}

// === Avatar ===

// RequestAvatarUploadURL generates a presigned PUT URL for the user's
// avatar image.
func (s *studentService) RequestAvatarUploadURL(ctx context.Context, userID, contentType string) (*AvatarUploadResponse, error) {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidContentType
	}

	ext := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		ext = parts[1]
	}
	objectKey := path.Join("avatars", userID, fmt.Sprintf("%s.%s", uuid.NewString(), ext))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}
	return &AvatarUploadResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmAvatar records the uploaded object on the user record. Called
// after the client finished the PUT against the presigned URL.
func (s *studentService) ConfirmAvatar(ctx context.Context, userID, objectKey string) (*domain.User, error) {
	if strings.TrimSpace(objectKey) == "" {
		return nil, errors.New("object key is required")
	}
	user, err := s.users.Read(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Replacing an avatar orphans the previous object in the bucket.
	// Deletion failures are logged, not surfaced; the new avatar wins
	// either way.
	if old := user.AvatarURL; old != "" && old != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, old); err != nil {
			logrus.WithError(err).WithField("objectKey", old).Warn("failed to delete replaced avatar object")
		}
	}

	user.AvatarURL = objectKey
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Write(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &user, nil
}

// AvatarDownloadURL presigns a GET for the user's current avatar
// object. The stored AvatarURL is a bucket key, not a fetchable URL;
// clients resolve it through this call.
func (s *studentService) AvatarDownloadURL(ctx context.Context, userID string) (string, error) {
	user, err := s.users.Read(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.AvatarURL == "" {
		return "", ErrNoAvatar
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, user.AvatarURL, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLError
	}
	return downloadURL, nil
}

// === AI suggestions ===

func (s *studentService) SuggestWorkout(ctx context.Context, userID, sport string) (*suggest.WorkoutSuggestion, error) {
	profile, err := s.profiles.Read(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.suggestions.SuggestWorkout(ctx, profile, sport)
}

func (s *studentService) SummarizeProgress(ctx context.Context, userID string) (string, error) {
	profile, err := s.profiles.Read(ctx, userID)
	if err != nil {
		return "", err
	}

	history := s.ProgressHistory(ctx, userID)
	if len(history) == 0 {
		return "", ErrNoProgressHistory
	}
	weights := make([]float64, len(history))
	for i, l := range history {
		weights[i] = l.Weight
	}
	return s.suggestions.SummarizeProgress(ctx, weights, profile.Goal)
}
