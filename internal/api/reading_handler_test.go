package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arete/coaching-app/internal/domain"
	"arete/coaching-app/internal/service"
	"arete/coaching-app/internal/store"
)

type stubReadingService struct {
	profile *domain.UserProfile
	err     error

	gotUserID  string
	gotBook    string
	gotChapter int
}

func (s *stubReadingService) ToggleChapter(ctx context.Context, userID, book string, chapter int) (*domain.UserProfile, error) {
	s.gotUserID = userID
	s.gotBook = book
	s.gotChapter = chapter
	return s.profile, s.err
}

func newCheckInRouter(svc service.ReadingService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewReadingHandler(svc)
	router.POST("/reading/checkins", func(c *gin.Context) {
		if userID != "" {
			c.Set(ContextUserIDKey, userID)
			c.Set(ContextUserRoleKey, domain.RoleStudent)
		}
		handler.ToggleChapter(c)
	})
	return router
}

func doCheckIn(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/reading/checkins", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestToggleChapterReturnsUpdatedProfile(t *testing.T) {
	stub := &stubReadingService{
		profile: &domain.UserProfile{
			UserID: "u1",
			Points: 10,
			Level:  1,
			Reading: domain.ReadingStats{
				TotalChaptersRead: 1,
				Streak:            1,
				ReadChapters:      []string{"Genesis-1"},
			},
		},
	}
	router := newCheckInRouter(stub, "u1")

	rec := doCheckIn(t, router, CheckInRequest{Book: "Genesis", Chapter: 1})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", stub.gotUserID)
	assert.Equal(t, "Genesis", stub.gotBook)
	assert.Equal(t, 1, stub.gotChapter)

	var resp CheckInResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Profile.Points)
	assert.Equal(t, []string{"Genesis-1"}, resp.Profile.Reading.ReadChapters)
}

func TestToggleChapterRejectsMissingFields(t *testing.T) {
	router := newCheckInRouter(&stubReadingService{}, "u1")

	rec := doCheckIn(t, router, gin.H{"book": "Genesis"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doCheckIn(t, router, gin.H{"chapter": 3})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleChapterWithoutProfileIs404(t *testing.T) {
	router := newCheckInRouter(&stubReadingService{profile: nil}, "u1")

	rec := doCheckIn(t, router, CheckInRequest{Book: "Genesis", Chapter: 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleChapterWithoutIdentityIs401(t *testing.T) {
	router := newCheckInRouter(&stubReadingService{}, "")

	rec := doCheckIn(t, router, CheckInRequest{Book: "Genesis", Chapter: 1})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestToggleChapterRemoteOutageIs503(t *testing.T) {
	router := newCheckInRouter(&stubReadingService{err: store.ErrRemoteUnavailable}, "u1")

	rec := doCheckIn(t, router, CheckInRequest{Book: "Genesis", Chapter: 1})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Connection failed, retry")
}

func TestToggleChapterInvalidCheckInIs400(t *testing.T) {
	router := newCheckInRouter(&stubReadingService{err: service.ErrInvalidCheckIn}, "u1")

	rec := doCheckIn(t, router, CheckInRequest{Book: "   ", Chapter: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
