package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"arete/coaching-app/internal/domain"
	"arete/coaching-app/internal/service"
	"arete/coaching-app/internal/suggest"

	"github.com/gin-gonic/gin"
)

// StudentHandler holds the student service dependency.
type StudentHandler struct {
	studentService service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// --- DTOs ---

type SendMessageRequest struct {
	RecipientID string `json:"recipientId" binding:"required"`
	Text        string `json:"text" binding:"required"`
}

type LogProgressRequest struct {
	Weight float64 `json:"weight" binding:"required,gt=0"`
	Note   string  `json:"note"`
}

type LogActivityRequest struct {
	Kind string `json:"kind" binding:"required"`
	Note string `json:"note"`
}

type AddEventRequest struct {
	Title    string    `json:"title" binding:"required"`
	Notes    string    `json:"notes"`
	StartsAt time.Time `json:"startsAt" binding:"required"`
	EndsAt   time.Time `json:"endsAt" binding:"required"`
}

type AddReviewRequest struct {
	BookTitle string `json:"bookTitle" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Review    string `json:"review"`
}

type AddWishlistRequest struct {
	BookTitle string `json:"bookTitle" binding:"required"`
	Author    string `json:"author"`
}

type AddPostRequest struct {
	Text string `json:"text" binding:"required"`
}

type AvatarUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmAvatarRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

type SuggestWorkoutRequest struct {
	Sport string `json:"sport" binding:"required"`
}

// --- Handler Methods ---

func (h *StudentHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	senderID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	msg, err := h.studentService.SendMessage(c.Request.Context(), senderID, req.RecipientID, req.Text)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *StudentHandler) GetConversation(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	msgs := h.studentService.Conversation(c.Request.Context(), userID, c.Param("peerId"))
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *StudentHandler) LogProgress(c *gin.Context) {
	var req LogProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	log, err := h.studentService.LogProgress(c.Request.Context(), userID, req.Weight, req.Note)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *StudentHandler) GetProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	logs := h.studentService.ProgressHistory(c.Request.Context(), userID)
	if logs == nil {
		logs = []domain.ProgressLog{}
	}
	c.JSON(http.StatusOK, logs)
}

func (h *StudentHandler) LogActivity(c *gin.Context) {
	var req LogActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	log, err := h.studentService.LogActivity(c.Request.Context(), userID, req.Kind, req.Note)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *StudentHandler) AddEvent(c *gin.Context) {
	var req AddEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	event, err := h.studentService.AddEvent(c.Request.Context(), userID, req.Title, req.Notes, req.StartsAt, req.EndsAt)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *StudentHandler) GetEvents(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	events := h.studentService.Events(c.Request.Context(), userID)
	if events == nil {
		events = []domain.CalendarEvent{}
	}
	c.JSON(http.StatusOK, events)
}

func (h *StudentHandler) AddReview(c *gin.Context) {
	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	review, err := h.studentService.AddBookReview(c.Request.Context(), userID, req.BookTitle, req.Rating, req.Review)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *StudentHandler) GetReviewFeed(c *gin.Context) {
	reviews := h.studentService.ReviewFeed(c.Request.Context())
	if reviews == nil {
		reviews = []domain.BookReview{}
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *StudentHandler) AddWishlistBook(c *gin.Context) {
	var req AddWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	book, err := h.studentService.AddWishlistBook(c.Request.Context(), userID, req.BookTitle, req.Author)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (h *StudentHandler) GetWishlist(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	books := h.studentService.Wishlist(c.Request.Context(), userID)
	if books == nil {
		books = []domain.WishlistBook{}
	}
	c.JSON(http.StatusOK, books)
}

func (h *StudentHandler) AddPost(c *gin.Context) {
	var req AddPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	post, err := h.studentService.AddCommunityPost(c.Request.Context(), userID, req.Text)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *StudentHandler) GetCommunityFeed(c *gin.Context) {
	posts := h.studentService.CommunityFeed(c.Request.Context())
	if posts == nil {
		posts = []domain.CommunityPost{}
	}
	c.JSON(http.StatusOK, posts)
}

// RequestAvatarUpload returns a presigned PUT URL for an avatar image.
func (h *StudentHandler) RequestAvatarUpload(c *gin.Context) {
	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	resp, err := h.studentService.RequestAvatarUploadURL(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidContentType) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmAvatar records the uploaded avatar object on the user record.
func (h *StudentHandler) ConfirmAvatar(c *gin.Context) {
	var req ConfirmAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	user, err := h.studentService.ConfirmAvatar(c.Request.Context(), userID, req.ObjectKey)
	if err != nil {
		if isRemoteUnavailable(err) {
			abortWithError(c, http.StatusServiceUnavailable, "Connection failed, retry")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to update avatar.")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// GetAvatarURL resolves the authenticated user's avatar key into a
// presigned download URL.
func (h *StudentHandler) GetAvatarURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	downloadURL, err := h.studentService.AvatarDownloadURL(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoAvatar), isNotFound(err):
			abortWithError(c, http.StatusNotFound, "No avatar uploaded.")
		case isRemoteUnavailable(err):
			abortWithError(c, http.StatusServiceUnavailable, "Connection failed, retry")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": downloadURL})
}

// SuggestWorkout asks the suggestion collaborator for a sport-specific
// workout. The service may be absent; that is surfaced, not hidden.
func (h *StudentHandler) SuggestWorkout(c *gin.Context) {
	var req SuggestWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	suggestion, err := h.studentService.SuggestWorkout(c.Request.Context(), userID, req.Sport)
	if err != nil {
		handleSuggestError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

// SummarizeProgress asks the suggestion collaborator for a short text
// summary of the student's weight history.
func (h *StudentHandler) SummarizeProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	summary, err := h.studentService.SummarizeProgress(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoProgressHistory) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		handleSuggestError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func handleSuggestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, suggest.ErrUnavailable):
		abortWithError(c, http.StatusBadGateway, "Suggestion service unavailable.")
	case isNotFound(err):
		abortWithError(c, http.StatusNotFound, "Complete onboarding first.")
	case isRemoteUnavailable(err):
		abortWithError(c, http.StatusServiceUnavailable, "Connection failed, retry")
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to get suggestion.")
	}
}
