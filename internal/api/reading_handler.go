package api

import (
	"errors"
	"fmt"
	"net/http"

	"arete/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ReadingHandler exposes the reading check-in engine.
type ReadingHandler struct {
	readingService service.ReadingService
}

// NewReadingHandler creates a new ReadingHandler.
func NewReadingHandler(readingService service.ReadingService) *ReadingHandler {
	return &ReadingHandler{readingService: readingService}
}

type CheckInRequest struct {
	Book    string `json:"book" binding:"required"`
	Chapter int    `json:"chapter" binding:"required"`
}

type CheckInResponse struct {
	Profile ProfileResponse `json:"profile"`
}

// ToggleChapter flips the read state of one chapter for the
// authenticated user.
func (h *ReadingHandler) ToggleChapter(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	profile, err := h.readingService.ToggleChapter(c.Request.Context(), userID, req.Book, req.Chapter)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCheckIn):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case isRemoteUnavailable(err):
			abortWithError(c, http.StatusServiceUnavailable, "Connection failed, retry")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to record check-in.")
		}
		return
	}

	// A user without a profile has not completed onboarding; the
	// check-in is a no-op.
	if profile == nil {
		abortWithError(c, http.StatusNotFound, "Complete onboarding before checking in.")
		return
	}

	c.JSON(http.StatusOK, CheckInResponse{Profile: MapProfileToResponse(profile)})
}
