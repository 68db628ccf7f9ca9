package api

import (
	"errors"
	"fmt"
	"net/http"

	"arete/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// OnboardingHandler drives the four-step onboarding wizard. The draft
// lives client-side; each submission carries the current step plus the
// full draft, and the response names the step to render next.
type OnboardingHandler struct {
	onboardingService service.OnboardingService
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(onboardingService service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

type AdvanceRequest struct {
	Step  int                     `json:"step" binding:"required,min=1,max=5"`
	Draft service.OnboardingDraft `json:"draft"`
}

type AdvanceResponse struct {
	Step      string           `json:"step"`
	Completed bool             `json:"completed"`
	Profile   *ProfileResponse `json:"profile,omitempty"`
}

// Advance validates the submitted step and moves the wizard forward.
// Validation failures keep the wizard on the same step and return a
// step-scoped message.
func (h *OnboardingHandler) Advance(c *gin.Context) {
	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	next, profile, err := h.onboardingService.Advance(
		c.Request.Context(),
		userID,
		service.OnboardingStep(req.Step),
		req.Draft,
	)
	if err != nil {
		var stepErr *service.StepError
		if errors.As(err, &stepErr) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": stepErr.Reason,
				"step":  stepErr.Step.String(),
			})
			return
		}
		if isRemoteUnavailable(err) {
			abortWithError(c, http.StatusServiceUnavailable, "Connection failed, retry")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to advance onboarding.")
		return
	}

	resp := AdvanceResponse{
		Step:      next.String(),
		Completed: profile != nil,
	}
	if profile != nil {
		p := MapProfileToResponse(profile)
		resp.Profile = &p
	}
	c.JSON(http.StatusOK, resp)
}
