package api

import (
	"net/http"
	"time"

	"arete/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// LeaderboardHandler serves the ranked gamification view.
type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboardService service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

type LeaderboardResponse struct {
	Entries     []service.LeaderboardEntry `json:"entries"`
	RefreshedAt time.Time                  `json:"refreshedAt"`
}

// Get returns the polled leaderboard snapshot; when no snapshot exists
// yet (startup race) it computes one on the spot.
func (h *LeaderboardHandler) Get(c *gin.Context) {
	entries, refreshedAt := h.leaderboardService.Snapshot()
	if refreshedAt.IsZero() {
		computed, err := h.leaderboardService.Compute(c.Request.Context())
		if err != nil {
			if isRemoteUnavailable(err) {
				abortWithError(c, http.StatusServiceUnavailable, "Connection failed, retry")
				return
			}
			abortWithError(c, http.StatusInternalServerError, "Failed to compute leaderboard.")
			return
		}
		entries, refreshedAt = computed, time.Now().UTC()
	}

	if entries == nil {
		entries = []service.LeaderboardEntry{}
	}
	c.JSON(http.StatusOK, LeaderboardResponse{Entries: entries, RefreshedAt: refreshedAt})
}
