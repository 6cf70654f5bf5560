package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myrepublic-hub/network-hub-backend/internal/service"
	"github.com/myrepublic-hub/network-hub-backend/internal/types"
)

// ============================================
// Leaderboard Handler
// ============================================

type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	leaderboardType := c.DefaultQuery("type", types.LeaderboardDownlineCount)

	leaderboard, err := h.leaderboardService.Get(c.Request.Context(), leaderboardType)
	if err != nil {
		if err == service.ErrInvalidInput {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid leaderboard type"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
		return
	}

	c.JSON(http.StatusOK, leaderboard)
}
