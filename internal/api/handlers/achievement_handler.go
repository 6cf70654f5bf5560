package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/service"
)

// ============================================
// Achievement Handler
// ============================================

type AchievementHandler struct {
	achievementService service.AchievementService
}

func (h *AchievementHandler) RecordAchievement(c *gin.Context) {
	var req models.RecordAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	achievement, err := h.achievementService.Record(c.Request.Context(), &req)
	if err != nil {
		if err == service.ErrMemberNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record achievement"})
		return
	}

	c.JSON(http.StatusCreated, toAchievementResponse(achievement))
}

func (h *AchievementHandler) RecordSales(c *gin.Context) {
	var req models.RecordSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.achievementService.RecordSales(c.Request.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrMemberNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		case service.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sales"})
		}
		return
	}

	c.JSON(http.StatusCreated, toSalesRecordResponse(record))
}

func (h *AchievementHandler) GetMemberAchievements(c *gin.Context) {
	achievements, err := h.achievementService.GetByMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list achievements"})
		return
	}

	response := make([]models.AchievementResponse, len(achievements))
	for i, a := range achievements {
		response[i] = toAchievementResponse(a)
	}
	c.JSON(http.StatusOK, response)
}
