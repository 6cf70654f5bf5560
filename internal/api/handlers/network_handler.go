package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myrepublic-hub/network-hub-backend/internal/service"
)

// ============================================
// Network Handler
// ============================================

type NetworkHandler struct {
	networkService service.NetworkService
}

func (h *NetworkHandler) GetFamilyTree(c *gin.Context) {
	tree, err := h.networkService.FamilyTree(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrMemberNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build family tree"})
		return
	}

	c.JSON(http.StatusOK, tree)
}

func (h *NetworkHandler) GetNetworkStats(c *gin.Context) {
	stats, err := h.networkService.NetworkStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrMemberNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute network stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
