package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/service"
)

// ============================================
// Purchase Handler
// ============================================

type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req models.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase, err := h.purchaseService.Create(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPurchaseResponse(purchase))
}

// ProcessWithCommissions creates the purchase in Completed state and
// runs commission distribution in the same request.
func (h *PurchaseHandler) ProcessWithCommissions(c *gin.Context) {
	var req models.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase, err := h.purchaseService.ProcessWithCommissions(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPurchaseResponse(purchase))
}

func (h *PurchaseHandler) GetAllPurchases(c *gin.Context) {
	purchases, err := h.purchaseService.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list purchases"})
		return
	}

	response := make([]models.PurchaseResponse, len(purchases))
	for i, p := range purchases {
		response[i] = toPurchaseResponse(p)
	}
	c.JSON(http.StatusOK, response)
}

func (h *PurchaseHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase id"})
		return
	}

	var req models.UpdatePurchaseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase, err := h.purchaseService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPurchaseResponse(purchase))
}

func (h *PurchaseHandler) writeError(c *gin.Context, err error) {
	switch err {
	case service.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase or product not found"})
	case service.ErrMemberNotFound:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Referrer not found"})
	case service.ErrInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase status"})
	case service.ErrInvalidTransition:
		c.JSON(http.StatusConflict, gin.H{"error": "Purchase status cannot change"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process purchase"})
	}
}
