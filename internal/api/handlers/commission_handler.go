package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/service"
)

// ============================================
// Commission Handler
// ============================================

type CommissionHandler struct {
	commissionService service.CommissionService
	memberService     service.MemberService
}

func (h *CommissionHandler) GetTransactions(c *gin.Context) {
	targetID := c.Param("id")
	if !canAccessMember(c, h.memberService, targetID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	transactions, err := h.commissionService.TransactionsByMember(c.Request.Context(), targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	response := models.TransactionListResponse{
		Transactions: make([]models.TransactionResponse, len(transactions)),
	}
	for i, t := range transactions {
		response.Transactions[i] = toTransactionResponse(t)
		response.TotalCommission += t.CommissionAmount
		response.TotalSponsorBonus += t.SponsorBonus
	}
	response.TotalEarned = response.TotalCommission + response.TotalSponsorBonus
	c.JSON(http.StatusOK, response)
}

// GetIncentiveScheme is public: the scheme is marketing material.
func (h *CommissionHandler) GetIncentiveScheme(c *gin.Context) {
	c.JSON(http.StatusOK, h.commissionService.IncentiveScheme())
}
