package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/myrepublic-hub/network-hub-backend/internal/api/middleware"
	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
	"github.com/myrepublic-hub/network-hub-backend/internal/service"
)

// ============================================
// Withdrawal Handler
// ============================================

type WithdrawalHandler struct {
	withdrawalService service.WithdrawalService
	memberService     service.MemberService
}

func (h *WithdrawalHandler) RequestWithdrawal(c *gin.Context) {
	memberID, ok := middleware.RequireMemberID(c)
	if !ok {
		return
	}

	var req models.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	withdrawal, err := h.withdrawalService.Request(c.Request.Context(), memberID, &req)
	if err != nil {
		switch err {
		case service.ErrInsufficientBalance:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Amount exceeds available balance"})
		case service.ErrMemberNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to request withdrawal"})
		}
		return
	}

	c.JSON(http.StatusCreated, toWithdrawalResponse(withdrawal))
}

func (h *WithdrawalHandler) GetWithdrawal(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid withdrawal id"})
		return
	}

	withdrawal, err := h.withdrawalService.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Withdrawal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load withdrawal"})
		return
	}

	if !canAccessMember(c, h.memberService, withdrawal.MemberID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	c.JSON(http.StatusOK, toWithdrawalResponse(withdrawal))
}

func (h *WithdrawalHandler) GetMemberWithdrawals(c *gin.Context) {
	targetID := c.Param("id")
	if !canAccessMember(c, h.memberService, targetID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	withdrawals, err := h.withdrawalService.GetByMember(c.Request.Context(), targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list withdrawals"})
		return
	}

	c.JSON(http.StatusOK, toWithdrawalResponses(withdrawals))
}

func (h *WithdrawalHandler) GetWithdrawalSummary(c *gin.Context) {
	targetID := c.Param("id")
	if !canAccessMember(c, h.memberService, targetID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	summary, err := h.withdrawalService.Summary(c.Request.Context(), targetID)
	if err != nil {
		if err == service.ErrMemberNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, toWithdrawalSummaryResponse(summary))
}

// ============================================
// Admin operations
// ============================================

func (h *WithdrawalHandler) GetAllWithdrawals(c *gin.Context) {
	var (
		withdrawals []*repository.Withdrawal
		err         error
	)
	if status := c.Query("status"); status != "" {
		withdrawals, err = h.withdrawalService.GetByStatus(c.Request.Context(), status)
	} else {
		withdrawals, err = h.withdrawalService.GetAll(c.Request.Context())
	}
	if err != nil {
		if err == service.ErrInvalidInput {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid withdrawal status"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list withdrawals"})
		return
	}

	c.JSON(http.StatusOK, toWithdrawalResponses(withdrawals))
}

func (h *WithdrawalHandler) Approve(c *gin.Context) {
	h.decide(c, h.withdrawalService.Approve)
}

func (h *WithdrawalHandler) Reject(c *gin.Context) {
	h.decide(c, h.withdrawalService.Reject)
}

func (h *WithdrawalHandler) MarkPaid(c *gin.Context) {
	h.decide(c, h.withdrawalService.MarkPaid)
}

func (h *WithdrawalHandler) decide(c *gin.Context, op func(ctx context.Context, id int64) (*repository.Withdrawal, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid withdrawal id"})
		return
	}

	withdrawal, err := op(c.Request.Context(), id)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Withdrawal not found"})
		case service.ErrInvalidTransition:
			c.JSON(http.StatusConflict, gin.H{"error": "Invalid withdrawal status transition"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update withdrawal"})
		}
		return
	}

	c.JSON(http.StatusOK, toWithdrawalResponse(withdrawal))
}

func toWithdrawalResponses(withdrawals []*repository.Withdrawal) []models.WithdrawalResponse {
	response := make([]models.WithdrawalResponse, len(withdrawals))
	for i, w := range withdrawals {
		response[i] = toWithdrawalResponse(w)
	}
	return response
}
