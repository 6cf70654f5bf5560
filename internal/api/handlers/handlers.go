package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/myrepublic-hub/network-hub-backend/internal/api/middleware"
	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
	"github.com/myrepublic-hub/network-hub-backend/internal/service"
	"github.com/myrepublic-hub/network-hub-backend/internal/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth         *AuthHandler
	Member       *MemberHandler
	Network      *NetworkHandler
	Commission   *CommissionHandler
	Product      *ProductHandler
	Purchase     *PurchaseHandler
	Withdrawal   *WithdrawalHandler
	Leaderboard  *LeaderboardHandler
	Contact      *ContactHandler
	Achievement  *AchievementHandler
	Notification *NotificationHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         &AuthHandler{authService: services.Auth, memberService: services.Member},
		Member:       &MemberHandler{memberService: services.Member},
		Network:      &NetworkHandler{networkService: services.Network},
		Commission:   &CommissionHandler{commissionService: services.Commission, memberService: services.Member},
		Product:      &ProductHandler{productService: services.Product},
		Purchase:     &PurchaseHandler{purchaseService: services.Purchase},
		Withdrawal:   &WithdrawalHandler{withdrawalService: services.Withdrawal, memberService: services.Member},
		Leaderboard:  &LeaderboardHandler{leaderboardService: services.Leaderboard},
		Contact:      &ContactHandler{contactService: services.Contact, productService: services.Product},
		Achievement:  &AchievementHandler{achievementService: services.Achievement},
		Notification: &NotificationHandler{notificationService: services.Notification},
	}
}

// canAccessMember allows a member to read their own data and admins to
// read anyone's.
func canAccessMember(c *gin.Context, memberService service.MemberService, targetID string) bool {
	callerID := middleware.GetMemberID(c)
	if callerID == "" {
		return false
	}
	if callerID == targetID {
		return true
	}
	caller, err := memberService.GetByID(c.Request.Context(), callerID)
	if err != nil || caller == nil {
		return false
	}
	return caller.Role == types.RoleAdmin
}

// ============================================
// Response Mappers
// ============================================

func toMemberResponse(m *repository.Member) models.MemberResponse {
	return models.MemberResponse{
		ID:       m.ID,
		Email:    m.Email,
		Name:     m.Name,
		Contact:  m.Contact,
		Role:     m.Role,
		JoinDate: m.JoinDate,

		SponsorID:       m.SponsorID,
		NikKtp:          m.NikKtp,
		FullName:        m.FullName,
		PlaceOfBirth:    m.PlaceOfBirth,
		DateOfBirth:     m.DateOfBirth,
		CompleteAddress: m.CompleteAddress,
		Province:        m.Province,
		City:            m.City,
		Country:         m.Country,
		WhatsappNumber:  m.WhatsappNumber,
		DomicileAddress: m.DomicileAddress,
		SameAsKtp:       m.SameAsKtp,
		BankAccount:     m.BankAccount,

		Sealed:                  m.Sealed,
		SubscriptionsVerified:   m.SubscriptionsVerified,
		ProfileCompletionStatus: m.ProfileCompletionStatus,
		ProfileCompletedAt:      m.ProfileCompletedAt,
		ProfileIncomplete:       m.Role != types.RoleAdmin && m.ProfileCompletionStatus != types.ProfileComplete,
	}
}

func toProductResponse(p *repository.Product) models.ProductResponse {
	return models.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Explanation:    p.Explanation,
		Price:          p.Price,
		CommissionRate: p.CommissionRate,
		CreatedAt:      p.CreatedAt,
	}
}

func toPurchaseResponse(p *repository.Purchase) models.PurchaseResponse {
	return models.PurchaseResponse{
		ID:           p.ID,
		BuyerName:    p.BuyerName,
		Contact:      p.Contact,
		Address:      p.Address,
		ProductID:    p.ProductID,
		ReferrerID:   p.ReferrerID,
		Status:       p.Status,
		PurchaseDate: p.PurchaseDate,
	}
}

func toTransactionResponse(t *repository.Transaction) models.TransactionResponse {
	return models.TransactionResponse{
		ID:               t.ID,
		PurchaseID:       t.PurchaseID,
		MemberID:         t.MemberID,
		Level:            t.Level,
		CommissionAmount: t.CommissionAmount,
		SponsorBonus:     t.SponsorBonus,
		ProductPrice:     t.ProductPrice,
		Date:             t.Date,
	}
}

func toWithdrawalResponse(w *repository.Withdrawal) models.WithdrawalResponse {
	return models.WithdrawalResponse{
		ID:          w.ID,
		MemberID:    w.MemberID,
		Amount:      w.Amount,
		BankAccount: w.BankAccount,
		Status:      w.Status,
		RequestDate: w.RequestDate,
		DecidedAt:   w.DecidedAt,
		PaidAt:      w.PaidAt,
	}
}

func toWithdrawalSummaryResponse(s *repository.WithdrawalSummary) models.WithdrawalSummaryResponse {
	return models.WithdrawalSummaryResponse{
		AvailableBalance:    s.AvailableBalance,
		PendingWithdrawals:  s.PendingWithdrawals,
		ApprovedWithdrawals: s.ApprovedWithdrawals,
		RejectedWithdrawals: s.RejectedWithdrawals,
		TotalWithdrawn:      s.TotalWithdrawn,
	}
}

func toAchievementResponse(a *repository.Achievement) models.AchievementResponse {
	return models.AchievementResponse{
		ID:          a.ID,
		MemberID:    a.MemberID,
		Description: a.Description,
		AchievedAt:  a.AchievedAt,
	}
}

func toSalesRecordResponse(r *repository.SalesRecord) models.SalesRecordResponse {
	return models.SalesRecordResponse{
		ID:         r.ID,
		MemberID:   r.MemberID,
		ProductID:  r.ProductID,
		Quantity:   r.Quantity,
		Amount:     r.Amount,
		RecordedAt: r.RecordedAt,
	}
}

func toNotificationResponse(n *repository.Notification) models.NotificationResponse {
	return models.NotificationResponse{
		ID:        n.ID,
		MemberID:  n.MemberID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
