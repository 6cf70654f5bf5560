package service

import (
	"context"
	"fmt"
	"log"

	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/monitoring"
	"github.com/myrepublic-hub/network-hub-backend/internal/notification"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
	"github.com/myrepublic-hub/network-hub-backend/internal/socket"
	"github.com/myrepublic-hub/network-hub-backend/internal/types"
)

// ============================================
// Purchase Service
// ============================================

type PurchaseService interface {
	Create(ctx context.Context, req *models.CreatePurchaseRequest) (*repository.Purchase, error)
	GetByID(ctx context.Context, id int64) (*repository.Purchase, error)
	GetAll(ctx context.Context) ([]*repository.Purchase, error)
	// ProcessWithCommissions creates a purchase already in Completed state
	// and distributes commissions in the same call.
	ProcessWithCommissions(ctx context.Context, req *models.CreatePurchaseRequest) (*repository.Purchase, error)
	// UpdateStatus moves a purchase through its lifecycle. The transition
	// to Completed triggers commission distribution and verifies the
	// referrer's subscription.
	UpdateStatus(ctx context.Context, id int64, status string) (*repository.Purchase, error)
}

type purchaseService struct {
	purchaseRepo    repository.PurchaseRepository
	productRepo     repository.ProductRepository
	memberRepo      repository.MemberRepository
	achievementRepo repository.AchievementRepository
	commissionSvc   CommissionService
	notifSvc        *notification.Service
	broadcaster     *socket.Broadcaster
}

func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	memberRepo repository.MemberRepository,
	achievementRepo repository.AchievementRepository,
	commissionSvc CommissionService,
	notifSvc *notification.Service,
	broadcaster *socket.Broadcaster,
) PurchaseService {
	return &purchaseService{
		purchaseRepo:    purchaseRepo,
		productRepo:     productRepo,
		memberRepo:      memberRepo,
		achievementRepo: achievementRepo,
		commissionSvc:   commissionSvc,
		notifSvc:        notifSvc,
		broadcaster:     broadcaster,
	}
}

func (s *purchaseService) Create(ctx context.Context, req *models.CreatePurchaseRequest) (*repository.Purchase, error) {
	purchase, err := s.buildPurchase(ctx, req)
	if err != nil {
		return nil, err
	}
	purchase.Status = types.PurchasePending

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}
	return purchase, nil
}

func (s *purchaseService) GetByID(ctx context.Context, id int64) (*repository.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrNotFound
	}
	return purchase, nil
}

func (s *purchaseService) GetAll(ctx context.Context) ([]*repository.Purchase, error) {
	return s.purchaseRepo.FindAll(ctx)
}

func (s *purchaseService) ProcessWithCommissions(ctx context.Context, req *models.CreatePurchaseRequest) (*repository.Purchase, error) {
	purchase, err := s.buildPurchase(ctx, req)
	if err != nil {
		return nil, err
	}
	purchase.Status = types.PurchaseCompleted

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	if err := s.settleCompleted(ctx, purchase); err != nil {
		return nil, err
	}
	monitoring.PurchasesProcessedTotal.WithLabelValues(purchase.Status).Inc()
	return purchase, nil
}

func (s *purchaseService) UpdateStatus(ctx context.Context, id int64, status string) (*repository.Purchase, error) {
	if !types.IsValidPurchaseStatus(status) {
		return nil, ErrInvalidInput
	}

	purchase, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase.Status == types.PurchaseCompleted || purchase.Status == types.PurchaseCancelled {
		return nil, ErrInvalidTransition
	}
	if purchase.Status == status {
		return purchase, nil
	}

	if err := s.purchaseRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update purchase status: %w", err)
	}
	purchase.Status = status

	if status == types.PurchaseCompleted {
		if err := s.settleCompleted(ctx, purchase); err != nil {
			return nil, err
		}
	}
	monitoring.PurchasesProcessedTotal.WithLabelValues(status).Inc()
	return purchase, nil
}

func (s *purchaseService) buildPurchase(ctx context.Context, req *models.CreatePurchaseRequest) (*repository.Purchase, error) {
	if _, err := s.lookupProduct(ctx, req.ProductID); err != nil {
		return nil, err
	}

	referrerID := req.ReferrerID
	if referrerID != nil && *referrerID != "" {
		referrer, err := s.memberRepo.FindByID(ctx, *referrerID)
		if err != nil {
			return nil, err
		}
		if referrer == nil {
			return nil, ErrMemberNotFound
		}
	} else {
		referrerID = nil
	}

	return &repository.Purchase{
		BuyerName:  req.BuyerName,
		Contact:    req.Contact,
		Address:    req.Address,
		ProductID:  req.ProductID,
		ReferrerID: referrerID,
	}, nil
}

// settleCompleted runs the side effects of a completed purchase:
// commission distribution, the referrer's subscription verification,
// a sales record for the referrer, and notifications.
func (s *purchaseService) settleCompleted(ctx context.Context, purchase *repository.Purchase) error {
	product, err := s.lookupProduct(ctx, purchase.ProductID)
	if err != nil {
		return err
	}

	if _, err := s.commissionSvc.DistributeForPurchase(ctx, purchase, product); err != nil {
		if err == ErrAlreadyDistributed {
			log.Printf("[Purchase] Commissions already distributed for purchase %d, skipping", purchase.ID)
		} else {
			return fmt.Errorf("failed to distribute commissions: %w", err)
		}
	}

	if purchase.ReferrerID == nil {
		return nil
	}

	referrer, err := s.memberRepo.FindByID(ctx, *purchase.ReferrerID)
	if err != nil || referrer == nil {
		return err
	}

	// First completed sale proves the referrer's subscription.
	if !referrer.SubscriptionsVerified {
		if err := s.memberRepo.SetSubscriptionsVerified(ctx, referrer.ID, true); err != nil {
			return fmt.Errorf("failed to verify subscription: %w", err)
		}
		if s.notifSvc != nil {
			s.notifSvc.Notify(ctx, referrer.ID, "verification",
				"Langganan Terverifikasi",
				"Langganan Anda telah terverifikasi. Anda sekarang dapat menjadi sponsor.")
		}
		if s.broadcaster != nil {
			s.broadcaster.SendMemberVerified(referrer.ID)
		}
	}

	record := &repository.SalesRecord{
		MemberID:  referrer.ID,
		ProductID: product.ID,
		Quantity:  1,
		Amount:    product.Price,
	}
	if err := s.achievementRepo.CreateSalesRecord(ctx, record); err != nil {
		log.Printf("[Purchase] Failed to record sale for member %s: %v", referrer.ID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.SendPurchaseCompleted(referrer.ID, fmt.Sprintf("%d", purchase.ID), product.Name)
	}
	return nil
}

func (s *purchaseService) lookupProduct(ctx context.Context, productID int64) (*repository.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}
