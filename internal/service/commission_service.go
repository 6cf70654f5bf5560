package service

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/myrepublic-hub/network-hub-backend/internal/config"
	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/monitoring"
	"github.com/myrepublic-hub/network-hub-backend/internal/notification"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
	"github.com/myrepublic-hub/network-hub-backend/internal/socket"
)

// ============================================
// Commission Service
// ============================================

// Level rates in basis points. Level 1 comes from the product's own
// commission rate; deeper levels decay and flatten at 0.25%.
var uplineRateBasisPoints = []int64{500, 200, 100, 50}

const deepLevelBasisPoints int64 = 25

type CommissionService interface {
	// DistributeForPurchase walks the referrer's upline and credits one
	// transaction per ancestor level. Replays are detected and rejected.
	DistributeForPurchase(ctx context.Context, purchase *repository.Purchase, product *repository.Product) ([]*repository.Transaction, error)
	TransactionsByMember(ctx context.Context, memberID string) ([]*repository.Transaction, error)
	TotalEarned(ctx context.Context, memberID string) (int64, error)
	IncentiveScheme() *models.IncentiveSchemeResponse
}

type commissionService struct {
	cfg             *config.Config
	memberRepo      repository.MemberRepository
	transactionRepo repository.TransactionRepository
	notifSvc        *notification.Service
	broadcaster     *socket.Broadcaster
}

func NewCommissionService(
	cfg *config.Config,
	memberRepo repository.MemberRepository,
	transactionRepo repository.TransactionRepository,
	notifSvc *notification.Service,
	broadcaster *socket.Broadcaster,
) CommissionService {
	return &commissionService{
		cfg:             cfg,
		memberRepo:      memberRepo,
		transactionRepo: transactionRepo,
		notifSvc:        notifSvc,
		broadcaster:     broadcaster,
	}
}

func (s *commissionService) DistributeForPurchase(ctx context.Context, purchase *repository.Purchase, product *repository.Product) ([]*repository.Transaction, error) {
	if purchase.ReferrerID == nil || *purchase.ReferrerID == "" {
		return nil, nil
	}

	exists, err := s.transactionRepo.ExistsForPurchase(ctx, purchase.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing distribution: %w", err)
	}
	if exists {
		return nil, ErrAlreadyDistributed
	}

	chain, err := s.uplineChain(ctx, *purchase.ReferrerID)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, nil
	}

	payouts := computePayouts(
		product.Price,
		product.CommissionRate,
		int64(s.cfg.SponsorBonusPercent),
		int64(s.cfg.IncentiveCapPercent),
		len(chain),
	)

	var transactions []*repository.Transaction
	for i, p := range payouts {
		if p.Commission == 0 && p.SponsorBonus == 0 {
			continue
		}
		transactions = append(transactions, &repository.Transaction{
			PurchaseID:       purchase.ID,
			MemberID:         chain[i].ID,
			Level:            int64(i + 1),
			CommissionAmount: p.Commission,
			SponsorBonus:     p.SponsorBonus,
			ProductPrice:     product.Price,
		})
	}
	if len(transactions) == 0 {
		return nil, nil
	}

	if err := s.transactionRepo.CreateBatch(ctx, transactions); err != nil {
		return nil, fmt.Errorf("failed to record commissions: %w", err)
	}

	for _, t := range transactions {
		amount := t.CommissionAmount + t.SponsorBonus
		monitoring.CommissionCreditedTotal.Add(float64(amount))
		log.Printf("[Commission] Credited Rp%d to member %s (level %d, purchase %d)",
			amount, t.MemberID, t.Level, t.PurchaseID)

		if s.notifSvc != nil {
			s.notifSvc.Notify(ctx, t.MemberID, "commission",
				"Komisi Diterima",
				fmt.Sprintf("Anda menerima komisi Rp%d dari penjualan %s.", amount, product.Name))
		}
		if s.broadcaster != nil {
			s.broadcaster.SendCommissionCredited(t.MemberID, fmt.Sprintf("%d", t.PurchaseID), int(t.Level), amount)
		}
	}

	return transactions, nil
}

func (s *commissionService) TransactionsByMember(ctx context.Context, memberID string) ([]*repository.Transaction, error) {
	return s.transactionRepo.FindByMember(ctx, memberID)
}

func (s *commissionService) TotalEarned(ctx context.Context, memberID string) (int64, error) {
	return s.transactionRepo.TotalEarnedByMember(ctx, memberID)
}

func (s *commissionService) IncentiveScheme() *models.IncentiveSchemeResponse {
	return &models.IncentiveSchemeResponse{
		TotalCapPercent: fmt.Sprintf("%d%%", s.cfg.IncentiveCapPercent),
		Components: []models.IncentiveComponent{
			{Name: "Komisi Penjualan Langsung", Percent: "25%"},
			{Name: "Bonus Sponsor", Percent: "10%"},
			{Name: "Bonus Jaringan", Percent: "7%"},
			{Name: "Bonus Kepemimpinan", Percent: "5%"},
			{Name: "Bonus Prestasi", Percent: "3%"},
		},
		LevelRates: map[string]string{
			"1":  "10%",
			"2":  "5%",
			"3":  "2%",
			"4":  "1%",
			"5":  "0.5%",
			"6+": "0.25%",
		},
	}
}

// uplineChain walks sponsor edges from the referrer upward, referrer first.
func (s *commissionService) uplineChain(ctx context.Context, referrerID string) ([]*repository.Member, error) {
	referrer, err := s.memberRepo.FindByID(ctx, referrerID)
	if err != nil {
		return nil, err
	}
	if referrer == nil {
		return nil, nil
	}

	chain := []*repository.Member{referrer}
	visited := map[string]bool{referrer.ID: true}

	current := referrer
	for current.SponsorID != nil {
		sponsor, err := s.memberRepo.FindByID(ctx, *current.SponsorID)
		if err != nil {
			return nil, err
		}
		if sponsor == nil || visited[sponsor.ID] {
			break
		}
		visited[sponsor.ID] = true
		chain = append(chain, sponsor)
		current = sponsor
	}
	return chain, nil
}

type payout struct {
	Commission   int64
	SponsorBonus int64
}

// computePayouts derives whole-rupiah payouts for each upline level.
// The total of all commissions plus the sponsor bonus never exceeds
// capPercent of the product price; amounts are credited level 1 upward
// and truncated once the envelope runs out.
func computePayouts(price, level1RatePercent, sponsorBonusPercent, capPercent int64, chainLen int) []payout {
	priceDec := decimal.NewFromInt(price)
	envelope := priceDec.Mul(decimal.NewFromInt(capPercent)).Div(decimal.NewFromInt(100)).Floor().IntPart()

	payouts := make([]payout, chainLen)
	remaining := envelope

	credit := func(amount int64) int64 {
		if amount > remaining {
			amount = remaining
		}
		remaining -= amount
		return amount
	}

	for level := 1; level <= chainLen && remaining > 0; level++ {
		bp := rateBasisPoints(level, level1RatePercent)
		commission := priceDec.Mul(decimal.NewFromInt(bp)).Div(decimal.NewFromInt(10000)).Floor().IntPart()
		payouts[level-1].Commission = credit(commission)

		// The direct sponsor also receives the sponsor bonus.
		if level == 1 && remaining > 0 {
			bonus := priceDec.Mul(decimal.NewFromInt(sponsorBonusPercent)).Div(decimal.NewFromInt(100)).Floor().IntPart()
			payouts[0].SponsorBonus = credit(bonus)
		}
	}
	return payouts
}

func rateBasisPoints(level int, level1RatePercent int64) int64 {
	if level == 1 {
		return level1RatePercent * 100
	}
	idx := level - 2
	if idx < len(uplineRateBasisPoints) {
		return uplineRateBasisPoints[idx]
	}
	return deepLevelBasisPoints
}
