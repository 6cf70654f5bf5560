package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrepublic-hub/network-hub-backend/internal/config"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
)

func TestComputePayouts_DecayingSchedule(t *testing.T) {
	// 1,000,000 at 10% direct, 10% sponsor bonus, 50% cap, six levels.
	payouts := computePayouts(1_000_000, 10, 10, 50, 6)
	require.Len(t, payouts, 6)

	assert.Equal(t, int64(100_000), payouts[0].Commission)
	assert.Equal(t, int64(100_000), payouts[0].SponsorBonus)
	assert.Equal(t, int64(50_000), payouts[1].Commission)
	assert.Equal(t, int64(20_000), payouts[2].Commission)
	assert.Equal(t, int64(10_000), payouts[3].Commission)
	assert.Equal(t, int64(5_000), payouts[4].Commission)
	// Level 6 and beyond flatten at 0.25%.
	assert.Equal(t, int64(2_500), payouts[5].Commission)

	for _, p := range payouts[1:] {
		assert.Zero(t, p.SponsorBonus, "only level 1 receives the sponsor bonus")
	}
}

func TestComputePayouts_EnvelopeCap(t *testing.T) {
	// 45% direct commission plus 10% bonus would exceed the 50% cap, so
	// the bonus is truncated and deeper levels get nothing.
	payouts := computePayouts(100_000, 45, 10, 50, 3)
	require.Len(t, payouts, 3)

	assert.Equal(t, int64(45_000), payouts[0].Commission)
	assert.Equal(t, int64(5_000), payouts[0].SponsorBonus)
	assert.Zero(t, payouts[1].Commission)
	assert.Zero(t, payouts[2].Commission)
}

func TestComputePayouts_TotalNeverExceedsCap(t *testing.T) {
	for _, chainLen := range []int{1, 2, 5, 10, 25} {
		payouts := computePayouts(943_500, 10, 10, 50, chainLen)

		var total int64
		for _, p := range payouts {
			total += p.Commission + p.SponsorBonus
		}
		assert.LessOrEqual(t, total, int64(943_500/2), "chain length %d", chainLen)
	}
}

func TestComputePayouts_FloorsToWholeRupiah(t *testing.T) {
	payouts := computePayouts(999, 10, 10, 50, 1)
	require.Len(t, payouts, 1)

	// 99.9 floors to 99.
	assert.Equal(t, int64(99), payouts[0].Commission)
	assert.Equal(t, int64(99), payouts[0].SponsorBonus)
}

func TestComputePayouts_SingleLevelChain(t *testing.T) {
	payouts := computePayouts(233_100, 10, 10, 50, 1)
	require.Len(t, payouts, 1)
	assert.Equal(t, int64(23_310), payouts[0].Commission)
	assert.Equal(t, int64(23_310), payouts[0].SponsorBonus)
}

func TestRateBasisPoints(t *testing.T) {
	assert.Equal(t, int64(1000), rateBasisPoints(1, 10))
	assert.Equal(t, int64(500), rateBasisPoints(2, 10))
	assert.Equal(t, int64(200), rateBasisPoints(3, 10))
	assert.Equal(t, int64(100), rateBasisPoints(4, 10))
	assert.Equal(t, int64(50), rateBasisPoints(5, 10))
	assert.Equal(t, int64(25), rateBasisPoints(6, 10))
	assert.Equal(t, int64(25), rateBasisPoints(12, 10))
}

func newCommissionFixture() (*fakeMemberRepo, *fakeTransactionRepo, CommissionService) {
	memberRepo := newFakeMemberRepo()
	transactionRepo := &fakeTransactionRepo{}
	cfg := &config.Config{SponsorBonusPercent: 10, IncentiveCapPercent: 50}
	svc := NewCommissionService(cfg, memberRepo, transactionRepo, nil, nil)
	return memberRepo, transactionRepo, svc
}

func TestDistributeForPurchase_CreditsWholeUpline(t *testing.T) {
	memberRepo, _, svc := newCommissionFixture()

	sari := memberRepo.addMember("sari", "Sari", nil)
	budi := memberRepo.addMember("budi", "Budi", &sari.ID)
	citra := memberRepo.addMember("citra", "Citra", &budi.ID)

	purchase := &repository.Purchase{ID: 1, ReferrerID: &citra.ID}
	product := &repository.Product{ID: 1, Name: "NEO", Price: 233_100, CommissionRate: 10}

	transactions, err := svc.DistributeForPurchase(context.Background(), purchase, product)
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	assert.Equal(t, "citra", transactions[0].MemberID)
	assert.Equal(t, int64(1), transactions[0].Level)
	assert.Equal(t, int64(23_310), transactions[0].CommissionAmount)
	assert.Equal(t, int64(23_310), transactions[0].SponsorBonus)

	assert.Equal(t, "budi", transactions[1].MemberID)
	assert.Equal(t, int64(2), transactions[1].Level)
	assert.Equal(t, int64(11_655), transactions[1].CommissionAmount)
	assert.Zero(t, transactions[1].SponsorBonus)

	assert.Equal(t, "sari", transactions[2].MemberID)
	assert.Equal(t, int64(3), transactions[2].Level)
	assert.Equal(t, int64(4_662), transactions[2].CommissionAmount)
}

func TestDistributeForPurchase_Idempotent(t *testing.T) {
	memberRepo, transactionRepo, svc := newCommissionFixture()

	sari := memberRepo.addMember("sari", "Sari", nil)
	purchase := &repository.Purchase{ID: 7, ReferrerID: &sari.ID}
	product := &repository.Product{ID: 1, Name: "VELO", Price: 277_500, CommissionRate: 10}

	first, err := svc.DistributeForPurchase(context.Background(), purchase, product)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := svc.DistributeForPurchase(context.Background(), purchase, product)
	assert.ErrorIs(t, err, ErrAlreadyDistributed)
	assert.Nil(t, second)
	assert.Len(t, transactionRepo.rows, len(first), "replay must not add rows")
}

func TestDistributeForPurchase_NoReferrer(t *testing.T) {
	_, transactionRepo, svc := newCommissionFixture()

	purchase := &repository.Purchase{ID: 2}
	product := &repository.Product{ID: 1, Price: 233_100, CommissionRate: 10}

	transactions, err := svc.DistributeForPurchase(context.Background(), purchase, product)
	require.NoError(t, err)
	assert.Nil(t, transactions)
	assert.Empty(t, transactionRepo.rows)
}

func TestDistributeForPurchase_SurvivesSponsorCycle(t *testing.T) {
	memberRepo, _, svc := newCommissionFixture()

	// Corrupt data: sari and budi sponsor each other.
	budiID := "budi"
	sari := memberRepo.addMember("sari", "Sari", &budiID)
	budi := memberRepo.addMember("budi", "Budi", &sari.ID)

	purchase := &repository.Purchase{ID: 3, ReferrerID: &budi.ID}
	product := &repository.Product{ID: 1, Price: 233_100, CommissionRate: 10}

	transactions, err := svc.DistributeForPurchase(context.Background(), purchase, product)
	require.NoError(t, err)
	assert.Len(t, transactions, 2, "each member credited once despite the cycle")
}

func TestTotalEarned(t *testing.T) {
	memberRepo, transactionRepo, svc := newCommissionFixture()

	sari := memberRepo.addMember("sari", "Sari", nil)
	transactionRepo.rows = []*repository.Transaction{
		{PurchaseID: 1, MemberID: sari.ID, Level: 1, CommissionAmount: 10_000, SponsorBonus: 5_000},
		{PurchaseID: 2, MemberID: sari.ID, Level: 2, CommissionAmount: 2_500},
		{PurchaseID: 3, MemberID: "other", Level: 1, CommissionAmount: 99_999},
	}

	total, err := svc.TotalEarned(context.Background(), sari.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(17_500), total)
}
