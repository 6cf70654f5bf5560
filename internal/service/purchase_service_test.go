package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrepublic-hub/network-hub-backend/internal/config"
	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
	"github.com/myrepublic-hub/network-hub-backend/internal/types"
)

type purchaseFixture struct {
	memberRepo      *fakeMemberRepo
	productRepo     *fakeProductRepo
	purchaseRepo    *fakePurchaseRepo
	transactionRepo *fakeTransactionRepo
	achievementRepo *fakeAchievementRepo
	svc             PurchaseService
}

func newPurchaseFixture() *purchaseFixture {
	f := &purchaseFixture{
		memberRepo:      newFakeMemberRepo(),
		productRepo:     &fakeProductRepo{},
		purchaseRepo:    &fakePurchaseRepo{},
		transactionRepo: &fakeTransactionRepo{},
		achievementRepo: &fakeAchievementRepo{},
	}
	cfg := &config.Config{SponsorBonusPercent: 10, IncentiveCapPercent: 50}
	commissionSvc := NewCommissionService(cfg, f.memberRepo, f.transactionRepo, nil, nil)
	f.svc = NewPurchaseService(
		f.purchaseRepo, f.productRepo, f.memberRepo, f.achievementRepo,
		commissionSvc, nil, nil,
	)
	return f
}

func (f *purchaseFixture) seedProduct(t *testing.T) *repository.Product {
	t.Helper()
	neo := &repository.Product{Name: "NEO", Price: 233_100, CommissionRate: 10}
	require.NoError(t, f.productRepo.Create(context.Background(), neo))
	return neo
}

func TestCreatePurchase_StartsPending(t *testing.T) {
	f := newPurchaseFixture()
	neo := f.seedProduct(t)

	purchase, err := f.svc.Create(context.Background(), &models.CreatePurchaseRequest{
		BuyerName: "Andi", Contact: "0812", Address: "Bandung", ProductID: neo.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, types.PurchasePending, purchase.Status)
	assert.Nil(t, purchase.ReferrerID)
}

func TestCreatePurchase_UnknownProduct(t *testing.T) {
	f := newPurchaseFixture()

	_, err := f.svc.Create(context.Background(), &models.CreatePurchaseRequest{
		BuyerName: "Andi", Contact: "0812", Address: "Bandung", ProductID: 42,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePurchase_UnknownReferrer(t *testing.T) {
	f := newPurchaseFixture()
	neo := f.seedProduct(t)

	ghost := "ghost"
	_, err := f.svc.Create(context.Background(), &models.CreatePurchaseRequest{
		BuyerName: "Andi", Contact: "0812", Address: "Bandung",
		ProductID: neo.ID, ReferrerID: &ghost,
	})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestProcessWithCommissions_SettlesEverything(t *testing.T) {
	f := newPurchaseFixture()
	neo := f.seedProduct(t)

	sari := f.memberRepo.addMember("sari", "Sari", nil)
	budi := f.memberRepo.addMember("budi", "Budi", &sari.ID)

	purchase, err := f.svc.ProcessWithCommissions(context.Background(), &models.CreatePurchaseRequest{
		BuyerName: "Andi", Contact: "0812", Address: "Bandung",
		ProductID: neo.ID, ReferrerID: &budi.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, types.PurchaseCompleted, purchase.Status)

	// Commission rows for both upline levels.
	require.Len(t, f.transactionRepo.rows, 2)
	assert.Equal(t, "budi", f.transactionRepo.rows[0].MemberID)
	assert.Equal(t, "sari", f.transactionRepo.rows[1].MemberID)

	// First completed sale verifies the referrer's subscription.
	assert.True(t, f.memberRepo.members["budi"].SubscriptionsVerified)
	assert.False(t, f.memberRepo.members["sari"].SubscriptionsVerified)

	// The referrer gets a sales record for the sale.
	require.Len(t, f.achievementRepo.sales, 1)
	assert.Equal(t, "budi", f.achievementRepo.sales[0].MemberID)
	assert.Equal(t, neo.Price, f.achievementRepo.sales[0].Amount)
}

func TestUpdateStatus_CompletingPendingPurchaseSettles(t *testing.T) {
	f := newPurchaseFixture()
	neo := f.seedProduct(t)
	sari := f.memberRepo.addMember("sari", "Sari", nil)

	purchase, err := f.svc.Create(context.Background(), &models.CreatePurchaseRequest{
		BuyerName: "Andi", Contact: "0812", Address: "Bandung",
		ProductID: neo.ID, ReferrerID: &sari.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, f.transactionRepo.rows)

	updated, err := f.svc.UpdateStatus(context.Background(), purchase.ID, types.PurchaseCompleted)
	require.NoError(t, err)
	assert.Equal(t, types.PurchaseCompleted, updated.Status)
	assert.NotEmpty(t, f.transactionRepo.rows)
	assert.True(t, f.memberRepo.members["sari"].SubscriptionsVerified)
}

func TestUpdateStatus_TerminalStatesAreFinal(t *testing.T) {
	f := newPurchaseFixture()
	neo := f.seedProduct(t)

	purchase, err := f.svc.Create(context.Background(), &models.CreatePurchaseRequest{
		BuyerName: "Andi", Contact: "0812", Address: "Bandung", ProductID: neo.ID,
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), purchase.ID, types.PurchaseCancelled)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), purchase.ID, types.PurchaseCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	f := newPurchaseFixture()

	_, err := f.svc.UpdateStatus(context.Background(), 1, "Shipped")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProcessWithCommissions_SecondSaleDoesNotReverify(t *testing.T) {
	f := newPurchaseFixture()
	neo := f.seedProduct(t)

	sari := f.memberRepo.addMember("sari", "Sari", nil)
	sari.SubscriptionsVerified = true

	_, err := f.svc.ProcessWithCommissions(context.Background(), &models.CreatePurchaseRequest{
		BuyerName: "Andi", Contact: "0812", Address: "Bandung",
		ProductID: neo.ID, ReferrerID: &sari.ID,
	})
	require.NoError(t, err)

	assert.True(t, f.memberRepo.members["sari"].SubscriptionsVerified)
	assert.Len(t, f.achievementRepo.sales, 1)
}
