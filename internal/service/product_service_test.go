package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
)

func TestInitializeDefaults_SeedsCatalogOnce(t *testing.T) {
	productRepo := &fakeProductRepo{}
	svc := NewProductService(productRepo)

	require.NoError(t, svc.InitializeDefaults(context.Background()))

	products, _ := productRepo.FindAll(context.Background())
	require.Len(t, products, 6)

	byName := make(map[string]*repository.Product, len(products))
	for _, p := range products {
		byName[p.Name] = p
	}
	assert.Equal(t, int64(233_100), byName["NEO"].Price)
	assert.Equal(t, int64(277_500), byName["VELO"].Price)
	assert.Equal(t, int64(333_000), byName["NEXUS"].Price)
	assert.Equal(t, int64(555_000), byName["PRIME"].Price)
	assert.Equal(t, int64(721_000), byName["WONDER"].Price)
	assert.Equal(t, int64(943_500), byName["ULTRA"].Price)
	for name, p := range byName {
		assert.Equal(t, int64(10), p.CommissionRate, "%s commission rate", name)
	}

	// Second call is a no-op.
	require.NoError(t, svc.InitializeDefaults(context.Background()))
	products, _ = productRepo.FindAll(context.Background())
	assert.Len(t, products, 6)
}

func TestInitializeDefaults_SkipsNonEmptyCatalog(t *testing.T) {
	productRepo := &fakeProductRepo{}
	require.NoError(t, productRepo.Create(context.Background(), &repository.Product{Name: "Custom", Price: 1}))

	svc := NewProductService(productRepo)
	require.NoError(t, svc.InitializeDefaults(context.Background()))

	products, _ := productRepo.FindAll(context.Background())
	assert.Len(t, products, 1, "existing catalog must not be touched")
}

func TestProductCreateAndLookup(t *testing.T) {
	productRepo := &fakeProductRepo{}
	svc := NewProductService(productRepo)

	created, err := svc.Create(context.Background(), &models.CreateProductRequest{
		Name: "GIGA", Description: "Internet 2 Gbps", Price: 1_500_000, CommissionRate: 12,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "GIGA", found.Name)

	_, err = svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
