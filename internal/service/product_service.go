package service

import (
	"context"
	"fmt"
	"log"

	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
)

// ============================================
// Product Service
// ============================================

type ProductService interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (*repository.Product, error)
	GetByID(ctx context.Context, id int64) (*repository.Product, error)
	GetAll(ctx context.Context) ([]*repository.Product, error)
	// InitializeDefaults seeds the internet package catalog once. It is a
	// no-op when any product already exists.
	InitializeDefaults(ctx context.Context) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// defaultPackages is the internet package catalog seeded on first boot.
// Prices are annual, in whole rupiah.
var defaultPackages = []repository.Product{
	{Name: "NEO", Description: "Internet 100 Mbps", Explanation: "Paket internet rumah 100 Mbps untuk kebutuhan harian.", Price: 233100, CommissionRate: 10},
	{Name: "VELO", Description: "Internet 300 Mbps", Explanation: "Paket internet rumah 300 Mbps untuk streaming dan gaming.", Price: 277500, CommissionRate: 10},
	{Name: "NEXUS", Description: "Internet 400 Mbps", Explanation: "Paket internet rumah 400 Mbps untuk keluarga aktif.", Price: 333000, CommissionRate: 10},
	{Name: "PRIME", Description: "Internet 500 Mbps", Explanation: "Paket internet rumah 500 Mbps untuk rumah dengan banyak perangkat.", Price: 555000, CommissionRate: 10},
	{Name: "WONDER", Description: "Internet 750 Mbps", Explanation: "Paket internet rumah 750 Mbps untuk pengguna berat.", Price: 721000, CommissionRate: 10},
	{Name: "ULTRA", Description: "Internet 1 Gbps", Explanation: "Paket internet rumah 1 Gbps dengan kecepatan penuh.", Price: 943500, CommissionRate: 10},
}

func (s *productService) Create(ctx context.Context, req *models.CreateProductRequest) (*repository.Product, error) {
	product := &repository.Product{
		Name:           req.Name,
		Description:    req.Description,
		Explanation:    req.Explanation,
		Price:          req.Price,
		CommissionRate: req.CommissionRate,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, id int64) (*repository.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

func (s *productService) GetAll(ctx context.Context) ([]*repository.Product, error) {
	return s.productRepo.FindAll(ctx)
}

func (s *productService) InitializeDefaults(ctx context.Context) error {
	count, err := s.productRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i := range defaultPackages {
		p := defaultPackages[i]
		if err := s.productRepo.Create(ctx, &p); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.Name, err)
		}
	}
	log.Printf("[Product] Seeded %d default internet packages", len(defaultPackages))
	return nil
}
