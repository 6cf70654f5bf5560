package service

import (
	"context"
	"fmt"

	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
)

// ============================================
// Achievement Service
// ============================================

type AchievementService interface {
	Record(ctx context.Context, req *models.RecordAchievementRequest) (*repository.Achievement, error)
	GetByMember(ctx context.Context, memberID string) ([]*repository.Achievement, error)
	RecordSales(ctx context.Context, req *models.RecordSalesRequest) (*repository.SalesRecord, error)
}

type achievementService struct {
	achievementRepo repository.AchievementRepository
	memberRepo      repository.MemberRepository
	productRepo     repository.ProductRepository
}

func NewAchievementService(
	achievementRepo repository.AchievementRepository,
	memberRepo repository.MemberRepository,
	productRepo repository.ProductRepository,
) AchievementService {
	return &achievementService{
		achievementRepo: achievementRepo,
		memberRepo:      memberRepo,
		productRepo:     productRepo,
	}
}

func (s *achievementService) Record(ctx context.Context, req *models.RecordAchievementRequest) (*repository.Achievement, error) {
	member, err := s.memberRepo.FindByID(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	achievement := &repository.Achievement{
		MemberID:    req.MemberID,
		Description: req.Description,
	}
	if err := s.achievementRepo.Create(ctx, achievement); err != nil {
		return nil, fmt.Errorf("failed to record achievement: %w", err)
	}
	return achievement, nil
}

func (s *achievementService) GetByMember(ctx context.Context, memberID string) ([]*repository.Achievement, error) {
	return s.achievementRepo.FindByMember(ctx, memberID)
}

func (s *achievementService) RecordSales(ctx context.Context, req *models.RecordSalesRequest) (*repository.SalesRecord, error) {
	member, err := s.memberRepo.FindByID(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	record := &repository.SalesRecord{
		MemberID:  req.MemberID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Amount:    req.Amount,
	}
	if err := s.achievementRepo.CreateSalesRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record sales: %w", err)
	}
	return record, nil
}
