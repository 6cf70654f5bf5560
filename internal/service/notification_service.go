package service

import (
	"context"

	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
)

// ============================================
// Notification Service
// ============================================

type NotificationService interface {
	GetByMember(ctx context.Context, memberID string) ([]*repository.Notification, error)
	MarkRead(ctx context.Context, id, memberID string) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) GetByMember(ctx context.Context, memberID string) ([]*repository.Notification, error) {
	return s.notificationRepo.FindByMember(ctx, memberID)
}

func (s *notificationService) MarkRead(ctx context.Context, id, memberID string) error {
	return s.notificationRepo.MarkRead(ctx, id, memberID)
}
