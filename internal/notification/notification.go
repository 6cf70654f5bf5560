package notification

import (
	"context"
	"log"

	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
	"github.com/myrepublic-hub/network-hub-backend/internal/socket"
)

// Service persists notifications and pushes them to connected members.
type Service struct {
	repo        repository.NotificationRepository
	broadcaster *socket.Broadcaster
}

func NewService(repo repository.NotificationRepository, broadcaster *socket.Broadcaster) *Service {
	return &Service{repo: repo, broadcaster: broadcaster}
}

// Notify stores a notification and delivers it over WebSocket if the
// member is online. Storage failure is logged, not returned: a missed
// notification must never fail the operation that triggered it.
func (s *Service) Notify(ctx context.Context, memberID, notifType, title, message string) {
	n := &repository.Notification{
		MemberID: memberID,
		Type:     notifType,
		Title:    title,
		Message:  message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("[Notification] Failed to store notification for member %s: %v", memberID, err)
		return
	}

	if s.broadcaster != nil {
		s.broadcaster.SendNotification(memberID, map[string]interface{}{
			"id":        n.ID,
			"type":      n.Type,
			"title":     n.Title,
			"message":   n.Message,
			"createdAt": n.CreatedAt,
		})
	}
}
