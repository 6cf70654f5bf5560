package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/myrepublic-hub/network-hub-backend/internal/config"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
	"github.com/myrepublic-hub/network-hub-backend/internal/service"
)

// ============================================
// Cron Scheduler
// ============================================

type Scheduler struct {
	cron     *cron.Cron
	cfg      *config.Config
	services *service.Services
	repos    *repository.Repositories
}

func NewScheduler(cfg *config.Config, services *service.Services, repos *repository.Repositories) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		cfg:      cfg,
		services: services,
		repos:    repos,
	}
}

// Start registers all scheduled jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	// Refresh leaderboard caches every hour
	_, err := s.cron.AddFunc("0 * * * *", func() {
		s.refreshLeaderboards()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule leaderboard refresh: %w", err)
	}

	// Cancel stale pending purchases daily at 02:00
	_, err = s.cron.AddFunc("0 2 * * *", func() {
		s.cancelStalePurchases()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule stale purchase cleanup: %w", err)
	}

	// Purge old notifications weekly on Sunday at 03:00
	_, err = s.cron.AddFunc("0 3 * * 0", func() {
		s.cleanupNotifications()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule notification cleanup: %w", err)
	}

	// Drop expired refresh tokens daily at 04:00
	_, err = s.cron.AddFunc("0 4 * * *", func() {
		s.cleanupRefreshTokens()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule token cleanup: %w", err)
	}

	s.cron.Start()
	log.Println("[Cron] Scheduler started with 4 jobs")
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("[Cron] Scheduler stopped")
}

// ManualTrigger runs a specific job on demand, outside its schedule.
func (s *Scheduler) ManualTrigger(jobType string) error {
	switch jobType {
	case "leaderboard":
		s.refreshLeaderboards()
	case "stale_purchases":
		s.cancelStalePurchases()
	case "notifications":
		s.cleanupNotifications()
	case "refresh_tokens":
		s.cleanupRefreshTokens()
	default:
		return fmt.Errorf("unknown job type: %s", jobType)
	}
	return nil
}

func (s *Scheduler) refreshLeaderboards() {
	log.Println("[Cron] Refreshing leaderboards...")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.services.Leaderboard.Refresh(ctx); err != nil {
		log.Printf("[Cron] ❌ Leaderboard refresh failed: %v", err)
		return
	}
	log.Println("[Cron] ✅ Leaderboards refreshed")
}

func (s *Scheduler) cancelStalePurchases() {
	log.Println("[Cron] Cancelling stale pending purchases...")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	maxAge := time.Duration(s.cfg.StalePurchaseDays) * 24 * time.Hour
	count, err := s.repos.PurchaseRepo.CancelStalePending(ctx, maxAge)
	if err != nil {
		log.Printf("[Cron] ❌ Stale purchase cleanup failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("[Cron] ✅ Cancelled %d stale purchases", count)
	}
}

func (s *Scheduler) cleanupNotifications() {
	log.Println("[Cron] Purging old notifications...")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	count, err := s.repos.NotificationRepo.DeleteOlderThan(ctx, 30*24*time.Hour)
	if err != nil {
		log.Printf("[Cron] ❌ Notification cleanup failed: %v", err)
		return
	}
	log.Printf("[Cron] ✅ Purged %d old notifications", count)
}

func (s *Scheduler) cleanupRefreshTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	count, err := s.repos.MemberRepo.DeleteExpiredRefreshTokens(ctx)
	if err != nil {
		log.Printf("[Cron] ❌ Refresh token cleanup failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("[Cron] ✅ Deleted %d expired refresh tokens", count)
	}
}
