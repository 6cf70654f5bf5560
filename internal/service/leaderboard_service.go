package service

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/myrepublic-hub/network-hub-backend/internal/config"
	"github.com/myrepublic-hub/network-hub-backend/internal/db"
	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
	"github.com/myrepublic-hub/network-hub-backend/internal/types"
)

// ============================================
// Leaderboard Service
// ============================================

const leaderboardLimit = 50

type LeaderboardService interface {
	// Get returns the ranked leaderboard for the given type, serving
	// from the Redis cache when fresh.
	Get(ctx context.Context, leaderboardType string) (*models.LeaderboardResponse, error)
	// Refresh recomputes both leaderboards and rewrites the cache.
	Refresh(ctx context.Context) error
}

type leaderboardService struct {
	cfg             *config.Config
	memberRepo      repository.MemberRepository
	achievementRepo repository.AchievementRepository
	networkSvc      NetworkService
	redis           *db.RedisDB
}

func NewLeaderboardService(
	cfg *config.Config,
	memberRepo repository.MemberRepository,
	achievementRepo repository.AchievementRepository,
	networkSvc NetworkService,
	redis *db.RedisDB,
) LeaderboardService {
	return &leaderboardService{
		cfg:             cfg,
		memberRepo:      memberRepo,
		achievementRepo: achievementRepo,
		networkSvc:      networkSvc,
		redis:           redis,
	}
}

func (s *leaderboardService) Get(ctx context.Context, leaderboardType string) (*models.LeaderboardResponse, error) {
	if !types.IsValidLeaderboardType(leaderboardType) {
		return nil, ErrInvalidInput
	}

	if s.redis != nil {
		var cached models.LeaderboardResponse
		if err := s.redis.GetCache(ctx, cacheKey(leaderboardType), &cached); err == nil {
			return &cached, nil
		}
	}

	response, err := s.compute(ctx, leaderboardType)
	if err != nil {
		return nil, err
	}
	s.store(ctx, response)
	return response, nil
}

func (s *leaderboardService) Refresh(ctx context.Context) error {
	for _, t := range []string{types.LeaderboardDownlineCount, types.LeaderboardSalesVolume} {
		response, err := s.compute(ctx, t)
		if err != nil {
			return err
		}
		s.store(ctx, response)
	}
	return nil
}

func (s *leaderboardService) compute(ctx context.Context, leaderboardType string) (*models.LeaderboardResponse, error) {
	members, err := s.memberRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var scores map[string]int64
	switch leaderboardType {
	case types.LeaderboardDownlineCount:
		counts, err := s.networkSvc.DownlineCounts(ctx)
		if err != nil {
			return nil, err
		}
		scores = make(map[string]int64, len(counts))
		for id, c := range counts {
			scores[id] = int64(c)
		}
	case types.LeaderboardSalesVolume:
		// Sales volume is the rupiah value of recorded sales, not the
		// commission earned from them.
		scores, err = s.achievementRepo.SalesTotalsByMember(ctx)
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidInput
	}

	entries := make([]models.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		if m.Role == types.RoleAdmin {
			continue
		}
		entries = append(entries, models.LeaderboardEntry{
			MemberID: m.ID,
			Name:     m.Name,
			Score:    scores[m.ID],
		})
	}

	// Ties break by name so the ordering is stable between refreshes.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})

	if len(entries) > leaderboardLimit {
		entries = entries[:leaderboardLimit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return &models.LeaderboardResponse{Type: leaderboardType, Entries: entries}, nil
}

func (s *leaderboardService) store(ctx context.Context, response *models.LeaderboardResponse) {
	if s.redis == nil {
		return
	}
	ttl := time.Duration(s.cfg.LeaderboardCacheTTL) * time.Second
	if err := s.redis.SetCache(ctx, cacheKey(response.Type), response, ttl); err != nil {
		log.Printf("[Leaderboard] Failed to cache %s leaderboard: %v", response.Type, err)
	}
}

func cacheKey(leaderboardType string) string {
	return "leaderboard:" + leaderboardType
}
