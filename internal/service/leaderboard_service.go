package service

import (
	"context"
	"firstaid_backend/internal/repository"
	"firstaid_backend/internal/util"
	"firstaid_backend/pkg/logger"

	"go.uber.org/zap"
)

type LeaderboardService struct {
	LeaderboardRepo *repository.LeaderboardRepository
	ProgressRepo    *repository.ProgressRepository
	Cache           LeaderboardCache
}

func NewLeaderboardService(
	leaderboardRepo *repository.LeaderboardRepository,
	progressRepo *repository.ProgressRepository,
	cache LeaderboardCache,
) *LeaderboardService {
	if cache == nil {
		cache = NoopLeaderboardCache{}
	}
	return &LeaderboardService{
		LeaderboardRepo: leaderboardRepo,
		ProgressRepo:    progressRepo,
		Cache:           cache,
	}
}

type LeaderboardView struct {
	Entries            []LeaderboardEntry `json:"leaderboard"`
	CurrentRank        int                `json:"currentRank"`
	YourPoints         int                `json:"yourPoints"`
	NextRankPoints     int                `json:"nextRankPoints"`
	CompletedScenarios int                `json:"completedScenarios"`
	ProgressPercent    int                `json:"progressPercent"`
}

// Entries returns the ranked list, from the cache when it holds one.
func (s *LeaderboardService) Entries(ctx context.Context) ([]LeaderboardEntry, error) {
	entries, ok, err := s.Cache.Get(ctx)
	if err != nil {
		logger.Log.Warn("Leaderboard cache read failed", zap.Error(err))
	}
	if ok {
		return entries, nil
	}

	totals, err := s.LeaderboardRepo.Totals()
	if err != nil {
		return nil, err
	}
	entries = RankEntries(totals)

	if err := s.Cache.Set(ctx, entries); err != nil {
		logger.Log.Warn("Leaderboard cache write failed", zap.Error(err))
	}
	return entries, nil
}

// Get returns the ranked list together with the requesting user's standing.
// CurrentRank is 0 when the user is not on the board.
func (s *LeaderboardService) Get(ctx context.Context, userID uint) (*LeaderboardView, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.ProgressRepo.GetUserStats(userID)
	if err != nil {
		return nil, err
	}

	rank, points, toNext := Standing(entries, userID)
	return &LeaderboardView{
		Entries:            entries,
		CurrentRank:        rank,
		YourPoints:         points,
		NextRankPoints:     toNext,
		CompletedScenarios: stats.CompletedScenarios,
		ProgressPercent:    ProgressPercent(stats.CompletedModules, stats.CompletedScenarios, util.TotalCatalogItems),
	}, nil
}
