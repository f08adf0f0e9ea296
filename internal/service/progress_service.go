package service

import (
	"context"
	"errors"
	"firstaid_backend/internal/model"
	"firstaid_backend/internal/repository"
	"firstaid_backend/internal/util"
	"firstaid_backend/pkg/logger"
	"firstaid_backend/pkg/monitoring"
	"firstaid_backend/pkg/tracing"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	KindModule   = "module"
	KindScenario = "scenario"
)

// ProgressSnapshot is the state of one progress row after a submission or page view.
type ProgressSnapshot struct {
	Kind         string     `json:"kind"`
	Slug         string     `json:"slug"`
	Title        string     `json:"title"`
	Score        int        `json:"score"`
	PassingScore int        `json:"passingScore"`
	Completed    bool       `json:"completed"`
	Attempts     int        `json:"attempts"`
	TimeSpent    *int       `json:"timeSpent"`
	LastAttempt  *time.Time `json:"lastAttempt"`
}

func newSnapshot(kind, slug, title string, passing int, p model.Progress) ProgressSnapshot {
	return ProgressSnapshot{
		Kind:         kind,
		Slug:         slug,
		Title:        title,
		Score:        p.Score,
		PassingScore: passing,
		Completed:    p.Completed,
		Attempts:     p.Attempts,
		TimeSpent:    p.TimeSpent,
		LastAttempt:  p.LastAttempt,
	}
}

type SubmissionResult struct {
	Progress        ProgressSnapshot    `json:"progress"`
	Improved        bool                `json:"improved"`
	NewAchievements []model.Achievement `json:"newAchievements"`
}

type ProgressService struct {
	DB           *gorm.DB
	CatalogRepo  *repository.CatalogRepository
	ProgressRepo *repository.ProgressRepository
	Achievements *AchievementService
	Cache        LeaderboardCache
	Now          func() time.Time
}

func NewProgressService(
	db *gorm.DB,
	catalogRepo *repository.CatalogRepository,
	progressRepo *repository.ProgressRepository,
	achievements *AchievementService,
	cache LeaderboardCache,
) *ProgressService {
	if cache == nil {
		cache = NoopLeaderboardCache{}
	}
	return &ProgressService{
		DB:           db,
		CatalogRepo:  catalogRepo,
		ProgressRepo: progressRepo,
		Achievements: achievements,
		Cache:        cache,
		Now:          time.Now,
	}
}

// SubmitModule records one quiz attempt for the module identified by slug.
func (s *ProgressService) SubmitModule(ctx context.Context, userID uint, slug string, sub Submission) (*SubmissionResult, error) {
	ctx, span := tracing.Tracer.Start(ctx, "progress.submit_module")
	defer span.End()
	span.SetAttributes(attribute.String("module.slug", slug), attribute.Int("submission.score", sub.Score))

	module, err := s.CatalogRepo.FindModuleBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	var (
		row      *model.UserModuleProgress
		improved bool
	)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.ProgressRepo.With(tx)
		row, err = repo.EnsureModuleProgress(userID, module.ID, true)
		if err != nil {
			return err
		}
		improved = ApplySubmission(&row.Progress, sub, module.PassingScore, s.Now())
		return repo.SaveModuleProgress(row)
	})
	if err != nil {
		return nil, fmt.Errorf("submit module %s: %w", slug, err)
	}

	result := &SubmissionResult{
		Progress: newSnapshot(KindModule, module.Slug, module.Title, module.PassingScore, row.Progress),
		Improved: improved,
	}
	s.afterSubmit(ctx, userID, result)
	return result, nil
}

// SubmitScenario records one attempt for the scenario identified by slug.
func (s *ProgressService) SubmitScenario(ctx context.Context, userID uint, slug string, sub Submission) (*SubmissionResult, error) {
	ctx, span := tracing.Tracer.Start(ctx, "progress.submit_scenario")
	defer span.End()
	span.SetAttributes(attribute.String("scenario.slug", slug), attribute.Int("submission.score", sub.Score))

	scenario, err := s.CatalogRepo.FindScenarioBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrScenarioNotFound
		}
		return nil, err
	}

	var (
		row      *model.UserScenarioProgress
		improved bool
	)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.ProgressRepo.With(tx)
		row, err = repo.EnsureScenarioProgress(userID, scenario.ID, true)
		if err != nil {
			return err
		}
		improved = ApplySubmission(&row.Progress, sub, scenario.PassingScore(), s.Now())
		return repo.SaveScenarioProgress(row)
	})
	if err != nil {
		return nil, fmt.Errorf("submit scenario %s: %w", slug, err)
	}

	result := &SubmissionResult{
		Progress: newSnapshot(KindScenario, scenario.Slug, scenario.Title, scenario.PassingScore(), row.Progress),
		Improved: improved,
	}
	s.afterSubmit(ctx, userID, result)
	return result, nil
}

// afterSubmit runs once the attempt is committed. Failures here are logged only;
// the next achievements or leaderboard view recomputes the same state.
func (s *ProgressService) afterSubmit(ctx context.Context, userID uint, result *SubmissionResult) {
	monitoring.SubmissionsTotal.WithLabelValues(result.Progress.Kind, strconv.FormatBool(result.Improved)).Inc()

	if err := s.Cache.Invalidate(ctx); err != nil {
		logger.Log.Warn("Failed to invalidate leaderboard cache", zap.Error(err))
	}

	result.NewAchievements = []model.Achievement{}
	if s.Achievements == nil {
		return
	}
	unlocked, err := s.Achievements.CheckAndGrant(ctx, userID)
	if err != nil {
		logger.Log.Error("Achievement check failed after submission",
			zap.Uint("user_id", userID),
			zap.String("slug", result.Progress.Slug),
			zap.Error(err),
		)
	}
	if len(unlocked) > 0 {
		result.NewAchievements = unlocked
	}
}
