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
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// iconPrefix namespaces uploaded icons inside the storage backend.
const iconPrefix = "achievements/"

type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
	ProgressRepo    *repository.ProgressRepository
	Storage         *StorageService
}

func NewAchievementService(
	achievementRepo *repository.AchievementRepository,
	progressRepo *repository.ProgressRepository,
	storage *StorageService,
) *AchievementService {
	return &AchievementService{
		AchievementRepo: achievementRepo,
		ProgressRepo:    progressRepo,
		Storage:         storage,
	}
}

type AchievementStatus struct {
	Achievement model.Achievement `json:"achievement"`
	Achieved    bool              `json:"achieved"`
}

type AchievementsView struct {
	Achievements  []AchievementStatus `json:"achievements"`
	UnlockedCount int                 `json:"unlockedCount"`
	NewlyUnlocked []string            `json:"newlyUnlocked"`
}

// achievementLookup is built per evaluation from the catalog and the user's grants.
type achievementLookup struct {
	byTitle map[string]model.Achievement
	earned  map[uint]bool
}

func (s *AchievementService) loadLookup(userID uint) ([]model.Achievement, *achievementLookup, error) {
	all, err := s.AchievementRepo.FindAll()
	if err != nil {
		return nil, nil, err
	}
	earned, err := s.AchievementRepo.EarnedIDs(userID)
	if err != nil {
		return nil, nil, err
	}

	byTitle := make(map[string]model.Achievement, len(all))
	for _, a := range all {
		byTitle[a.Title] = a
	}
	return all, &achievementLookup{byTitle: byTitle, earned: earned}, nil
}

// CheckAndGrant evaluates the rule table against the user's current progress and
// grants every satisfied achievement the user does not hold yet. Titles missing
// from the catalog are skipped. It returns only the grants written by this call.
func (s *AchievementService) CheckAndGrant(ctx context.Context, userID uint) ([]model.Achievement, error) {
	_, lookup, err := s.loadLookup(userID)
	if err != nil {
		return nil, err
	}
	return s.grant(ctx, userID, lookup)
}

func (s *AchievementService) grant(ctx context.Context, userID uint, lookup *achievementLookup) ([]model.Achievement, error) {
	_, span := tracing.Tracer.Start(ctx, "achievements.check")
	defer span.End()

	stats, err := s.ProgressRepo.GetUserStats(userID)
	if err != nil {
		return nil, err
	}

	var unlocked []model.Achievement
	for _, title := range EvaluateAchievementRules(stats) {
		a, ok := lookup.byTitle[title]
		if !ok || lookup.earned[a.ID] {
			continue
		}

		created, err := s.AchievementRepo.Grant(userID, a.ID)
		if err != nil {
			return unlocked, fmt.Errorf("grant %q: %w", title, err)
		}
		lookup.earned[a.ID] = true
		if !created {
			continue
		}

		monitoring.AchievementsGranted.WithLabelValues(title).Inc()
		logger.Log.Info("Achievement unlocked",
			zap.Uint("user_id", userID),
			zap.String("achievement", title),
		)
		unlocked = append(unlocked, a)
	}
	return unlocked, nil
}

// GetAchievements runs the unlock check and returns the full catalog with the
// user's earned flags.
func (s *AchievementService) GetAchievements(ctx context.Context, userID uint) (*AchievementsView, error) {
	all, lookup, err := s.loadLookup(userID)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.grant(ctx, userID, lookup)
	if err != nil {
		return nil, err
	}

	view := &AchievementsView{
		Achievements:  make([]AchievementStatus, 0, len(all)),
		NewlyUnlocked: make([]string, 0, len(unlocked)),
	}
	for _, a := range unlocked {
		view.NewlyUnlocked = append(view.NewlyUnlocked, a.Title)
	}
	for _, a := range all {
		achieved := lookup.earned[a.ID]
		if achieved {
			view.UnlockedCount++
		}
		view.Achievements = append(view.Achievements, AchievementStatus{Achievement: a, Achieved: achieved})
	}
	return view, nil
}

// UpdateIcon stores an uploaded image and points the achievement's icon at it.
func (s *AchievementService) UpdateIcon(ctx context.Context, id uint, filename string, file io.ReadSeeker, size int64) (*model.Achievement, error) {
	a, err := s.AchievementRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAchievementNotFound
		}
		return nil, err
	}

	mimeType, err := util.ValidateMimeType(file, []string{util.MimeImage})
	if err != nil {
		return nil, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectName := iconPrefix + uuid.NewString() + ext
	url, err := s.Storage.Upload(ctx, objectName, file, size, mimeType)
	if err != nil {
		return nil, fmt.Errorf("upload icon: %w", err)
	}

	if err := s.AchievementRepo.UpdateIcon(a.ID, url); err != nil {
		return nil, err
	}

	previous := a.Icon
	a.Icon = url
	if name, ok := s.Storage.ObjectName(previous); ok && strings.HasPrefix(name, iconPrefix) {
		if err := s.Storage.Delete(ctx, name); err != nil {
			logger.Log.Warn("Failed to delete replaced achievement icon",
				zap.Uint("achievement_id", a.ID),
				zap.String("object", name),
				zap.Error(err),
			)
		}
	}
	return a, nil
}
