package service

import (
	"firstaid_backend/internal/model"
	"firstaid_backend/internal/repository"
)

type ProfileService struct {
	UserRepo        *repository.UserRepository
	CatalogRepo     *repository.CatalogRepository
	ProgressRepo    *repository.ProgressRepository
	AchievementRepo *repository.AchievementRepository
}

func NewProfileService(
	userRepo *repository.UserRepository,
	catalogRepo *repository.CatalogRepository,
	progressRepo *repository.ProgressRepository,
	achievementRepo *repository.AchievementRepository,
) *ProfileService {
	return &ProfileService{
		UserRepo:        userRepo,
		CatalogRepo:     catalogRepo,
		ProgressRepo:    progressRepo,
		AchievementRepo: achievementRepo,
	}
}

type ProfileView struct {
	User               *model.User                `json:"user"`
	TotalPoints        int                        `json:"totalPoints"`
	CompletedModules   int                        `json:"completedModules"`
	TotalModules       int                        `json:"totalModules"`
	CompletedScenarios int                        `json:"completedScenarios"`
	Level              string                     `json:"level"`
	Accuracy           float64                    `json:"accuracy"`
	AchievementCount   int                        `json:"achievementCount"`
	ModuleProgress     []model.UserModuleProgress `json:"moduleProgress"`
}

// Accuracy averages completed module scores as a percentage of 100, capped at 100.
func Accuracy(completedScores []int) float64 {
	if len(completedScores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range completedScores {
		sum += s
	}
	avg := float64(sum) / float64(len(completedScores))
	if avg > 100 {
		return 100
	}
	return avg
}

func (s *ProfileService) GetProfile(userID uint) (*ProfileView, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.ProgressRepo.GetUserStats(userID)
	if err != nil {
		return nil, err
	}
	totalModules, err := s.CatalogRepo.CountModules()
	if err != nil {
		return nil, err
	}
	achievementCount, err := s.AchievementRepo.CountByUserID(userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.ProgressRepo.ListModuleProgress(userID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		User:               user,
		TotalPoints:        stats.TotalPoints(),
		CompletedModules:   stats.CompletedModules,
		TotalModules:       int(totalModules),
		CompletedScenarios: stats.CompletedScenarios,
		Level:              LevelFor(stats.CompletedModules),
		Accuracy:           Accuracy(stats.CompletedModuleScores),
		AchievementCount:   int(achievementCount),
		ModuleProgress:     rows,
	}, nil
}
