package service_test

import (
	"firstaid_backend/internal/config"
	"firstaid_backend/internal/model"
	"firstaid_backend/internal/repository"
	"firstaid_backend/internal/service"
	"testing"
	"time"

	"gorm.io/gorm"
)

type testServices struct {
	catalog     *service.CatalogService
	progress    *service.ProgressService
	achievement *service.AchievementService
	leaderboard *service.LeaderboardService
	profile     *service.ProfileService
	auth        *service.AuthService
}

func newServices(t *testing.T, db *gorm.DB, cache service.LeaderboardCache) *testServices {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "jwt-secret-for-tests-0123456789abcdef"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Storage = config.StorageConfig{Type: "local", LocalPath: t.TempDir()}

	users := repository.NewUserRepository(db)
	catalog := repository.NewCatalogRepository(db)
	progress := repository.NewProgressRepository(db)
	achievements := repository.NewAchievementRepository(db)
	leaderboard := repository.NewLeaderboardRepository(db)

	storage := service.NewStorageService(&cfg.Storage)
	achievementSvc := service.NewAchievementService(achievements, progress, storage)

	return &testServices{
		catalog:     service.NewCatalogService(catalog, progress),
		progress:    service.NewProgressService(db, catalog, progress, achievementSvc, cache),
		achievement: achievementSvc,
		leaderboard: service.NewLeaderboardService(leaderboard, progress, cache),
		profile:     service.NewProfileService(users, catalog, progress, achievements),
		auth:        service.NewAuthService(users, cache, cfg),
	}
}

func intPtr(v int) *int { return &v }

func countTitle(list []model.Achievement, title string) int {
	n := 0
	for _, a := range list {
		if a.Title == title {
			n++
		}
	}
	return n
}

var moduleSlugs = []string{
	"burns_quiz", "wounds_quiz", "fractures_and_sprains_quiz", "cardiac_emergencies_quiz", "choking_quiz",
	"heat_quiz", "cold_quiz", "poison_quiz", "venom_quiz", "allergy_quiz",
}

var scenarioSlugs = []string{"restaurant_scenario", "hiking_scenario", "burns_scenario"}
