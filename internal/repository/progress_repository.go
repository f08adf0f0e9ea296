package repository

import (
	"firstaid_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// With returns a copy bound to db, typically a transaction.
func (r *ProgressRepository) With(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// UserProgressStats is the aggregated state the achievement rules read.
type UserProgressStats struct {
	ModulePoints          int
	ScenarioPoints        int
	CompletedModules      int
	CompletedScenarios    int
	QuickCompletion       bool
	CompletedModuleScores []int
}

func (s UserProgressStats) TotalPoints() int {
	return s.ModulePoints + s.ScenarioPoints
}

// QuickCompletionSeconds is the time_spent bound for a "quick" completed module.
const QuickCompletionSeconds = 30

// EnsureModuleProgress returns the (user, module) row, inserting a zeroed one first
// if none exists. With lock set, the row is read with SELECT ... FOR UPDATE.
func (r *ProgressRepository) EnsureModuleProgress(userID, moduleID uint, lock bool) (*model.UserModuleProgress, error) {
	row := model.UserModuleProgress{UserID: userID, ModuleID: moduleID}
	if err := r.DB.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error; err != nil {
		return nil, err
	}

	q := r.DB
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var p model.UserModuleProgress
	if err := q.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) EnsureScenarioProgress(userID, scenarioID uint, lock bool) (*model.UserScenarioProgress, error) {
	row := model.UserScenarioProgress{UserID: userID, ScenarioID: scenarioID}
	if err := r.DB.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error; err != nil {
		return nil, err
	}

	q := r.DB
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var p model.UserScenarioProgress
	if err := q.Where("user_id = ? AND scenario_id = ?", userID, scenarioID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) SaveModuleProgress(p *model.UserModuleProgress) error {
	return r.DB.Omit(clause.Associations).Save(p).Error
}

func (r *ProgressRepository) SaveScenarioProgress(p *model.UserScenarioProgress) error {
	return r.DB.Omit(clause.Associations).Save(p).Error
}

func (r *ProgressRepository) ListModuleProgress(userID uint) ([]model.UserModuleProgress, error) {
	var rows []model.UserModuleProgress
	err := r.DB.Preload("Module").Where("user_id = ?", userID).Order("module_id ASC").Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) ListScenarioProgress(userID uint) ([]model.UserScenarioProgress, error) {
	var rows []model.UserScenarioProgress
	err := r.DB.Preload("Scenario").Where("user_id = ?", userID).Order("scenario_id ASC").Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) GetUserStats(userID uint) (*UserProgressStats, error) {
	var stats UserProgressStats

	err := r.DB.Model(&model.UserModuleProgress{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(score), 0)").
		Scan(&stats.ModulePoints).Error
	if err != nil {
		return nil, err
	}

	err = r.DB.Model(&model.UserScenarioProgress{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(score), 0)").
		Scan(&stats.ScenarioPoints).Error
	if err != nil {
		return nil, err
	}

	var completedScenarios int64
	err = r.DB.Model(&model.UserScenarioProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&completedScenarios).Error
	if err != nil {
		return nil, err
	}
	stats.CompletedScenarios = int(completedScenarios)

	err = r.DB.Model(&model.UserModuleProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Order("module_id ASC").
		Pluck("score", &stats.CompletedModuleScores).Error
	if err != nil {
		return nil, err
	}
	stats.CompletedModules = len(stats.CompletedModuleScores)

	var quick int64
	err = r.DB.Model(&model.UserModuleProgress{}).
		Where("user_id = ? AND completed = ? AND time_spent IS NOT NULL AND time_spent < ?", userID, true, QuickCompletionSeconds).
		Count(&quick).Error
	if err != nil {
		return nil, err
	}
	stats.QuickCompletion = quick > 0

	return &stats, nil
}
