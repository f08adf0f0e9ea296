package repository

import (
	"firstaid_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) FindAll() ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Order("id ASC").Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) FindByID(id uint) (*model.Achievement, error) {
	var a model.Achievement
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AchievementRepository) FindByUserID(userID uint) ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Joins("JOIN user_achievements ON user_achievements.achievement_id = achievements.id").
		Where("user_achievements.user_id = ?", userID).
		Order("achievements.id ASC").
		Find(&achievements).Error
	if err != nil {
		return nil, err
	}
	return achievements, nil
}

func (r *AchievementRepository) EarnedIDs(userID uint) (map[uint]bool, error) {
	var ids []uint
	err := r.DB.Model(&model.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &ids).Error
	if err != nil {
		return nil, err
	}
	earned := make(map[uint]bool, len(ids))
	for _, id := range ids {
		earned[id] = true
	}
	return earned, nil
}

func (r *AchievementRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserAchievement{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Grant inserts the (user, achievement) pair and reports whether a row was
// written. A pair that already exists is left alone and reported as false.
func (r *AchievementRepository) Grant(userID, achievementID uint) (bool, error) {
	ua := model.UserAchievement{UserID: userID, AchievementID: achievementID}
	res := r.DB.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ua)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AchievementRepository) UpdateIcon(id uint, icon string) error {
	return r.DB.Model(&model.Achievement{}).Where("id = ?", id).Update("icon", icon).Error
}
