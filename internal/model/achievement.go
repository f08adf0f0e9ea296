package model

import "time"

// swagger:model Achievement
type Achievement struct {
	BaseModel
	Title       string `gorm:"size:100;uniqueIndex;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:255" json:"icon"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement records a grant; rows are never updated or deleted.
type UserAchievement struct {
	ID            uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint         `gorm:"not null;uniqueIndex:idx_user_achievement" json:"userId"`
	AchievementID uint         `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievementId"`
	Achievement   *Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
