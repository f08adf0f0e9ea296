package model

import "time"

// Progress holds the best-result fields shared by module and scenario progress rows.
type Progress struct {
	Score       int        `gorm:"not null;default:0" json:"score"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	Attempts    int        `gorm:"not null;default:0" json:"attempts"`
	LastAttempt *time.Time `json:"lastAttempt"`
	TimeSpent   *int       `json:"timeSpent"`
}

// swagger:model UserModuleProgress
type UserModuleProgress struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint    `gorm:"not null;uniqueIndex:idx_user_module" json:"userId"`
	ModuleID  uint    `gorm:"not null;uniqueIndex:idx_user_module" json:"moduleId"`
	Module    *Module `gorm:"foreignKey:ModuleID" json:"module,omitempty"`
	Progress  `gorm:"embedded"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (UserModuleProgress) TableName() string {
	return "user_module_progresses"
}

// swagger:model UserScenarioProgress
type UserScenarioProgress struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_scenario" json:"userId"`
	ScenarioID uint      `gorm:"not null;uniqueIndex:idx_user_scenario" json:"scenarioId"`
	Scenario   *Scenario `gorm:"foreignKey:ScenarioID" json:"scenario,omitempty"`
	Progress   `gorm:"embedded"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (UserScenarioProgress) TableName() string {
	return "user_scenario_progresses"
}
