package repository

import (
	"firstaid_backend/internal/model"

	"gorm.io/gorm"
)

type LeaderboardRepository struct {
	DB *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{DB: db}
}

// UserTotals is one user's aggregate across both progress tables.
type UserTotals struct {
	UserID           uint   `json:"userId"`
	Username         string `json:"username"`
	ModulePoints     int    `json:"modulePoints"`
	ScenarioPoints   int    `json:"scenarioPoints"`
	CompletedModules int    `json:"completedModules"`
}

func (t UserTotals) TotalPoints() int {
	return t.ModulePoints + t.ScenarioPoints
}

// Totals aggregates every user in id order. Correlated subqueries keep the two
// progress tables from multiplying each other's rows.
func (r *LeaderboardRepository) Totals() ([]UserTotals, error) {
	var rows []UserTotals
	err := r.DB.Model(&model.User{}).
		Select(`users.id AS user_id, users.username AS username,
			COALESCE((SELECT SUM(mp.score) FROM user_module_progresses mp WHERE mp.user_id = users.id), 0) AS module_points,
			COALESCE((SELECT SUM(sp.score) FROM user_scenario_progresses sp WHERE sp.user_id = users.id), 0) AS scenario_points,
			(SELECT COUNT(*) FROM user_module_progresses cp WHERE cp.user_id = users.id AND cp.completed = ?) AS completed_modules`, true).
		Order("users.id ASC").
		Scan(&rows).Error
	return rows, err
}
