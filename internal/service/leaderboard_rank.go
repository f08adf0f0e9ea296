package service

import (
	"firstaid_backend/internal/repository"
	"sort"
)

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelExpert       = "Expert"
)

type LeaderboardEntry struct {
	Rank             int    `json:"rank"`
	UserID           uint   `json:"userId"`
	Username         string `json:"username"`
	TotalPoints      int    `json:"totalPoints"`
	CompletedModules int    `json:"completedModules"`
	Level            string `json:"level"`
}

// LevelFor maps a completed module count to its coarse level label.
func LevelFor(completedModules int) string {
	switch {
	case completedModules >= 8:
		return LevelExpert
	case completedModules >= 5:
		return LevelAdvanced
	case completedModules >= 2:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}

// RankEntries orders totals by descending points. Ties keep their input order.
func RankEntries(totals []repository.UserTotals) []LeaderboardEntry {
	sorted := make([]repository.UserTotals, len(totals))
	copy(sorted, totals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalPoints() > sorted[j].TotalPoints()
	})

	entries := make([]LeaderboardEntry, len(sorted))
	for i, t := range sorted {
		entries[i] = LeaderboardEntry{
			Rank:             i + 1,
			UserID:           t.UserID,
			Username:         t.Username,
			TotalPoints:      t.TotalPoints(),
			CompletedModules: t.CompletedModules,
			Level:            LevelFor(t.CompletedModules),
		}
	}
	return entries
}

// Standing locates userID in ranked entries. rank is 0 when the user is absent.
// toNext is the gap to the entry directly above, 0 at the top or when absent.
func Standing(entries []LeaderboardEntry, userID uint) (rank, points, toNext int) {
	for i, e := range entries {
		if e.UserID != userID {
			continue
		}
		if i > 0 {
			toNext = entries[i-1].TotalPoints - e.TotalPoints
		}
		return e.Rank, e.TotalPoints, toNext
	}
	return 0, 0, 0
}

// ProgressPercent is the share of the fixed catalog the user has completed,
// truncated to an integer.
func ProgressPercent(completedModules, completedScenarios, totalItems int) int {
	if totalItems <= 0 {
		return 0
	}
	return (completedModules + completedScenarios) * 100 / totalItems
}
