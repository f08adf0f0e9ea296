package service

import (
	"firstaid_backend/internal/model"
	"time"
)

// Submission is one scored attempt at a module or scenario.
type Submission struct {
	Score     int
	TimeSpent *int
}

// ApplySubmission folds a submission into p and reports whether the best score
// improved. Every call counts as an attempt. A submitted time replaces the stored
// one only when none is stored yet or it is strictly lower, independent of score.
// Completion is recomputed from the best score, never toggled on its own.
func ApplySubmission(p *model.Progress, sub Submission, passingScore int, now time.Time) bool {
	p.Attempts++
	p.LastAttempt = &now

	if sub.TimeSpent != nil && (p.TimeSpent == nil || *sub.TimeSpent < *p.TimeSpent) {
		ts := *sub.TimeSpent
		p.TimeSpent = &ts
	}

	if sub.Score > p.Score {
		p.Score = sub.Score
		p.Completed = p.Score >= passingScore
		return true
	}
	return false
}
