package service

import "firstaid_backend/internal/repository"

const (
	AchievementFirstSteps    = "First Steps"
	AchievementLifeSaver     = "Life Saver"
	AchievementQuickThinker  = "Quick Thinker"
	AchievementExpertMedic   = "Expert Medic"
	AchievementAllStar       = "All Star"
	AchievementAcademicAce   = "Academic Ace"
	AchievementSimulationPro = "Simulation Pro"
	AchievementTrailblazer   = "Trailblazer"
	AchievementPerfectScore  = "Perfect Score"
)

type achievementRule struct {
	Title     string
	Condition func(s *repository.UserProgressStats) bool
}

var achievementRules = []achievementRule{
	{AchievementFirstSteps, func(s *repository.UserProgressStats) bool { return s.CompletedModules >= 1 }},
	{AchievementLifeSaver, func(s *repository.UserProgressStats) bool { return s.CompletedModules == 10 }},
	{AchievementQuickThinker, func(s *repository.UserProgressStats) bool { return s.QuickCompletion }},
	{AchievementExpertMedic, func(s *repository.UserProgressStats) bool { return s.TotalPoints() >= 1000 }},
	{AchievementAllStar, func(s *repository.UserProgressStats) bool {
		return s.CompletedModules == 10 && s.CompletedScenarios == 3
	}},
	{AchievementAcademicAce, func(s *repository.UserProgressStats) bool { return s.CompletedModules >= 5 }},
	{AchievementSimulationPro, func(s *repository.UserProgressStats) bool { return s.CompletedScenarios >= 3 }},
	{AchievementTrailblazer, func(s *repository.UserProgressStats) bool { return s.CompletedScenarios >= 1 }},
	{AchievementPerfectScore, func(s *repository.UserProgressStats) bool {
		for _, score := range s.CompletedModuleScores {
			if score == 100 {
				return true
			}
		}
		return false
	}},
}

// EvaluateAchievementRules returns the titles whose condition holds for stats,
// in rule table order. It has no side effects.
func EvaluateAchievementRules(stats *repository.UserProgressStats) []string {
	var titles []string
	for _, rule := range achievementRules {
		if rule.Condition(stats) {
			titles = append(titles, rule.Title)
		}
	}
	return titles
}
