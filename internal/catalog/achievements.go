package catalog

import "quizforge/internal/model"

var achievements = []model.Achievement{
	{ID: "first_correct", Title: "First Spark", Description: "Answer a question correctly", ConditionType: model.ConditionTotalCorrect, TargetValue: 1},
	{ID: "sharp_mind", Title: "Sharp Mind", Description: "Answer 20 questions correctly", ConditionType: model.ConditionTotalCorrect, TargetValue: 20},
	{ID: "centurion", Title: "Centurion", Description: "Answer 100 questions correctly", ConditionType: model.ConditionTotalCorrect, TargetValue: 100},
	{ID: "marathon", Title: "Marathon", Description: "Answer 50 questions", ConditionType: model.ConditionTotalAnswered, TargetValue: 50},
	{ID: "tycoon", Title: "Tycoon", Description: "Hold 1000 coins", ConditionType: model.ConditionTotalCoins, TargetValue: 1000},
	{ID: "redemption", Title: "Redemption", Description: "Clear 5 mistakes", ConditionType: model.ConditionMistakesCleared, TargetValue: 5},
	{ID: "unstoppable", Title: "Unstoppable", Description: "Reach a streak of 10", ConditionType: model.ConditionStreakRecord, TargetValue: 10},
}

// Achievements returns the achievement catalog in catalog order.
func Achievements() []model.Achievement {
	out := make([]model.Achievement, len(achievements))
	copy(out, achievements)
	return out
}

// AchievementsFor returns the definitions watching the given condition, in catalog order.
func AchievementsFor(cond model.ConditionType) []model.Achievement {
	var out []model.Achievement
	for _, a := range achievements {
		if a.ConditionType == cond {
			out = append(out, a)
		}
	}
	return out
}
