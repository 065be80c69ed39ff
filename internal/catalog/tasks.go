package catalog

import "quizforge/internal/model"

var dailyTasks = []model.DailyTask{
	{ID: model.TaskLogin, Title: "Check in today", Target: 1, Reward: 50, Difficulty: model.DifficultyEasy},
	{ID: model.TaskQuiz, Title: "Finish a quiz", Target: 1, Reward: 100, Difficulty: model.DifficultyEasy},
	{ID: model.TaskCorrect, Title: "Answer 15 questions correctly", Target: 15, Reward: 200, Difficulty: model.DifficultyNormal},
	{ID: model.TaskStreak, Title: "Reach a streak of 5", Target: 5, Reward: 300, Difficulty: model.DifficultyHard},
	{ID: model.TaskNecromancer, Title: "Clear 3 mistakes", Target: 3, Reward: 350, Difficulty: model.DifficultyHard},
	{ID: model.TaskScholar, Title: "Complete 3 exams", Target: 3, Reward: 500, Difficulty: model.DifficultyNightmare},
}

// DefaultDailyTasks returns a fresh task set for a new day.
// The login task is already satisfied.
func DefaultDailyTasks() []model.DailyTask {
	out := make([]model.DailyTask, len(dailyTasks))
	copy(out, dailyTasks)
	for i := range out {
		if out[i].ID == model.TaskLogin {
			out[i].Current = out[i].Target
		}
	}
	return out
}
