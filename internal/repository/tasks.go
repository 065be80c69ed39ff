package repository

import (
	"context"

	"quizforge/internal/model"
	"quizforge/internal/storage"
)

// DailyState returns the stored task set and last active day.
// ok is false when no usable task set is stored.
func (r *ProfileRepository) DailyState(ctx context.Context, userID string) (tasks []model.DailyTask, day string, ok bool, err error) {
	tasks, found, err := readField[[]model.DailyTask](ctx, r, userID, storage.FieldTasks)
	if err != nil {
		return nil, "", false, err
	}
	day, _, err = readField[string](ctx, r, userID, storage.FieldLastLogin)
	if err != nil {
		return nil, "", false, err
	}
	return tasks, day, found && len(tasks) > 0, nil
}

// SaveTasks stores the task set.
func (r *ProfileRepository) SaveTasks(ctx context.Context, userID string, tasks []model.DailyTask) error {
	return r.writeJSON(ctx, userID, storage.FieldTasks, tasks)
}

// SaveDailyState stores a regenerated task set together with its day.
func (r *ProfileRepository) SaveDailyState(ctx context.Context, userID, day string, tasks []model.DailyTask) error {
	return r.writeMany(ctx, userID, map[string]any{
		storage.FieldTasks:     tasks,
		storage.FieldLastLogin: day,
	})
}
