package repository

import (
	"context"

	"quizforge/internal/model"
	"quizforge/internal/storage"
)

// Stats returns the lifetime counters, zero by default.
func (r *ProfileRepository) Stats(ctx context.Context, userID string) (model.Stats, error) {
	s, _, err := readField[model.Stats](ctx, r, userID, storage.FieldStats)
	return s, err
}

// SetStats stores the counters.
func (r *ProfileRepository) SetStats(ctx context.Context, userID string, s model.Stats) error {
	return r.writeJSON(ctx, userID, storage.FieldStats, s)
}

// Achievements returns unlocked achievement ids in unlock order.
func (r *ProfileRepository) Achievements(ctx context.Context, userID string) ([]string, error) {
	ids, _, err := readField[[]string](ctx, r, userID, storage.FieldAchievements)
	return ids, err
}

// SetAchievements stores the unlocked set.
func (r *ProfileRepository) SetAchievements(ctx context.Context, userID string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return r.writeJSON(ctx, userID, storage.FieldAchievements, ids)
}
