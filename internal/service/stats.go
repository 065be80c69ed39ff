package service

import (
	"context"
	"fmt"

	"quizforge/internal/model"
	"quizforge/internal/pkg/lock"
	"quizforge/internal/repository"
)

// StatsService maintains the lifetime counters and feeds the achievement checks.
type StatsService struct {
	profile      *repository.ProfileRepository
	achievements *AchievementService
	userLock     *lock.UserLock
}

// NewStatsService creates a new StatsService instance.
func NewStatsService(profile *repository.ProfileRepository, achievements *AchievementService, userLock *lock.UserLock) *StatsService {
	return &StatsService{
		profile:      profile,
		achievements: achievements,
		userLock:     userLock,
	}
}

// Get returns the user's stats, zeroed when unset.
func (s *StatsService) Get(ctx context.Context, userID string) (model.Stats, error) {
	return s.profile.Stats(ctx, userID)
}

// RecordAnswer counts one answered question. streak is the current run of
// correct answers and only raises MaxStreak.
func (s *StatsService) RecordAnswer(ctx context.Context, userID string, correct bool, streak int) (model.Stats, []string, error) {
	stats, err := s.update(ctx, userID, func(st *model.Stats) {
		st.TotalAnswered++
		if correct {
			st.TotalCorrect++
		}
		st.MaxStreak = max(st.MaxStreak, int64(streak))
	})
	if err != nil {
		return stats, nil, err
	}

	unlocked, err := s.check(ctx, userID, map[model.ConditionType]int64{
		model.ConditionTotalAnswered: stats.TotalAnswered,
		model.ConditionTotalCorrect:  stats.TotalCorrect,
		model.ConditionStreakRecord:  stats.MaxStreak,
	})
	return stats, unlocked, err
}

// RecordMistakeCleared counts one mastered mistake.
func (s *StatsService) RecordMistakeCleared(ctx context.Context, userID string) (model.Stats, []string, error) {
	stats, err := s.update(ctx, userID, func(st *model.Stats) {
		st.MistakesCleared++
	})
	if err != nil {
		return stats, nil, err
	}

	unlocked, err := s.check(ctx, userID, map[model.ConditionType]int64{
		model.ConditionMistakesCleared: stats.MistakesCleared,
	})
	return stats, unlocked, err
}

func (s *StatsService) update(ctx context.Context, userID string, fn func(*model.Stats)) (model.Stats, error) {
	if err := s.userLock.LockContext(ctx, userID); err != nil {
		return model.Stats{}, err
	}
	defer s.userLock.Unlock(userID)

	stats, err := s.profile.Stats(ctx, userID)
	if err != nil {
		return stats, fmt.Errorf("failed to update stats: %w", err)
	}
	fn(&stats)
	if err := s.profile.SetStats(ctx, userID, stats); err != nil {
		return stats, fmt.Errorf("failed to update stats: %w", err)
	}
	return stats, nil
}

var statConditionOrder = []model.ConditionType{
	model.ConditionTotalCorrect,
	model.ConditionTotalAnswered,
	model.ConditionMistakesCleared,
	model.ConditionStreakRecord,
}

func (s *StatsService) check(ctx context.Context, userID string, values map[model.ConditionType]int64) ([]string, error) {
	var unlocked []string
	for _, cond := range statConditionOrder {
		v, ok := values[cond]
		if !ok {
			continue
		}
		ids, err := s.achievements.CheckAndUnlock(ctx, userID, cond, v)
		if err != nil {
			return unlocked, err
		}
		unlocked = append(unlocked, ids...)
	}
	return unlocked, nil
}
