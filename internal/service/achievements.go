package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"quizforge/internal/catalog"
	"quizforge/internal/model"
	"quizforge/internal/pkg/lock"
	"quizforge/internal/repository"
)

// AchievementStatus pairs a definition with the user's unlock state.
type AchievementStatus struct {
	model.Achievement
	Unlocked bool `json:"unlocked"`
}

// AchievementService unlocks achievements exactly once per user.
type AchievementService struct {
	profile  *repository.ProfileRepository
	userLock *lock.UserLock
}

// NewAchievementService creates a new AchievementService instance.
func NewAchievementService(profile *repository.ProfileRepository, userLock *lock.UserLock) *AchievementService {
	return &AchievementService{
		profile:  profile,
		userLock: userLock,
	}
}

// CheckAndUnlock unlocks every definition of cond whose target is reached by value
// and returns the newly unlocked ids in catalog order.
func (s *AchievementService) CheckAndUnlock(ctx context.Context, userID string, cond model.ConditionType, value int64) ([]string, error) {
	if err := s.userLock.LockContext(ctx, userID); err != nil {
		return nil, err
	}
	defer s.userLock.Unlock(userID)

	unlocked, err := s.profile.Achievements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check achievements: %w", err)
	}

	var fresh []string
	for _, a := range catalog.AchievementsFor(cond) {
		if a.TargetValue <= value && !lo.Contains(unlocked, a.ID) {
			fresh = append(fresh, a.ID)
		}
	}
	if len(fresh) == 0 {
		return nil, nil
	}

	if err := s.profile.SetAchievements(ctx, userID, append(unlocked, fresh...)); err != nil {
		return nil, fmt.Errorf("failed to unlock achievements: %w", err)
	}
	log.Info().Str("user_id", userID).Strs("achievements", fresh).Msg("Achievements unlocked")
	return fresh, nil
}

// OnCoinsChanged evaluates the total_coins condition.
func (s *AchievementService) OnCoinsChanged(ctx context.Context, userID string, total int64) {
	if _, err := s.CheckAndUnlock(ctx, userID, model.ConditionTotalCoins, total); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to evaluate coin achievements")
	}
}

// Unlocked returns the unlocked achievement ids.
func (s *AchievementService) Unlocked(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.profile.Achievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// List returns every definition with its unlock state, in catalog order.
func (s *AchievementService) List(ctx context.Context, userID string) ([]AchievementStatus, error) {
	ids, err := s.Unlocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	return lo.Map(catalog.Achievements(), func(a model.Achievement, _ int) AchievementStatus {
		return AchievementStatus{Achievement: a, Unlocked: lo.Contains(ids, a.ID)}
	}), nil
}
