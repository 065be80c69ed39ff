package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"quizforge/internal/catalog"
	"quizforge/internal/model"
	"quizforge/internal/pkg/lock"
	"quizforge/internal/repository"
)

const dayLayout = "2006-01-02"

// TaskService tracks the daily objectives. The task set is rebuilt whenever
// the stored day differs from today in the configured location.
type TaskService struct {
	profile     *repository.ProfileRepository
	progression *ProgressionService
	userLock    *lock.UserLock
	now         func() time.Time
	loc         *time.Location
}

// NewTaskService creates a new TaskService instance.
// A nil now defaults to time.Now and a nil loc to time.Local.
func NewTaskService(
	profile *repository.ProfileRepository,
	progression *ProgressionService,
	userLock *lock.UserLock,
	now func() time.Time,
	loc *time.Location,
) *TaskService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &TaskService{
		profile:     profile,
		progression: progression,
		userLock:    userLock,
		now:         now,
		loc:         loc,
	}
}

// Today returns the current calendar day key.
func (s *TaskService) Today() string {
	return s.now().In(s.loc).Format(dayLayout)
}

// mergeWithCatalog lays stored progress over the catalog definitions. Tasks
// missing from stored start fresh and unknown stored ids are dropped.
func mergeWithCatalog(stored []model.DailyTask) ([]model.DailyTask, bool) {
	byID := lo.KeyBy(stored, func(t model.DailyTask) string { return t.ID })
	merged := catalog.DefaultDailyTasks()
	changed := len(stored) != len(merged)
	for i, def := range merged {
		old, ok := byID[def.ID]
		if !ok {
			changed = true
			continue
		}
		merged[i].Current = min(max(old.Current, 0), def.Target)
		merged[i].Claimed = old.Claimed
		if merged[i] != old || i >= len(stored) || stored[i].ID != def.ID {
			changed = true
		}
	}
	return merged, changed
}

// GetTasks returns the six daily tasks in catalog order, resetting them on a new day.
func (s *TaskService) GetTasks(ctx context.Context, userID string) ([]model.DailyTask, error) {
	if err := s.userLock.LockContext(ctx, userID); err != nil {
		return nil, err
	}
	defer s.userLock.Unlock(userID)
	return s.getTasksLocked(ctx, userID)
}

func (s *TaskService) getTasksLocked(ctx context.Context, userID string) ([]model.DailyTask, error) {
	tasks, day, ok, err := s.profile.DailyState(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	today := s.Today()
	if ok && day == today {
		merged, changed := mergeWithCatalog(tasks)
		if changed {
			if err := s.profile.SaveDailyState(ctx, userID, today, merged); err != nil {
				return nil, fmt.Errorf("failed to repair tasks: %w", err)
			}
			log.Warn().Str("user_id", userID).Msg("Stored daily tasks did not match the catalog")
		}
		return merged, nil
	}

	tasks = catalog.DefaultDailyTasks()
	if err := s.profile.SaveDailyState(ctx, userID, today, tasks); err != nil {
		return nil, fmt.Errorf("failed to reset tasks: %w", err)
	}
	log.Debug().Str("user_id", userID).Str("day", today).Msg("Daily tasks reset")
	return tasks, nil
}

// UpdateProgress advances taskID and returns the full task list.
// The streak task keeps the best value reported today; absolute sets the
// value directly; otherwise amount is added. Values are clamped to [0, target].
// Unknown task ids leave the list unchanged.
func (s *TaskService) UpdateProgress(ctx context.Context, userID, taskID string, amount int, absolute bool) ([]model.DailyTask, error) {
	if err := s.userLock.LockContext(ctx, userID); err != nil {
		return nil, err
	}
	defer s.userLock.Unlock(userID)

	tasks, err := s.getTasksLocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	_, idx, found := lo.FindIndexOf(tasks, func(t model.DailyTask) bool { return t.ID == taskID })
	if !found {
		return tasks, nil
	}

	t := &tasks[idx]
	switch {
	case taskID == model.TaskStreak:
		t.Current = max(t.Current, amount)
	case absolute:
		t.Current = amount
	default:
		t.Current += amount
	}
	t.Current = min(max(t.Current, 0), t.Target)

	if err := s.profile.SaveTasks(ctx, userID, tasks); err != nil {
		return nil, fmt.Errorf("failed to save task progress: %w", err)
	}
	return tasks, nil
}

// Claim marks a completed task as claimed and returns its reward.
// It returns 0 without mutating anything when the task is unknown,
// incomplete or already claimed. Coins are not credited.
func (s *TaskService) Claim(ctx context.Context, userID, taskID string) (int64, error) {
	if err := s.userLock.LockContext(ctx, userID); err != nil {
		return 0, err
	}
	defer s.userLock.Unlock(userID)
	return s.claimLocked(ctx, userID, taskID)
}

func (s *TaskService) claimLocked(ctx context.Context, userID, taskID string) (int64, error) {
	tasks, err := s.getTasksLocked(ctx, userID)
	if err != nil {
		return 0, err
	}

	_, idx, found := lo.FindIndexOf(tasks, func(t model.DailyTask) bool { return t.ID == taskID })
	if !found || tasks[idx].Claimed || !tasks[idx].Done() {
		return 0, nil
	}

	tasks[idx].Claimed = true
	if err := s.profile.SaveTasks(ctx, userID, tasks); err != nil {
		return 0, fmt.Errorf("failed to claim task: %w", err)
	}
	log.Info().Str("user_id", userID).Str("task_id", taskID).Int64("reward", tasks[idx].Reward).Msg("Task claimed")
	return tasks[idx].Reward, nil
}

// ClaimReward claims taskID and credits the reward in the same critical section.
// It returns the reward (0 if nothing was claimed) and the resulting balance.
func (s *TaskService) ClaimReward(ctx context.Context, userID, taskID string) (int64, int64, error) {
	if err := s.userLock.LockContext(ctx, userID); err != nil {
		return 0, 0, err
	}
	reward, total, err := s.claimRewardLocked(ctx, userID, taskID)
	s.userLock.Unlock(userID)
	if err != nil {
		return 0, 0, err
	}

	if reward > 0 {
		s.progression.notify(ctx, userID, total)
	}
	return reward, total, nil
}

func (s *TaskService) claimRewardLocked(ctx context.Context, userID, taskID string) (int64, int64, error) {
	reward, err := s.claimLocked(ctx, userID, taskID)
	if err != nil {
		return 0, 0, err
	}
	if reward == 0 {
		coins, err := s.profile.Coins(ctx, userID)
		return 0, coins, err
	}
	total, err := s.progression.addCoinsLocked(ctx, userID, reward)
	if err != nil {
		return 0, 0, err
	}
	return reward, total, nil
}
