package service

import (
	"context"
	"time"

	"quizforge/internal/model"
	"quizforge/internal/pkg/lock"
	"quizforge/internal/repository"
	"quizforge/internal/storage"
)

// Options tune an Engine. Zero values select the defaults.
type Options struct {
	GachaCost int64
	Location  *time.Location
	Now       func() time.Time
	Picker    Picker
}

// Engine wires every service over one store and one per-user lock.
type Engine struct {
	Users        *UserService
	Progression  *ProgressionService
	Tasks        *TaskService
	Achievements *AchievementService
	Stats        *StatsService
	Gacha        *GachaService
	Mistakes     *MistakeService
	Transfer     *TransferService
	Ranking      *RankingService
}

// NewEngine builds an Engine. Achievements are subscribed to coin changes.
func NewEngine(store storage.Store, keys storage.Keys, opts Options) *Engine {
	userLock := lock.NewUserLock()
	users := repository.NewUserRepository(store, keys)
	profile := repository.NewProfileRepository(store, keys)

	progression := NewProgressionService(profile, userLock)
	achievements := NewAchievementService(profile, userLock)
	progression.Subscribe(achievements)

	return &Engine{
		Users:        NewUserService(users, opts.Now),
		Progression:  progression,
		Tasks:        NewTaskService(profile, progression, userLock, opts.Now, opts.Location),
		Achievements: achievements,
		Stats:        NewStatsService(profile, achievements, userLock),
		Gacha:        NewGachaService(progression, userLock, opts.GachaCost, opts.Picker),
		Mistakes:     NewMistakeService(profile, userLock, opts.Now),
		Transfer:     NewTransferService(profile, progression, userLock, opts.Now),
		Ranking:      NewRankingService(users, profile),
	}
}

// ClearMistake removes a mastered question from the ledger. When something
// was removed it counts exactly one clear and advances the necromancer task.
func (e *Engine) ClearMistake(ctx context.Context, userID, questionText string) (bool, error) {
	removed, err := e.Mistakes.Remove(ctx, userID, questionText)
	if err != nil || removed == 0 {
		return false, err
	}
	if _, _, err := e.Stats.RecordMistakeCleared(ctx, userID); err != nil {
		return true, err
	}
	if _, err := e.Tasks.UpdateProgress(ctx, userID, model.TaskNecromancer, 1, false); err != nil {
		return true, err
	}
	return true, nil
}

// ToggleMistake flags q when it is not in the ledger and clears it otherwise.
// It reports whether q is flagged afterwards.
func (e *Engine) ToggleMistake(ctx context.Context, userID, subjectID string, q model.Question) (bool, error) {
	present, err := e.Mistakes.Contains(ctx, userID, q.Question)
	if err != nil {
		return false, err
	}
	if present {
		_, err := e.ClearMistake(ctx, userID, q.Question)
		return false, err
	}
	if _, err := e.Mistakes.Record(ctx, userID, subjectID, q); err != nil {
		return false, err
	}
	return true, nil
}
