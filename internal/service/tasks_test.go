package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"quizforge/internal/model"
)

type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

func findTask(t fataler, tasks []model.DailyTask, id string) model.DailyTask {
	t.Helper()
	for _, task := range tasks {
		if task.ID == id {
			return task
		}
	}
	t.Fatalf("task %s not found", id)
	return model.DailyTask{}
}

func TestGetTasks_Catalog(t *testing.T) {
	e := newTestEngine(Options{})
	ctx := context.Background()

	tasks, err := e.Tasks.GetTasks(ctx, "u")
	require.NoError(t, err)
	require.Len(t, tasks, 6)

	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	assert.Equal(t, []string{"login", "quiz", "correct", "streak", "necromancer", "scholar"}, ids)

	login := findTask(t, tasks, model.TaskLogin)
	assert.True(t, login.Done())
	assert.False(t, login.Claimed)
	assert.Equal(t, int64(500), findTask(t, tasks, model.TaskScholar).Reward)
}

func TestGetTasks_SameDayUnchanged(t *testing.T) {
	e := newTestEngine(Options{})
	ctx := context.Background()

	_, err := e.Tasks.UpdateProgress(ctx, "u", model.TaskCorrect, 4, false)
	require.NoError(t, err)

	first, err := e.Tasks.GetTasks(ctx, "u")
	require.NoError(t, err)
	e.clock.Advance(3 * time.Hour)
	second, err := e.Tasks.GetTasks(ctx, "u")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 4, findTask(t, second, model.TaskCorrect).Current)
}

func TestGetTasks_RolloverResets(t *testing.T) {
	e := newTestEngine(Options{})
	ctx := context.Background()

	_, err := e.Tasks.UpdateProgress(ctx, "u", model.TaskQuiz, 1, false)
	require.NoError(t, err)
	reward, err := e.Tasks.Claim(ctx, "u", model.TaskQuiz)
	require.NoError(t, err)
	assert.Equal(t, int64(100), reward)
	_, err = e.Tasks.Claim(ctx, "u", model.TaskLogin)
	require.NoError(t, err)

	e.clock.Advance(24 * time.Hour)
	tasks, err := e.Tasks.GetTasks(ctx, "u")
	require.NoError(t, err)

	for _, task := range tasks {
		assert.False(t, task.Claimed, task.ID)
		if task.ID == model.TaskLogin {
			assert.Equal(t, task.Target, task.Current)
		} else {
			assert.Zero(t, task.Current, task.ID)
		}
	}
}

func TestGetTasks_RolloverFollowsLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	e := newTestEngine(Options{Location: tokyo})
	ctx := context.Background()

	// 09:30 UTC is 18:30 in JST; 6 hours later is 00:30 the next JST day.
	_, err := e.Tasks.UpdateProgress(ctx, "u", model.TaskCorrect, 3, false)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", e.Tasks.Today())

	e.clock.Advance(6 * time.Hour)
	assert.Equal(t, "2026-03-15", e.Tasks.Today())

	tasks, err := e.Tasks.GetTasks(ctx, "u")
	require.NoError(t, err)
	assert.Zero(t, findTask(t, tasks, model.TaskCorrect).Current)
}

func TestGetTasks_CorruptTasksRegenerate(t *testing.T) {
	e := newTestEngine(Options{})
	ctx := context.Background()

	require.NoError(t, e.store.Set(ctx, e.keys.Field("u", "tasks"), []byte("garbage")))
	require.NoError(t, e.store.Set(ctx, e.keys.Field("u", "last_login"), []byte(`"`+e.Tasks.Today()+`"`)))

	tasks, err := e.Tasks.GetTasks(ctx, "u")
	require.NoError(t, err)
	assert.Len(t, tasks, 6)
}

func TestGetTasks_PartialListMergesCatalog(t *testing.T) {
	e := newTestEngine(Options{})
	ctx := context.Background()

	bundle := `{"version":1,"userId":"u","tasks":[{"id":"quiz","current":1,"claimed":true},{"id":"bogus","current":9}],"last_login":"` + e.Tasks.Today() + `"}`
	require.NoError(t, e.Transfer.Import(ctx, "u", []byte(bundle)))

	tasks, err := e.Tasks.GetTasks(ctx, "u")
	require.NoError(t, err)
	require.Len(t, tasks, 6)
	assert.Equal(t, model.TaskLogin, tasks[0].ID)

	quiz := findTask(t, tasks, model.TaskQuiz)
	assert.Equal(t, 1, quiz.Current)
	assert.True(t, quiz.Claimed)
	assert.Equal(t, int64(100), quiz.Reward)
	assert.Equal(t, "Finish a quiz", quiz.Title)

	// The repaired list is persisted.
	stored, day, ok, err := e.Tasks.profile.DailyState(ctx, "u")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, e.Tasks.Today(), day)
	assert.Equal(t, tasks, stored)
}

func TestUpdateProgress_CorrectScenario(t *testing.T) {
	e := newTestEngine(Options{})
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := e.Tasks.UpdateProgress(ctx, "u", model.TaskCorrect, 1, false)
		require.NoError(t, err)
		if i == 7 {
			e.clock.Advance(time.Hour) // a later session, same day
		}
	}
	tasks, err := e.Tasks.GetTasks(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, 15, findTask(t, tasks, model.TaskCorrect).Current)

	reward, err := e.Tasks.Claim(ctx, "u", model.TaskCorrect)
	require.NoError(t, err)
	assert.Equal(t, int64(200), reward)

	reward, err = e.Tasks.Claim(ctx, "u", model.TaskCorrect)
	require.NoError(t, err)
	assert.Zero(t, reward)
}

func TestUpdateProgress_StreakScenario(t *testing.T) {
	e := newTestEngine(Options{})
	ctx := context.Background()

	var tasks []model.DailyTask
	var err error
	for _, v := range []int{3, 5, 2} {
		tasks, err = e.Tasks.UpdateProgress(ctx, "u", model.TaskStreak, v, false)
		require.NoError(t, err)
	}
	assert.Equal(t, 5, findTask(t, tasks, model.TaskStreak).Current)

	tasks, err = e.Tasks.UpdateProgress(ctx, "u", model.TaskStreak, 12, false)
	require.NoError(t, err)
	assert.Equal(t, 5, findTask(t, tasks, model.TaskStreak).Current, "clamped to target")
}

func TestUpdateProgress_AbsoluteAndClamp(t *testing.T) {
	e := newTestEngine(Options{})
	ctx := context.Background()

	tasks, err := e.Tasks.UpdateProgress(ctx, "u", model.TaskCorrect, 9, true)
	require.NoError(t, err)
	assert.Equal(t, 9, findTask(t, tasks, model.TaskCorrect).Current)

	tasks, err = e.Tasks.UpdateProgress(ctx, "u", model.TaskCorrect, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 2, findTask(t, tasks, model.TaskCorrect).Current)

	tasks, err = e.Tasks.UpdateProgress(ctx, "u", model.TaskCorrect, 100, false)
	require.NoError(t, err)
	assert.Equal(t, 15, findTask(t, tasks, model.TaskCorrect).Current)

	tasks, err = e.Tasks.UpdateProgress(ctx, "u", model.TaskCorrect, -50, true)
	require.NoError(t, err)
	assert.Zero(t, findTask(t, tasks, model.TaskCorrect).Current)
}

func TestUpdateProgress_UnknownTask(t *testing.T) {
	e := newTestEngine(Options{})
	ctx := context.Background()

	before, err := e.Tasks.GetTasks(ctx, "u")
	require.NoError(t, err)
	after, err := e.Tasks.UpdateProgress(ctx, "u", "nope", 1, false)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestClaim_Incomplete(t *testing.T) {
	e := newTestEngine(Options{})
	ctx := context.Background()

	reward, err := e.Tasks.Claim(ctx, "u", model.TaskScholar)
	require.NoError(t, err)
	assert.Zero(t, reward)

	reward, err = e.Tasks.Claim(ctx, "u", "nope")
	require.NoError(t, err)
	assert.Zero(t, reward)

	tasks, err := e.Tasks.GetTasks(ctx, "u")
	require.NoError(t, err)
	assert.False(t, findTask(t, tasks, model.TaskScholar).Claimed)
}

func TestClaimReward_CreditsOnce(t *testing.T) {
	e := newTestEngine(Options{})
	ctx := context.Background()

	l := &recordingListener{}
	e.Progression.Subscribe(l)

	reward, total, err := e.Tasks.ClaimReward(ctx, "u", model.TaskLogin)
	require.NoError(t, err)
	assert.Equal(t, int64(50), reward)
	assert.Equal(t, int64(50), total)

	reward, total, err = e.Tasks.ClaimReward(ctx, "u", model.TaskLogin)
	require.NoError(t, err)
	assert.Zero(t, reward)
	assert.Equal(t, int64(50), total)

	assert.Equal(t, []int64{50}, l.Totals())
}

// The streak task never decreases within a day and never exceeds its target.
func TestStreakTaskMonotonicProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := newTestEngine(Options{})
		ctx := context.Background()

		reports := rapid.SliceOfN(rapid.IntRange(0, 20), 1, 30).Draw(rt, "reports")

		prev, best := 0, 0
		for _, r := range reports {
			tasks, err := e.Tasks.UpdateProgress(ctx, "u", model.TaskStreak, r, false)
			if err != nil {
				rt.Fatalf("UpdateProgress failed: %v", err)
			}
			best = max(best, r)
			cur := findTask(rt, tasks, model.TaskStreak).Current
			if cur < prev {
				rt.Fatalf("streak decreased from %d to %d", prev, cur)
			}
			if cur != min(best, 5) {
				rt.Fatalf("streak is %d, expected %d", cur, min(best, 5))
			}
			prev = cur
		}
	})
}

// Claim pays out at most once per task per day.
func TestClaimIdempotentProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := newTestEngine(Options{})
		ctx := context.Background()

		id := rapid.SampledFrom([]string{
			model.TaskLogin, model.TaskQuiz, model.TaskCorrect,
			model.TaskStreak, model.TaskNecromancer, model.TaskScholar,
		}).Draw(rt, "task")
		amount := rapid.IntRange(0, 20).Draw(rt, "amount")
		claims := rapid.IntRange(1, 5).Draw(rt, "claims")

		tasks, err := e.Tasks.UpdateProgress(ctx, "u", id, amount, true)
		if err != nil {
			rt.Fatalf("UpdateProgress failed: %v", err)
		}
		task := findTask(rt, tasks, id)

		var paid int64
		for i := 0; i < claims; i++ {
			reward, err := e.Tasks.Claim(ctx, "u", id)
			if err != nil {
				rt.Fatalf("Claim failed: %v", err)
			}
			if i > 0 && reward != 0 {
				rt.Fatalf("claim %d paid %d", i, reward)
			}
			paid += reward
		}

		if task.Done() && paid != task.Reward {
			rt.Fatalf("completed task paid %d, expected %d", paid, task.Reward)
		}
		if !task.Done() && paid != 0 {
			rt.Fatalf("incomplete task paid %d", paid)
		}
	})
}
