package service

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"quizforge/internal/model"
)

func TestCheckAndUnlock_CatalogOrder(t *testing.T) {
	e := newTestEngine(Options{})
	ctx := context.Background()

	ids, err := e.Achievements.CheckAndUnlock(ctx, "u", model.ConditionTotalCorrect, 25)
	require.NoError(t, err)
	assert.Equal(t, []string{"first_correct", "sharp_mind"}, ids)

	ids, err = e.Achievements.CheckAndUnlock(ctx, "u", model.ConditionTotalCorrect, 25)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = e.Achievements.CheckAndUnlock(ctx, "u", model.ConditionTotalCorrect, 3)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = e.Achievements.CheckAndUnlock(ctx, "u", model.ConditionTotalCorrect, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"centurion"}, ids)
}

func TestCheckAndUnlock_OtherConditionsUntouched(t *testing.T) {
	e := newTestEngine(Options{})
	ctx := context.Background()

	ids, err := e.Achievements.CheckAndUnlock(ctx, "u", model.ConditionStreakRecord, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"unstoppable"}, ids)

	unlocked, err := e.Achievements.Unlocked(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, []string{"unstoppable"}, unlocked)

	list, err := e.Achievements.List(ctx, "u")
	require.NoError(t, err)
	require.Len(t, list, 7)
	for _, st := range list {
		assert.Equal(t, st.ID == "unstoppable", st.Unlocked, st.ID)
	}
}

func TestTotalCoinsEvaluatedOnEveryCoinChange(t *testing.T) {
	e := newTestEngine(Options{GachaCost: 500, Picker: fixedPicker(0)})
	ctx := context.Background()

	_, err := e.Progression.AddCoins(ctx, "u", 999)
	require.NoError(t, err)
	unlocked, err := e.Achievements.Unlocked(ctx, "u")
	require.NoError(t, err)
	assert.NotContains(t, unlocked, "tycoon")

	// A task reward crossing the threshold unlocks it.
	_, _, err = e.Tasks.ClaimReward(ctx, "u", model.TaskLogin)
	require.NoError(t, err)
	unlocked, err = e.Achievements.Unlocked(ctx, "u")
	require.NoError(t, err)
	assert.Contains(t, unlocked, "tycoon")

	// Spending below the threshold never revokes it.
	_, err = e.Gacha.Draw(ctx, "u")
	require.NoError(t, err)
	unlocked, err = e.Achievements.Unlocked(ctx, "u")
	require.NoError(t, err)
	assert.Contains(t, unlocked, "tycoon")
}

// Given non-decreasing values, each id is reported as newly unlocked at most
// once, and the unlocked set only grows.
func TestAchievementExactlyOnceProperty(t *testing.T) {
	conds := []model.ConditionType{
		model.ConditionTotalCorrect,
		model.ConditionTotalAnswered,
		model.ConditionTotalCoins,
		model.ConditionMistakesCleared,
		model.ConditionStreakRecord,
	}

	rapid.Check(t, func(rt *rapid.T) {
		e := newTestEngine(Options{})
		ctx := context.Background()

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		values := make(map[model.ConditionType]int64)
		seen := make(map[string]bool)
		var prev []string

		for i := 0; i < steps; i++ {
			cond := rapid.SampledFrom(conds).Draw(rt, "cond")
			values[cond] += rapid.Int64Range(0, 300).Draw(rt, "inc")

			ids, err := e.Achievements.CheckAndUnlock(ctx, "u", cond, values[cond])
			if err != nil {
				rt.Fatalf("CheckAndUnlock failed: %v", err)
			}
			for _, id := range ids {
				if seen[id] {
					rt.Fatalf("achievement %s unlocked twice", id)
				}
				seen[id] = true
			}

			unlocked, err := e.Achievements.Unlocked(ctx, "u")
			if err != nil {
				rt.Fatalf("Unlocked failed: %v", err)
			}
			for _, id := range prev {
				if !slices.Contains(unlocked, id) {
					rt.Fatalf("achievement %s was removed", id)
				}
			}
			if len(unlocked) != len(seen) {
				rt.Fatalf("unlocked set has %d ids, reported %d", len(unlocked), len(seen))
			}
			prev = unlocked
		}
	})
}

func TestStats_RecordAnswer(t *testing.T) {
	e := newTestEngine(Options{})
	ctx := context.Background()

	st, unlocked, err := e.Stats.RecordAnswer(ctx, "u", true, 1)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{TotalCorrect: 1, TotalAnswered: 1, MaxStreak: 1}, st)
	assert.Equal(t, []string{"first_correct"}, unlocked)

	st, unlocked, err = e.Stats.RecordAnswer(ctx, "u", false, 0)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{TotalCorrect: 1, TotalAnswered: 2, MaxStreak: 1}, st)
	assert.Empty(t, unlocked)

	st, _, err = e.Stats.RecordMistakeCleared(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.MistakesCleared)
}

// Stats never decrease whatever sequence of events is recorded.
func TestStatsMonotonicProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		e := newTestEngine(Options{})
		ctx := context.Background()

		var prev model.Stats
		n := rapid.IntRange(1, 30).Draw(rt, "n")
		for i := 0; i < n; i++ {
			var st model.Stats
			var err error
			if rapid.Bool().Draw(rt, "clear") {
				st, _, err = e.Stats.RecordMistakeCleared(ctx, "u")
			} else {
				st, _, err = e.Stats.RecordAnswer(ctx, "u",
					rapid.Bool().Draw(rt, "correct"),
					rapid.IntRange(0, 30).Draw(rt, "streak"))
			}
			if err != nil {
				rt.Fatalf("record failed: %v", err)
			}
			if st.TotalCorrect < prev.TotalCorrect || st.TotalAnswered < prev.TotalAnswered ||
				st.MistakesCleared < prev.MistakesCleared || st.MaxStreak < prev.MaxStreak {
				rt.Fatalf("stats decreased: %+v -> %+v", prev, st)
			}
			prev = st
		}
	})
}
