package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizforge/internal/model"
	"quizforge/internal/storage"
)

func newTestRepos() (*UserRepository, *ProfileRepository, storage.Store, storage.Keys) {
	store := storage.NewMemoryStore()
	keys := storage.NewKeys("t_")
	return NewUserRepository(store, keys), NewProfileRepository(store, keys), store, keys
}

// ============================================================================
// UserRepository Tests
// ============================================================================

func TestUserRepository_CreateAndLookup(t *testing.T) {
	users, _, _, _ := newTestRepos()
	ctx := context.Background()

	u := model.User{ID: "id1", Username: "alice", CreatedAt: time.Unix(100, 0).UTC()}
	require.NoError(t, users.Create(ctx, u))

	got, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u, *got)

	got, err = users.GetByID(ctx, "id1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = users.GetByUsername(ctx, "Alice")
	assert.ErrorIs(t, err, ErrUserNotFound, "usernames match exactly")

	_, err = users.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	users, _, _, _ := newTestRepos()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, model.User{ID: "1", Username: "bob"}))
	err := users.Create(ctx, model.User{ID: "2", Username: "bob"})
	assert.ErrorIs(t, err, ErrUserExists)

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserRepository_CorruptRegistry(t *testing.T) {
	users, _, store, keys := newTestRepos()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, keys.Users(), []byte("{not json")))

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, users.Create(ctx, model.User{ID: "1", Username: "carol"}))
	all, err = users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

// ============================================================================
// ProfileRepository Tests
// ============================================================================

func TestProfileRepository_Defaults(t *testing.T) {
	_, profile, _, _ := newTestRepos()
	ctx := context.Background()

	coins, err := profile.Coins(ctx, "u")
	require.NoError(t, err)
	assert.Zero(t, coins)

	inv, err := profile.Inventory(ctx, "u")
	require.NoError(t, err)
	assert.Empty(t, inv)

	eq, err := profile.Equipped(ctx, "u")
	require.NoError(t, err)
	assert.Nil(t, eq)

	stats, err := profile.Stats(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, model.Stats{}, stats)

	_, _, ok, err := profile.DailyState(ctx, "u")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfileRepository_CorruptValuesFallBackToDefaults(t *testing.T) {
	_, profile, store, keys := newTestRepos()
	ctx := context.Background()

	corrupt := map[string]string{
		storage.FieldCoins:        `"lots"`,
		storage.FieldInventory:    `{"a":1}`,
		storage.FieldEquipped:     `42`,
		storage.FieldStats:        `{"totalCorrect":"x","maxStreak":3}`,
		storage.FieldAchievements: `nope`,
		storage.FieldMistakes:     `[1,2]`,
		storage.FieldTasks:        `"tasks"`,
	}
	for field, v := range corrupt {
		require.NoError(t, store.Set(ctx, keys.Field("u", field), []byte(v)))
	}

	coins, err := profile.Coins(ctx, "u")
	require.NoError(t, err)
	assert.Zero(t, coins)

	inv, err := profile.Inventory(ctx, "u")
	require.NoError(t, err)
	assert.Empty(t, inv)

	eq, err := profile.Equipped(ctx, "u")
	require.NoError(t, err)
	assert.Nil(t, eq)

	stats, err := profile.Stats(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, model.Stats{}, stats, "partially decoded values must not leak")

	ach, err := profile.Achievements(ctx, "u")
	require.NoError(t, err)
	assert.Empty(t, ach)

	m, err := profile.Mistakes(ctx, "u")
	require.NoError(t, err)
	assert.Empty(t, m)

	_, _, ok, err := profile.DailyState(ctx, "u")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfileRepository_RoundTrips(t *testing.T) {
	_, profile, _, _ := newTestRepos()
	ctx := context.Background()

	require.NoError(t, profile.SetCoins(ctx, "u", -20))
	coins, err := profile.Coins(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, int64(-20), coins)

	id := "owl"
	require.NoError(t, profile.SetEquipped(ctx, "u", &id))
	eq, err := profile.Equipped(ctx, "u")
	require.NoError(t, err)
	require.NotNil(t, eq)
	assert.Equal(t, "owl", *eq)

	require.NoError(t, profile.SetEquipped(ctx, "u", nil))
	eq, err = profile.Equipped(ctx, "u")
	require.NoError(t, err)
	assert.Nil(t, eq)

	tasks := []model.DailyTask{{ID: "quiz", Target: 1, Current: 1}}
	require.NoError(t, profile.SaveDailyState(ctx, "u", "2026-10-16", tasks))
	gotTasks, day, ok, err := profile.DailyState(ctx, "u")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2026-10-16", day)
	assert.Equal(t, tasks, gotTasks)
}

func TestProfileRepository_RawFields(t *testing.T) {
	_, profile, store, keys := newTestRepos()
	ctx := context.Background()

	require.NoError(t, profile.SetCoins(ctx, "u", 75))
	require.NoError(t, profile.SetInventory(ctx, "u", []string{"owl"}))
	require.NoError(t, store.Set(ctx, keys.Field("u", storage.FieldStats), []byte("{broken")))

	raw, err := profile.RawFields(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage("75"), raw[storage.FieldCoins])
	assert.JSONEq(t, `["owl"]`, string(raw[storage.FieldInventory]))
	assert.Equal(t, json.RawMessage(`"{broken"`), raw[storage.FieldStats])
	assert.NotContains(t, raw, storage.FieldMistakes)

	require.NoError(t, profile.WriteRawFields(ctx, "v", map[string]json.RawMessage{
		storage.FieldCoins: json.RawMessage("12"),
		"version":          json.RawMessage("1"),
	}))
	coins, err := profile.Coins(ctx, "v")
	require.NoError(t, err)
	assert.Equal(t, int64(12), coins)

	_, ok, err := store.Get(ctx, keys.Field("v", "version"))
	require.NoError(t, err)
	assert.False(t, ok, "unknown fields are not written")
}
