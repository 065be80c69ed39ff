package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quizforge/internal/storage"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEngine struct {
	*Engine
	store storage.Store
	keys  storage.Keys
	clock *testClock
}

func newTestEngine(opts Options) *testEngine {
	clock := newTestClock()
	if opts.Now == nil {
		opts.Now = clock.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	store := storage.NewMemoryStore()
	keys := storage.NewKeys("test_")
	return &testEngine{
		Engine: NewEngine(store, keys, opts),
		store:  store,
		keys:   keys,
		clock:  clock,
	}
}

// register creates a user and returns its id.
func (e *testEngine) register(t testing.TB, name string) string {
	u, err := e.Users.Register(context.Background(), name)
	require.NoError(t, err)
	return u.ID
}

// fixedPicker always returns idx.
func fixedPicker(idx int) Picker {
	return func(int) int { return idx }
}

type recordingListener struct {
	mu     sync.Mutex
	totals []int64
}

func (l *recordingListener) OnCoinsChanged(_ context.Context, _ string, total int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.totals = append(l.totals, total)
}

func (l *recordingListener) Totals() []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int64(nil), l.totals...)
}
