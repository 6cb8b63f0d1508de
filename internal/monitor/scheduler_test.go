package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webwatch/internal/config"
)

func newTestScheduler(store *fakeStore, maxCycles int) *Scheduler {
	cfg := config.NewDefaultMonitorConfig()
	cfg.CheckIntervalSeconds = 1
	cfg.MaxCycles = maxCycles
	fetcher := &fakeFetcher{content: map[string]string{"https://a.example": "Hello"}}
	svc := NewService(&cfg, store, fetcher, &fakeNotifier{}, zerolog.Nop())
	return NewScheduler(&cfg, svc, zerolog.Nop())
}

func TestSchedulerRun_StopsAfterCycleBudget(t *testing.T) {
	store := &fakeStore{snapshots: map[string]string{"https://a.example": ""}}
	sched := newTestScheduler(store, 2)

	start := time.Now()
	err := sched.Run(context.Background())

	require.NoError(t, err)
	assert.Len(t, store.saved, 2)
	// Two cycles means exactly one inter-cycle sleep.
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
}

func TestSchedulerRun_ReturnsOnCancelledContext(t *testing.T) {
	store := &fakeStore{snapshots: map[string]string{"https://a.example": ""}}
	sched := newTestScheduler(store, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sched.Run(ctx)

	assert.NoError(t, err)
	// The cycle ran but abandoned its results.
	assert.Empty(t, store.saved)
}

func TestSchedulerRun_CancelDuringSleep(t *testing.T) {
	store := &fakeStore{snapshots: map[string]string{"https://a.example": ""}}
	sched := newTestScheduler(store, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx) }()

	// Let the first cycle finish, then interrupt the sleep.
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
	assert.Len(t, store.saved, 1)
}

func TestSchedulerRun_FatalCycleErrorPropagates(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("database is locked")}
	sched := newTestScheduler(store, 0)

	err := sched.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading snapshot set")
}
