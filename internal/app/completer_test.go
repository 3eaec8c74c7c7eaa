package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeCompleter struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
	ch    chan struct{}
}

func newFakeCompleter() *fakeCompleter {
	return &fakeCompleter{ch: make(chan struct{}, 16)}
}

func (f *fakeCompleter) CompleteEnded(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	f.calls = append(f.calls, now)
	f.mu.Unlock()
	select {
	case f.ch <- struct{}{}:
	default:
	}
	return 2, f.err
}

func (f *fakeCompleter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func waitCall(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("completer was not called")
	}
}

func TestCompleter_RunsImmediatelyAndOnTick(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	repo := newFakeCompleter()
	c := NewCompleter(repo, fixedTime{now: now}, 10*time.Millisecond, logger.NewNop())

	c.Start(context.Background())
	waitCall(t, repo.ch)
	waitCall(t, repo.ch)
	c.Stop()

	require.GreaterOrEqual(t, repo.count(), 2)
	assert.Equal(t, now, repo.calls[0])
}

func TestCompleter_StopIsIdempotent(t *testing.T) {
	repo := newFakeCompleter()
	c := NewCompleter(repo, RealTimeProvider{}, time.Hour, logger.NewNop())

	c.Start(context.Background())
	waitCall(t, repo.ch)

	c.Stop()
	c.Stop()
	assert.Equal(t, 1, repo.count())
}

func TestCompleter_ContextCancel(t *testing.T) {
	repo := newFakeCompleter()
	repo.err = errors.New("db down")
	c := NewCompleter(repo, RealTimeProvider{}, time.Hour, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx)
	waitCall(t, repo.ch)
	cancel()

	select {
	case <-c.done:
	case <-time.After(2 * time.Second):
		t.Fatal("completer did not stop on context cancel")
	}
}
