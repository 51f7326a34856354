package timer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/voicemode/internal/domain"
	"github.com/hammamikhairi/voicemode/internal/logger"
)

// mockFirer collects fired timers for testing.
type mockFirer struct {
	mu    sync.Mutex
	fired []domain.TimerKind
}

func (m *mockFirer) Fire(t domain.Timer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fired = append(m.fired, t.Kind)
}

func (m *mockFirer) kinds() []domain.TimerKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.TimerKind(nil), m.fired...)
}

func runLoop(t *testing.T, l *Loop, f Firer) (cancel func()) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx, f)
		close(done)
	}()
	return func() {
		stop()
		<-done
	}
}

func TestLoopFiresInDeadlineOrder(t *testing.T) {
	l := NewLoop(logger.Nop())
	f := &mockFirer{}

	l.Schedule(domain.Timer{Kind: domain.TimerDwell, Delay: 40 * time.Millisecond})
	l.Schedule(domain.Timer{Kind: domain.TimerReveal, Delay: 5 * time.Millisecond})
	cancel := runLoop(t, l, f)
	defer cancel()

	require.Eventually(t, func() bool { return len(f.kinds()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []domain.TimerKind{domain.TimerReveal, domain.TimerDwell}, f.kinds())
	assert.Equal(t, 0, l.Pending())
}

func TestLoopDoRunsOnLoopGoroutine(t *testing.T) {
	l := NewLoop(logger.Nop())
	f := &mockFirer{}
	cancel := runLoop(t, l, f)
	defer cancel()

	// The counter is only touched by queued actions, so the race detector
	// would flag any action running off the loop goroutine.
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Do(func() { counter++ })
		}()
	}
	wg.Wait()

	got := make(chan int)
	l.Do(func() { got <- counter })
	select {
	case n := <-got:
		assert.Equal(t, 50, n)
	case <-time.After(time.Second):
		t.Fatal("queued action never ran")
	}
}

func TestLoopStopDropsPendingTimers(t *testing.T) {
	l := NewLoop(logger.Nop())
	f := &mockFirer{}
	cancel := runLoop(t, l, f)

	l.Schedule(domain.Timer{Kind: domain.TimerCommit, Delay: time.Hour})
	require.Equal(t, 1, l.Pending())

	cancel()
	assert.Equal(t, 0, l.Pending())

	// Scheduling and queueing after the stop must not block or fire.
	l.Schedule(domain.Timer{Kind: domain.TimerReveal, Delay: time.Millisecond})
	l.Do(func() { t.Error("action ran after stop") })
	time.Sleep(10 * time.Millisecond)
	assert.Empty(t, f.kinds())
	assert.Equal(t, 0, l.Pending())
}

func TestLoopRunTwice(t *testing.T) {
	l := NewLoop(logger.Nop())
	cancel := runLoop(t, l, &mockFirer{})
	cancel()

	done := make(chan struct{})
	go func() {
		l.Run(context.Background(), &mockFirer{})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second Run should return immediately")
	}
}
