// Package timer schedules the session's one-shot timers. Loop drives them
// in real time for headless runs; Manual drives them from a virtual clock.
package timer

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/voicemode/internal/domain"
	"github.com/hammamikhairi/voicemode/internal/logger"
)

// Compile-time interface check.
var _ domain.Scheduler = (*Loop)(nil)

// Firer receives fired timers. The session controller implements it.
type Firer interface {
	Fire(t domain.Timer)
}

// Option configures the loop.
type Option func(*Loop)

// WithQueueSize sets how many fired timers and actions may wait for the
// loop goroutine before senders block.
func WithQueueSize(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.queueSize = n
		}
	}
}

// Loop funnels fired timers and queued actions onto the goroutine that
// calls Run, so the target is never touched concurrently.
type Loop struct {
	log       *logger.Logger
	queueSize int
	events    chan func(Firer)
	done      chan struct{}

	mu      sync.Mutex
	timers  map[*time.Timer]struct{}
	running bool
	stopped bool
}

// NewLoop creates a loop. Timers may be scheduled before Run starts; they
// are delivered once it does.
func NewLoop(log *logger.Logger, opts ...Option) *Loop {
	l := &Loop{
		log:       log,
		queueSize: 64,
		done:      make(chan struct{}),
		timers:    make(map[*time.Timer]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.events = make(chan func(Firer), l.queueSize)
	return l
}

// Schedule arms a wall-clock timer for t. No-op once the loop stopped.
func (l *Loop) Schedule(t domain.Timer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return
	}
	var tm *time.Timer
	tm = time.AfterFunc(t.Delay, func() {
		l.forget(tm)
		l.post(func(f Firer) { f.Fire(t) })
	})
	l.timers[tm] = struct{}{}
}

// Do queues fn to run on the loop goroutine. Call it from other
// goroutines; from inside the loop just call the target directly.
func (l *Loop) Do(fn func()) {
	l.post(func(Firer) { fn() })
}

// Run delivers timers and actions to target until ctx is done, then
// stops every pending timer. Blocking.
func (l *Loop) Run(ctx context.Context, target Firer) {
	l.mu.Lock()
	if l.running || l.stopped {
		l.mu.Unlock()
		l.log.Warn("timer loop already running or stopped")
		return
	}
	l.running = true
	l.mu.Unlock()
	defer l.stop()

	l.log.Info("timer loop started (queue=%d)", l.queueSize)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-l.events:
			ev(target)
		}
	}
}

// Pending returns the number of armed timers that have not fired yet.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

func (l *Loop) post(ev func(Firer)) {
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case l.events <- ev:
	case <-l.done:
	}
}

func (l *Loop) forget(tm *time.Timer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.timers, tm)
}

func (l *Loop) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopped = true
	close(l.done)
	for tm := range l.timers {
		tm.Stop()
	}
	dropped := len(l.timers)
	clear(l.timers)
	l.log.Info("timer loop stopped (%d pending timers dropped)", dropped)
}
