package timer

import (
	"sort"
	"time"

	"github.com/hammamikhairi/voicemode/internal/domain"
)

// Compile-time interface check.
var _ domain.Scheduler = (*Manual)(nil)

// Manual is a Scheduler with a virtual clock that only moves when Advance
// is called. It makes timer-driven code deterministic in tests and in
// replay tooling.
type Manual struct {
	now     time.Duration
	seq     int
	pending []scheduled
}

type scheduled struct {
	at    time.Duration
	seq   int
	timer domain.Timer
}

// NewManual creates a manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Schedule queues t to fire Delay after the current virtual time.
func (m *Manual) Schedule(t domain.Timer) {
	m.seq++
	m.pending = append(m.pending, scheduled{at: m.now + t.Delay, seq: m.seq, timer: t})
}

// Advance moves the clock forward by d, handing every timer that falls
// due to fire in deadline order. Timers scheduled by fire are honoured
// within the same call if they fall due before the new time.
func (m *Manual) Advance(d time.Duration, fire func(domain.Timer)) {
	target := m.now + d
	for {
		next, ok := m.popDue(target)
		if !ok {
			break
		}
		m.now = next.at
		fire(next.timer)
	}
	m.now = target
}

// Pending returns the number of timers not yet fired, stale ones included.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Now returns the virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

func (m *Manual) popDue(target time.Duration) (scheduled, bool) {
	if len(m.pending) == 0 {
		return scheduled{}, false
	}
	sort.Slice(m.pending, func(i, j int) bool {
		if m.pending[i].at != m.pending[j].at {
			return m.pending[i].at < m.pending[j].at
		}
		return m.pending[i].seq < m.pending[j].seq
	})
	if m.pending[0].at > target {
		return scheduled{}, false
	}
	next := m.pending[0]
	m.pending = m.pending[1:]
	return next, true
}
