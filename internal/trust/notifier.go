// Package trust shows short-lived trust-signal toasts. At most one signal
// is active; a new trigger replaces it and restarts the expiry timer.
package trust

import (
	"time"

	"github.com/hammamikhairi/voicemode/internal/domain"
	"github.com/hammamikhairi/voicemode/internal/logger"
)

// Notifier owns the active trust signal. Like the session controller it
// is driven from a single goroutine and is not safe for concurrent use.
type Notifier struct {
	signals  map[domain.Trigger]domain.TrustSignal
	duration time.Duration
	sched    domain.Scheduler
	observer domain.Observer
	log      *logger.Logger

	active *domain.TrustSignal
	gen    uint64
}

// Option configures the notifier.
type Option func(*Notifier)

// WithObserver reports every shown signal to obs.
func WithObserver(obs domain.Observer) Option {
	return func(n *Notifier) {
		n.observer = obs
	}
}

// New creates a notifier over the trigger lookup table. Signals expire
// after duration.
func New(signals map[domain.Trigger]domain.TrustSignal, duration time.Duration, sched domain.Scheduler, log *logger.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		signals:  signals,
		duration: duration,
		sched:    sched,
		log:      log,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Trigger shows the signal registered for name, preempting any active one.
func (n *Notifier) Trigger(name domain.Trigger) error {
	sig, ok := n.signals[name]
	if !ok {
		n.log.Debug("no trust signal for trigger %s", name)
		return domain.ErrUnknownTrigger
	}

	n.gen++
	n.active = &sig
	n.sched.Schedule(domain.Timer{Kind: domain.TimerToastExpiry, Delay: n.duration, Generation: n.gen})
	n.log.Debug("trust signal %s (%s) shown", sig.ID, name)

	if n.observer != nil {
		n.observer.SignalShown(sig)
	}
	return nil
}

// Expire hides the active signal if gen is still current. Stale expiry
// timers from a preempted signal are ignored.
func (n *Notifier) Expire(gen uint64) {
	if gen != n.gen {
		n.log.Debug("ignoring stale toast expiry (gen=%d, current=%d)", gen, n.gen)
		return
	}
	n.active = nil
}

// Clear hides the active signal immediately and invalidates its timer.
func (n *Notifier) Clear() {
	n.gen++
	n.active = nil
}

// Active returns the visible signal, if any.
func (n *Notifier) Active() (domain.TrustSignal, bool) {
	if n.active == nil {
		return domain.TrustSignal{}, false
	}
	return *n.active, true
}
