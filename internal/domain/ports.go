package domain

import (
	"context"
	"time"
)

// ConversationSource provides the scripted conversation library.
type ConversationSource interface {
	List(ctx context.Context) ([]Conversation, error)
	Get(ctx context.Context, id string) (*Conversation, error)
}

// SessionArchive keeps finished and saved voice sessions. Implementations
// are in-memory only; nothing survives a restart.
type SessionArchive interface {
	Save(ctx context.Context, record *Record) error
	Load(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
	AttachFeedback(ctx context.Context, id string, fb Feedback) error
}

// TimerKind identifies what a scheduled timer does when it fires.
type TimerKind int

const (
	TimerReveal TimerKind = iota // reveal the next word
	TimerCommit                  // move listening -> processing
	TimerDwell                   // move processing -> listening
	TimerToastExpiry             // hide the active trust signal
)

// String returns a human-readable timer kind.
func (k TimerKind) String() string {
	switch k {
	case TimerReveal:
		return "reveal"
	case TimerCommit:
		return "commit"
	case TimerDwell:
		return "dwell"
	case TimerToastExpiry:
		return "toast-expiry"
	default:
		return "unknown"
	}
}

// Timer is a one-shot callback request. Generation is captured when the
// timer is scheduled; a timer whose generation no longer matches its
// owner's is stale and must be ignored when it fires.
type Timer struct {
	Kind       TimerKind
	Delay      time.Duration
	Generation uint64
}

// Scheduler arranges for a Timer to be handed back to its owner after
// Delay. Implementations must deliver fired timers on the goroutine that
// owns the controller.
type Scheduler interface {
	Schedule(t Timer)
}

// Observer receives session events. Used for metrics, earcons and logs.
type Observer interface {
	StateChanged(from, to SessionState)
	SignalShown(sig TrustSignal)
	MessageCommitted(msg Message)
	FeedbackSubmitted(fb Feedback)
}

// Observers fans events out to several observers.
type Observers []Observer

// Compile-time interface check.
var _ Observer = Observers(nil)

func (o Observers) StateChanged(from, to SessionState) {
	for _, obs := range o {
		obs.StateChanged(from, to)
	}
}

func (o Observers) SignalShown(sig TrustSignal) {
	for _, obs := range o {
		obs.SignalShown(sig)
	}
}

func (o Observers) MessageCommitted(msg Message) {
	for _, obs := range o {
		obs.MessageCommitted(msg)
	}
}

func (o Observers) FeedbackSubmitted(fb Feedback) {
	for _, obs := range o {
		obs.FeedbackSubmitted(fb)
	}
}
