package domain

import "time"

// SessionState is the single value that decides which screen renders.
type SessionState int

const (
	StateIdle SessionState = iota
	StateListening
	StatePaused
	StateProcessing
	// StateEnded is reserved. No transition currently produces it.
	StateEnded
)

// String returns a human-readable session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StatePaused:
		return "paused"
	case StateProcessing:
		return "processing"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Active reports whether the voice screen is showing.
func (s SessionState) Active() bool {
	return s == StateListening || s == StatePaused || s == StateProcessing
}

// Cursor tracks playback progress inside the active conversation.
type Cursor struct {
	TurnIndex int // always valid into the active turns, wraps
	WordIndex int // 0..len(Words(turn.Spoken))
	// Committed is set once the current turn's user message is in the log.
	Committed bool
}

// Snapshot is a read-only copy of the controller state for renderers.
type Snapshot struct {
	SessionID       string
	State           SessionState
	ConversationID  string
	Category        string
	TurnCount       int
	Cursor          Cursor
	Partial         string
	Confidence      float64
	Messages        []Message
	Signal          *TrustSignal
	CaptionsEnabled bool
	FeedbackPending bool
	DrawerOpen      bool
	Generation      uint64
}

// Record is an archived voice session.
type Record struct {
	ID             string
	ConversationID string
	Category       string
	Messages       []Message
	StartedAt      time.Time
	EndedAt        time.Time // zero while the session is still running
	Feedback       *Feedback
}

// Title returns a short label for history lists.
func (r *Record) Title() string {
	for _, m := range r.Messages {
		if m.Role == RoleUser && m.Text != "" {
			return truncate(m.Text, 32)
		}
	}
	if r.Category != "" {
		return r.Category
	}
	return "Voice chat"
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
