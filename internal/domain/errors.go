package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrNoConversations   = errors.New("conversation library is empty")
	ErrSessionActive     = errors.New("voice session already active")
	ErrSessionNotActive  = errors.New("voice session is not active")
	ErrNoFeedbackPending = errors.New("no feedback prompt pending")
	ErrUnknownTrigger    = errors.New("unknown trust signal trigger")
	ErrInvalidTiming     = errors.New("timing must be positive")
	ErrInvalidConfidence = errors.New("confidence must be within [0, 1]")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrInvalidData       = errors.New("invalid data model")
)
