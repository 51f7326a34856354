// Package storage keeps archived voice sessions for the history drawer.
// Nothing is written to disk; the archive lives as long as the process.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/hammamikhairi/voicemode/internal/domain"
	"github.com/hammamikhairi/voicemode/internal/logger"
)

// Compile-time interface check.
var _ domain.SessionArchive = (*MemoryArchive)(nil)

// MemoryArchive is an in-memory session archive. Safe for concurrent access.
type MemoryArchive struct {
	mu      sync.RWMutex
	records map[string]*domain.Record
	log     *logger.Logger
}

// NewMemoryArchive creates an empty archive.
func NewMemoryArchive(log *logger.Logger) *MemoryArchive {
	return &MemoryArchive{
		records: make(map[string]*domain.Record),
		log:     log,
	}
}

// Save stores a copy of record, replacing an earlier save of the same
// session. Feedback already attached to the earlier save is kept.
func (s *MemoryArchive) Save(ctx context.Context, record *domain.Record) error {
	if record == nil || record.ID == "" {
		return domain.ErrInvalidData
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := cloneRecord(record)
	if prev, ok := s.records[record.ID]; ok && cp.Feedback == nil {
		cp.Feedback = prev.Feedback
	}
	s.log.Debug("archiving session %s (conversation=%s, messages=%d)", cp.ID, cp.ConversationID, len(cp.Messages))
	s.records[cp.ID] = cp
	return nil
}

// Load returns a copy of the record with the given ID.
func (s *MemoryArchive) Load(ctx context.Context, id string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		s.log.Debug("session not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return cloneRecord(rec), nil
}

// List returns all records, most recently started first.
func (s *MemoryArchive) List(ctx context.Context) ([]*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, cloneRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].ID < out[j].ID
	})
	s.log.Debug("listing archived sessions, count=%d", len(out))
	return out, nil
}

// AttachFeedback sets the feedback of an archived session.
func (s *MemoryArchive) AttachFeedback(ctx context.Context, id string, fb domain.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return domain.ErrNotFound
	}
	fb.Reasons = append([]string(nil), fb.Reasons...)
	rec.Feedback = &fb
	s.log.Debug("feedback %s attached to session %s", fb.Rating, id)
	return nil
}

// Delete removes a record by ID.
func (s *MemoryArchive) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, id)
	s.log.Debug("deleted session %s", id)
	return nil
}

func cloneRecord(r *domain.Record) *domain.Record {
	cp := *r
	cp.Messages = append([]domain.Message(nil), r.Messages...)
	if r.Feedback != nil {
		fb := *r.Feedback
		fb.Reasons = append([]string(nil), r.Feedback.Reasons...)
		cp.Feedback = &fb
	}
	return &cp
}
