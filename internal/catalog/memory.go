package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/hammamikhairi/voicemode/internal/domain"
	"github.com/hammamikhairi/voicemode/internal/logger"
)

// Compile-time interface check.
var _ domain.ConversationSource = (*MemorySource)(nil)

// MemorySource holds the conversation library in memory. Safe for
// concurrent reads. List preserves the order of the data file so a seeded
// random pick is reproducible.
type MemorySource struct {
	mu    sync.RWMutex
	order []string
	convs map[string]*domain.Conversation
	log   *logger.Logger
}

// NewMemorySource creates a source preloaded with the given conversations.
func NewMemorySource(convs []domain.Conversation, log *logger.Logger) *MemorySource {
	src := &MemorySource{
		convs: make(map[string]*domain.Conversation, len(convs)),
		log:   log,
	}
	for i := range convs {
		c := convs[i]
		if _, dup := src.convs[c.ID]; dup {
			log.Warn("skipping duplicate conversation %s", c.ID)
			continue
		}
		src.order = append(src.order, c.ID)
		src.convs[c.ID] = &c
	}
	log.Debug("seeded %d conversations", len(src.order))
	return src
}

// List returns all conversations in library order.
func (s *MemorySource) List(ctx context.Context) ([]domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Conversation, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.convs[id])
	}
	return out, nil
}

// Get returns a conversation by ID.
func (s *MemorySource) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.convs[id]
	if !ok {
		s.log.Debug("conversation not found: %s", id)
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// Search returns conversations whose id or category contains the query.
func (s *MemorySource) Search(ctx context.Context, query string) ([]domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	s.log.Debug("searching conversations for: %s", q)

	var out []domain.Conversation
	for _, id := range s.order {
		c := s.convs[id]
		if strings.Contains(strings.ToLower(c.Category), q) || strings.Contains(strings.ToLower(c.ID), q) {
			out = append(out, *c)
		}
	}
	return out, nil
}

// Categories lists the distinct categories in library order.
func (s *MemorySource) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, id := range s.order {
		cat := s.convs[id].Category
		if cat == "" || seen[cat] {
			continue
		}
		seen[cat] = true
		out = append(out, cat)
	}
	return out
}
