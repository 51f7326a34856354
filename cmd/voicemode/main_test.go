package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hammamikhairi/voicemode/internal/catalog"
	"github.com/hammamikhairi/voicemode/internal/domain"
	"github.com/hammamikhairi/voicemode/internal/engine"
	"github.com/hammamikhairi/voicemode/internal/logger"
	"github.com/hammamikhairi/voicemode/internal/storage"
)

func newHeadless(t *testing.T, topic string) *headlessRun {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	log := logger.Nop()
	return &headlessRun{
		cat:     cat,
		source:  catalog.NewMemorySource(cat.Conversations, log),
		archive: storage.NewMemoryArchive(log),
		opts: []engine.Option{engine.WithTimings(engine.Timings{
			RevealTick:  time.Millisecond,
			CommitDelay: time.Millisecond,
			Dwell:       time.Millisecond,
		})},
		toast: time.Second,
		turns: 1,
		topic: topic,
		log:   log,
	}
}

func TestHeadlessRunArchivesOneTurn(t *testing.T) {
	h := newHeadless(t, "cooking")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	recs, err := h.archive.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 archived session, got %d", len(recs))
	}
	rec := recs[0]
	if rec.ConversationID != "conv-cooking" {
		t.Fatalf("expected conv-cooking, got %s", rec.ConversationID)
	}
	if len(rec.Messages) != 2 {
		t.Fatalf("expected user and assistant message, got %d", len(rec.Messages))
	}
	if rec.Messages[1].Role != domain.RoleAssistant {
		t.Fatalf("expected assistant reply last, got %s", rec.Messages[1].Role)
	}
}

func TestHeadlessRunUnknownTopic(t *testing.T) {
	h := newHeadless(t, "underwater basket weaving")
	err := h.run(context.Background())
	if !errors.Is(err, domain.ErrNoConversations) {
		t.Fatalf("expected ErrNoConversations, got %v", err)
	}
}

func TestTurnLimitFiresOnce(t *testing.T) {
	calls := 0
	tl := &turnLimit{limit: 2, done: func() { calls++ }}
	for i := 0; i < 5; i++ {
		tl.MessageCommitted(domain.Message{Role: domain.RoleUser})
		tl.MessageCommitted(domain.Message{Role: domain.RoleAssistant})
	}
	if calls != 1 {
		t.Fatalf("expected done once, got %d", calls)
	}
}
