package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hammamikhairi/voicemode/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if len(c.Conversations) < 2 {
		t.Fatalf("expected a conversation library, got %d", len(c.Conversations))
	}
	for _, conv := range c.Conversations {
		if len(conv.Turns) == 0 {
			t.Fatalf("conversation %s has no turns", conv.ID)
		}
		for _, turn := range conv.Turns {
			if turn.Spoken == "" || turn.Response == "" {
				t.Fatalf("turn %s/%s is incomplete", conv.ID, turn.ID)
			}
		}
	}
	if c.ToastDuration() != 2500*time.Millisecond {
		t.Fatalf("expected 2.5s toast, got %s", c.ToastDuration())
	}
	if c.Captions.ShowThreshold != 0.7 {
		t.Fatalf("expected show threshold 0.7, got %v", c.Captions.ShowThreshold)
	}
}

func TestDefaultSignals(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	signals := c.Signals()

	triggers := []domain.Trigger{
		domain.TriggerSessionStart,
		domain.TriggerPauseActivated,
		domain.TriggerResumeActivated,
		domain.TriggerSessionSaved,
		domain.TriggerHinglishDetected,
	}
	for _, tr := range triggers {
		if _, ok := signals[tr]; !ok {
			t.Fatalf("missing trust signal for %s", tr)
		}
	}
	if signals[domain.TriggerPauseActivated].Message != "Voice Paused" {
		t.Fatalf("unexpected pause message: %q", signals[domain.TriggerPauseActivated].Message)
	}
}

func TestDecodeDefaultsAndValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name: "displayed falls back to spoken",
			yaml: `
conversations:
  - id: a
    turns:
      - id: a1
        spoken: "hello world"
        confidence: 0.9
        response: "hi"
`,
		},
		{
			name: "duplicate conversation id",
			yaml: `
conversations:
  - id: a
  - id: a
`,
			wantErr: domain.ErrDuplicateID,
		},
		{
			name: "confidence out of range",
			yaml: `
conversations:
  - id: a
    turns:
      - id: a1
        spoken: "x"
        confidence: 1.5
`,
			wantErr: domain.ErrInvalidConfidence,
		},
		{
			name: "missing id",
			yaml: `
conversations:
  - category: Misc
`,
			wantErr: domain.ErrInvalidData,
		},
		{
			name: "duplicate trigger",
			yaml: `
trust_signals:
  - id: one
    trigger: session-start
  - id: two
    trigger: session-start
`,
			wantErr: domain.ErrDuplicateID,
		},
		{
			name: "empty library is allowed",
			yaml: `name: empty`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Decode(strings.NewReader(tt.yaml))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Toast.DurationMS != 2500 {
				t.Fatalf("expected default toast duration, got %d", c.Toast.DurationMS)
			}
			if len(c.Conversations) > 0 && c.Conversations[0].Turns[0].Displayed != "hello world" {
				t.Fatalf("displayed not defaulted: %+v", c.Conversations[0].Turns[0])
			}
		})
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("colour: red\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.yaml")
	data := "toast:\n  duration_ms: 1000\nconversations:\n  - id: only\n    category: Solo\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.ToastDuration() != time.Second {
		t.Fatalf("expected 1s toast, got %s", c.ToastDuration())
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
