package conversation

import (
	"context"
	"testing"

	"github.com/hammamikhairi/voicemode/internal/domain"
	"github.com/hammamikhairi/voicemode/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input       string
		wantType    domain.CommandType
		wantPayload string
	}{
		// Voice variants
		{"voice", domain.CommandVoice, ""},
		{"/voice", domain.CommandVoice, ""},
		{"Talk", domain.CommandVoice, ""},
		{"v", domain.CommandVoice, ""},
		{"voice cooking", domain.CommandVoice, "cooking"},
		{"talk about  Travel ", domain.CommandVoice, "Travel"},

		// New chat
		{"new", domain.CommandNewChat, ""},
		{"new chat", domain.CommandNewChat, ""},
		{"clear", domain.CommandNewChat, ""},

		// Drawer
		{"history", domain.CommandHistory, ""},
		{"menu", domain.CommandHistory, ""},

		// Captions
		{"cc", domain.CommandCaptions, ""},
		{"captions", domain.CommandCaptions, ""},

		// Help
		{"help", domain.CommandHelp, ""},
		{"?", domain.CommandHelp, ""},

		// Quit
		{"quit", domain.CommandQuit, ""},
		{"exit", domain.CommandQuit, ""},
		{"Q", domain.CommandQuit, ""},

		// Unknown
		{"", domain.CommandUnknown, ""},
		{"   ", domain.CommandUnknown, ""},
		{"what is the weather", domain.CommandUnknown, "what is the weather"},
		{"voiceover", domain.CommandUnknown, "voiceover"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := parser.Parse(ctx, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cmd.Type != tt.wantType {
				t.Fatalf("input %q: expected %s, got %s", tt.input, tt.wantType, cmd.Type)
			}
			if cmd.Payload != tt.wantPayload {
				t.Fatalf("input %q: expected payload %q, got %q", tt.input, tt.wantPayload, cmd.Payload)
			}
		})
	}
}
