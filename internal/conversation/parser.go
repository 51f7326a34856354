// Package conversation handles the text side of the app: commands typed
// into the idle prompt and the plain transcript printed in headless mode.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/voicemode/internal/domain"
	"github.com/hammamikhairi/voicemode/internal/logger"
)

// Compile-time interface check.
var _ domain.CommandParser = (*KeywordParser)(nil)

// KeywordParser matches prompt input to commands using keywords. The app
// is voice only, so anything else comes back as CommandUnknown.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	command domain.CommandType
}

// topicPattern captures the topic in "voice cooking", "talk about travel".
var topicPattern = regexp.MustCompile(`(?i)^(?:voice|talk|speak)(?:\s+about)?\s+(.+)$`)

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^/?(voice|talk|speak|v|mic)$`), domain.CommandVoice},
		{regexp.MustCompile(`(?i)^/?(new|new chat|clear|reset)$`), domain.CommandNewChat},
		{regexp.MustCompile(`(?i)^/?(history|chats|drawer|menu)$`), domain.CommandHistory},
		{regexp.MustCompile(`(?i)^/?(captions|cc|subtitles)$`), domain.CommandCaptions},
		{regexp.MustCompile(`(?i)^/?(help|h|\?)$`), domain.CommandHelp},
		{regexp.MustCompile(`(?i)^/?(quit|exit|q)$`), domain.CommandQuit},
	}
	return p
}

// Parse converts prompt input into a command.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Command, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Command{Type: domain.CommandUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched command: %s", rule.command)
			return &domain.Command{Type: rule.command}, nil
		}
	}

	if m := topicPattern.FindStringSubmatch(trimmed); m != nil {
		topic := strings.TrimSpace(m[1])
		p.log.Debug("matched voice command with topic %q", topic)
		return &domain.Command{Type: domain.CommandVoice, Payload: topic}, nil
	}

	p.log.Debug("no match, returning unknown command")
	return &domain.Command{Type: domain.CommandUnknown, Payload: trimmed}, nil
}
