// Package captions splits the live partial transcript into words and
// flags the ones shown as "low confidence". There is no real recogniser
// behind the score, so the flagging is a fixed heuristic over the turn's
// static confidence.
package captions

import (
	"strings"
	"unicode/utf8"

	"github.com/hammamikhairi/voicemode/internal/domain"
)

// Config tunes the low-confidence heuristic.
type Config struct {
	// ShowThreshold: below it every word is flagged.
	ShowThreshold float64 `yaml:"show_threshold"`
	// LowConfidenceCeiling: at or above it no word is flagged.
	LowConfidenceCeiling float64 `yaml:"low_confidence_ceiling"`
	// MinWordLength: only words longer than this (in runes) are flagged.
	MinWordLength int `yaml:"min_word_length"`
	// Stride: only every Stride-th word (starting at 0) is flagged.
	Stride  int    `yaml:"stride"`
	Tooltip string `yaml:"tooltip"`
}

// DefaultConfig returns the stock heuristic.
func DefaultConfig() Config {
	return Config{
		ShowThreshold:        0.7,
		LowConfidenceCeiling: 0.95,
		MinWordLength:        5,
		Stride:               3,
		Tooltip:              "AI is less certain about this word",
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.LowConfidenceCeiling <= 0 {
		c.LowConfidenceCeiling = d.LowConfidenceCeiling
	}
	if c.MinWordLength <= 0 {
		c.MinWordLength = d.MinWordLength
	}
	if c.Stride <= 0 {
		c.Stride = d.Stride
	}
	if c.Tooltip == "" {
		c.Tooltip = d.Tooltip
	}
	return c
}

// Word is one rendered caption word.
type Word struct {
	Text          string
	LowConfidence bool
}

// Visible reports whether the caption overlay shows for the given toggle
// and session state.
func Visible(enabled bool, state domain.SessionState) bool {
	return enabled && (state == domain.StateListening || state == domain.StateProcessing)
}

// Render splits text into caption words. It returns nil when the overlay
// is hidden or there is nothing to show.
func Render(text string, confidence float64, visible bool, cfg Config) []Word {
	if !visible || text == "" {
		return nil
	}
	cfg = cfg.WithDefaults()

	parts := strings.Split(text, " ")
	out := make([]Word, len(parts))
	for i, p := range parts {
		out[i] = Word{Text: p, LowConfidence: lowConfidence(p, i, confidence, cfg)}
	}
	return out
}

func lowConfidence(word string, index int, confidence float64, cfg Config) bool {
	if confidence < cfg.ShowThreshold {
		return word != ""
	}
	return confidence < cfg.LowConfidenceCeiling &&
		utf8.RuneCountInString(word) > cfg.MinWordLength &&
		index%cfg.Stride == 0
}

// Plain joins the words back into the caption line.
func Plain(words []Word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}
