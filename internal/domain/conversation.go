// Package domain defines the core types and interfaces for the voice-mode
// simulator. All other packages depend on domain; domain depends on nothing.
package domain

import "strings"

// Conversation is a scripted exchange grouped by topic. Once selected it is
// played in a loop until the session ends.
type Conversation struct {
	ID       string `yaml:"id"`
	Category string `yaml:"category"`
	Turns    []Turn `yaml:"turns"`
}

// Turn is one scripted exchange: a simulated user utterance and the fixed
// assistant reply that follows it.
type Turn struct {
	ID         string  `yaml:"id"`
	Kind       string  `yaml:"type"`      // language tag, e.g. "hinglish"
	Spoken     string  `yaml:"spoken"`    // revealed word by word
	Displayed  string  `yaml:"displayed"` // committed to the message log
	Confidence float64 `yaml:"confidence"`
	Response   string  `yaml:"response"`
}

// KindHinglish marks turns spoken in mixed Hindi/English.
const KindHinglish = "hinglish"

// Words splits spoken text into the units revealed by the playback loop.
// Joining the result with a single space always yields the input again,
// so the empty string is a single empty word.
func Words(spoken string) []string {
	return strings.Split(spoken, " ")
}

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a session's message log.
type Message struct {
	Role Role
	Text string
}
