package conversation

import (
	"fmt"

	"github.com/hammamikhairi/voicemode/internal/domain"
	"github.com/hammamikhairi/voicemode/internal/logger"
)

// Compile-time interface check.
var _ domain.Observer = (*Transcript)(nil)

// ANSI escape codes for terminal formatting.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

// PrintFunc is a function used to print formatted output.
// Matches the signature of fmt.Printf.
type PrintFunc func(format string, a ...interface{})

// Transcript prints session events as they happen. It is the headless
// counterpart of the voice screen.
type Transcript struct {
	log     *logger.Logger
	printFn PrintFunc
	color   bool
}

// NewTranscript creates a transcript printer. If printFn is nil,
// fmt.Printf is used.
func NewTranscript(log *logger.Logger, printFn PrintFunc, color bool) *Transcript {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &Transcript{log: log, printFn: printFn, color: color}
}

// StateChanged prints the new state in a dim line.
func (p *Transcript) StateChanged(from, to domain.SessionState) {
	p.print(dim, "· %s", to)
}

// SignalShown prints a trust signal.
func (p *Transcript) SignalShown(sig domain.TrustSignal) {
	p.log.Debug("transcript signal: %s", sig.ID)
	style := cyan
	if sig.Category == "success" {
		style = green
	}
	p.print(style+bold, "[%s] %s", sig.Icon, sig.Message)
}

// MessageCommitted prints a log entry with its author.
func (p *Transcript) MessageCommitted(msg domain.Message) {
	if msg.Role == domain.RoleUser {
		p.print(bold, "you: %s", msg.Text)
		return
	}
	p.print(yellow, "assistant: %s", msg.Text)
}

// FeedbackSubmitted prints the rating.
func (p *Transcript) FeedbackSubmitted(fb domain.Feedback) {
	p.print(dim, "feedback: %s", fb.Rating)
}

func (p *Transcript) print(style, format string, a ...interface{}) {
	if !p.color {
		p.printFn(format, a...)
		return
	}
	p.printFn(style+format+reset, a...)
}
