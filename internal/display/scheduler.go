package display

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/voicemode/internal/domain"
)

// Compile-time interface check.
var _ domain.Scheduler = (*Scheduler)(nil)

// TimerMsg carries a fired session timer back into Update.
type TimerMsg struct {
	Timer domain.Timer
}

// Scheduler collects timers requested during Update and hands them to
// Bubble Tea as tick commands, so they fire on the event loop like any
// other message. Only the Update goroutine may use it.
type Scheduler struct {
	pending []domain.Timer
	tick    func(domain.Timer) tea.Cmd
}

// NewScheduler creates a scheduler backed by tea.Tick.
func NewScheduler() *Scheduler {
	return &Scheduler{tick: tickCmd}
}

// Schedule queues t until the next Drain.
func (s *Scheduler) Schedule(t domain.Timer) {
	s.pending = append(s.pending, t)
}

// Drain turns every queued timer into a command.
func (s *Scheduler) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.pending))
	for _, t := range s.pending {
		cmds = append(cmds, s.tick(t))
	}
	s.pending = s.pending[:0]
	return tea.Batch(cmds...)
}

func tickCmd(t domain.Timer) tea.Cmd {
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return TimerMsg{Timer: t}
	})
}
