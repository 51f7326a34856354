package engine

import (
	"strings"
	"time"

	"github.com/hammamikhairi/voicemode/internal/domain"
)

// Fire handles a timer handed back by the scheduler. Timers from an older
// generation are ignored, so pause and exit cancel pending work simply by
// changing state.
func (c *Controller) Fire(t domain.Timer) {
	if t.Kind == domain.TimerToastExpiry {
		c.signals.Expire(t.Generation)
		return
	}
	if t.Generation != c.gen {
		c.log.Debug("ignoring stale %s timer (gen=%d, current=%d)", t.Kind, t.Generation, c.gen)
		return
	}

	switch t.Kind {
	case domain.TimerReveal:
		if c.state == domain.StateListening {
			c.revealNext()
		}
	case domain.TimerCommit:
		if c.state == domain.StateListening {
			c.startProcessing()
		}
	case domain.TimerDwell:
		if c.state == domain.StateProcessing {
			c.answer()
		}
	}
}

func (c *Controller) currentTurn() *domain.Turn {
	if c.conv == nil || len(c.conv.Turns) == 0 {
		return nil
	}
	return &c.conv.Turns[c.cursor.TurnIndex]
}

// resumePlayback continues the current turn from the cursor. It is used
// both on start and on resume.
func (c *Controller) resumePlayback() {
	turn := c.currentTurn()
	if turn == nil {
		c.log.Debug("conversation has no turns, nothing to play")
		return
	}
	if c.cursor.Committed {
		c.schedule(domain.TimerCommit, c.timings.CommitDelay)
		return
	}
	if c.cursor.WordIndex >= len(domain.Words(turn.Spoken)) {
		c.commitUser(turn)
		return
	}
	c.schedule(domain.TimerReveal, c.timings.RevealTick)
}

func (c *Controller) revealNext() {
	turn := c.currentTurn()
	if turn == nil {
		return
	}
	words := domain.Words(turn.Spoken)
	if c.cursor.WordIndex < len(words) {
		c.cursor.WordIndex++
		c.partial = strings.Join(words[:c.cursor.WordIndex], " ")
		c.confidence = turn.Confidence
	}
	if c.cursor.WordIndex < len(words) {
		c.schedule(domain.TimerReveal, c.timings.RevealTick)
		return
	}
	c.commitUser(turn)
}

// commitUser puts the displayed text in the log once and starts the
// commit delay.
func (c *Controller) commitUser(turn *domain.Turn) {
	c.appendMessage(domain.Message{Role: domain.RoleUser, Text: turn.Displayed})
	c.cursor.Committed = true
	c.schedule(domain.TimerCommit, c.timings.CommitDelay)
}

func (c *Controller) startProcessing() {
	c.setState(domain.StateProcessing)
	if turn := c.currentTurn(); turn != nil && turn.Kind == domain.KindHinglish && !c.hinglishShown {
		c.hinglishShown = true
		c.trigger(domain.TriggerHinglishDetected)
	}
	c.schedule(domain.TimerDwell, c.timings.Dwell)
}

func (c *Controller) answer() {
	turn := c.currentTurn()
	if turn == nil {
		return
	}
	c.appendMessage(domain.Message{Role: domain.RoleAssistant, Text: turn.Response})
	c.cursor = domain.Cursor{TurnIndex: (c.cursor.TurnIndex + 1) % len(c.conv.Turns)}
	c.partial = ""
	c.setState(domain.StateListening)
	c.resumePlayback()
}

func (c *Controller) appendMessage(msg domain.Message) {
	c.messages = append(c.messages, msg)
	c.observer.MessageCommitted(msg)
}

func (c *Controller) schedule(kind domain.TimerKind, delay time.Duration) {
	c.sched.Schedule(domain.Timer{Kind: kind, Delay: delay, Generation: c.gen})
}
