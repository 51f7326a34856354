// Package engine implements the voice session state machine and the
// transcript playback loop that drives it.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hammamikhairi/voicemode/internal/domain"
	"github.com/hammamikhairi/voicemode/internal/logger"
	"github.com/hammamikhairi/voicemode/internal/trust"
)

// Timings are the playback delays.
type Timings struct {
	RevealTick  time.Duration // one word per tick
	CommitDelay time.Duration // last word revealed -> processing
	Dwell       time.Duration // processing -> assistant reply
}

// DefaultTimings returns the stock playback pace.
func DefaultTimings() Timings {
	return Timings{
		RevealTick:  300 * time.Millisecond,
		CommitDelay: 800 * time.Millisecond,
		Dwell:       2000 * time.Millisecond,
	}
}

// Validate rejects non-positive delays.
func (t Timings) Validate() error {
	if t.RevealTick <= 0 || t.CommitDelay <= 0 || t.Dwell <= 0 {
		return domain.ErrInvalidTiming
	}
	return nil
}

// Option configures the controller.
type Option func(*Controller)

// WithTimings overrides the playback delays. Invalid timings are ignored.
func WithTimings(t Timings) Option {
	return func(c *Controller) {
		if err := t.Validate(); err != nil {
			c.log.Warn("ignoring timings %+v: %v", t, err)
			return
		}
		c.timings = t
	}
}

// WithRand sets the random source used to pick a conversation.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) {
		c.rng = r
	}
}

// WithObserver reports session events to obs.
func WithObserver(obs domain.Observer) Option {
	return func(c *Controller) {
		c.observer = obs
	}
}

// WithCaptions sets the initial state of the caption toggle.
func WithCaptions(enabled bool) Option {
	return func(c *Controller) {
		c.captions = enabled
	}
}

// WithClock sets the clock used for archive timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// Controller owns all session state. Every method, including Fire, must be
// called from the same goroutine; there are no locks.
type Controller struct {
	source   domain.ConversationSource
	archive  domain.SessionArchive
	signals  *trust.Notifier
	sched    domain.Scheduler
	observer domain.Observer
	log      *logger.Logger
	rng      *rand.Rand
	timings  Timings
	now      func() time.Time

	state      domain.SessionState
	gen        uint64
	sessionID  string
	startedAt  time.Time
	conv       *domain.Conversation
	cursor     domain.Cursor
	partial    string
	confidence float64
	messages   []domain.Message

	captions        bool
	drawerOpen      bool
	feedbackPending bool
	feedbackFor     string
	hinglishShown   bool
}

// New creates an idle controller.
func New(source domain.ConversationSource, archive domain.SessionArchive, signals *trust.Notifier, sched domain.Scheduler, log *logger.Logger, opts ...Option) *Controller {
	c := &Controller{
		source:     source,
		archive:    archive,
		signals:    signals,
		sched:      sched,
		observer:   domain.Observers(nil),
		log:        log,
		rng:        rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		timings:    DefaultTimings(),
		now:        time.Now,
		state:      domain.StateIdle,
		confidence: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start opens a voice session on a randomly picked conversation.
func (c *Controller) Start(ctx context.Context) error {
	if c.state != domain.StateIdle {
		return domain.ErrSessionActive
	}
	convs, err := c.source.List(ctx)
	if err != nil {
		return fmt.Errorf("listing conversations: %w", err)
	}
	if len(convs) == 0 {
		c.log.Warn("cannot start voice session: %v", domain.ErrNoConversations)
		return domain.ErrNoConversations
	}
	conv := convs[c.rng.IntN(len(convs))]
	c.begin(&conv)
	return nil
}

// StartConversation opens a voice session on the conversation with the
// given id.
func (c *Controller) StartConversation(ctx context.Context, id string) error {
	if c.state != domain.StateIdle {
		return domain.ErrSessionActive
	}
	conv, err := c.source.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("getting conversation: %w", err)
	}
	c.begin(conv)
	return nil
}

func (c *Controller) begin(conv *domain.Conversation) {
	c.conv = conv
	c.sessionID = generateID()
	c.startedAt = c.now()
	c.messages = nil
	c.cursor = domain.Cursor{}
	c.partial = ""
	c.confidence = 1
	c.hinglishShown = false
	c.feedbackPending = false
	c.feedbackFor = ""
	c.drawerOpen = false

	c.setState(domain.StateListening)
	c.trigger(domain.TriggerSessionStart)
	c.log.Info("voice session %s started on %q (%s, %d turns)", c.sessionID, conv.ID, conv.Category, len(conv.Turns))
	c.resumePlayback()
}

// TogglePause pauses a listening or processing session, or resumes a
// paused one from where it stopped.
func (c *Controller) TogglePause(ctx context.Context) error {
	switch c.state {
	case domain.StateListening, domain.StateProcessing:
		c.setState(domain.StatePaused)
		c.trigger(domain.TriggerPauseActivated)
		c.log.Info("voice session %s paused at turn %d word %d", c.sessionID, c.cursor.TurnIndex, c.cursor.WordIndex)
		return nil
	case domain.StatePaused:
		c.setState(domain.StateListening)
		c.trigger(domain.TriggerResumeActivated)
		c.log.Info("voice session %s resumed", c.sessionID)
		c.resumePlayback()
		return nil
	default:
		return domain.ErrSessionNotActive
	}
}

// Exit ends the session, archives it and raises the feedback prompt. The
// message log stays visible on the idle screen.
func (c *Controller) Exit(ctx context.Context) error {
	if !c.state.Active() {
		return domain.ErrSessionNotActive
	}

	rec := c.record()
	rec.EndedAt = c.now()
	err := c.archive.Save(ctx, rec)
	if err != nil {
		c.log.Error("archiving session %s: %v", c.sessionID, err)
		err = fmt.Errorf("archiving session: %w", err)
	}

	c.setState(domain.StateIdle)
	c.partial = ""
	c.signals.Clear()
	c.conv = nil
	c.cursor = domain.Cursor{}
	c.feedbackPending = true
	c.feedbackFor = rec.ID
	c.log.Info("voice session %s ended after %d messages", rec.ID, len(rec.Messages))
	return err
}

// Save archives a snapshot of the running session.
func (c *Controller) Save(ctx context.Context) error {
	if !c.state.Active() {
		return domain.ErrSessionNotActive
	}
	if err := c.archive.Save(ctx, c.record()); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	c.trigger(domain.TriggerSessionSaved)
	c.log.Info("voice session %s saved (%d messages)", c.sessionID, len(c.messages))
	return nil
}

// NewChat clears the message log. Only allowed while idle.
func (c *Controller) NewChat(ctx context.Context) error {
	if c.state != domain.StateIdle {
		return domain.ErrSessionActive
	}
	c.messages = nil
	c.drawerOpen = false
	c.log.Debug("new chat")
	return nil
}

// SetDrawer opens or closes the history drawer. Only allowed while idle.
func (c *Controller) SetDrawer(open bool) error {
	if c.state != domain.StateIdle {
		return domain.ErrSessionActive
	}
	c.drawerOpen = open
	return nil
}

// ToggleCaptions flips the caption overlay and returns the new value.
func (c *Controller) ToggleCaptions() bool {
	c.captions = !c.captions
	c.log.Debug("captions enabled=%v", c.captions)
	return c.captions
}

// SubmitFeedback attaches fb to the session that just ended and closes the
// prompt.
func (c *Controller) SubmitFeedback(ctx context.Context, fb domain.Feedback) error {
	if !c.feedbackPending {
		return domain.ErrNoFeedbackPending
	}
	if fb.SubmittedAt.IsZero() {
		fb.SubmittedAt = c.now()
	}
	c.feedbackPending = false
	c.observer.FeedbackSubmitted(fb)

	if err := c.archive.AttachFeedback(ctx, c.feedbackFor, fb); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.log.Warn("feedback for unarchived session %s dropped", c.feedbackFor)
		}
		return fmt.Errorf("attaching feedback: %w", err)
	}
	c.log.Info("feedback %s for session %s (%d reasons)", fb.Rating, c.feedbackFor, len(fb.Reasons))
	return nil
}

// DismissFeedback closes the prompt without an answer.
func (c *Controller) DismissFeedback() {
	c.feedbackPending = false
}

// State returns the current session state.
func (c *Controller) State() domain.SessionState {
	return c.state
}

// Generation returns the current session generation.
func (c *Controller) Generation() uint64 {
	return c.gen
}

// Snapshot returns a copy of everything a renderer needs.
func (c *Controller) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		SessionID:       c.sessionID,
		State:           c.state,
		Cursor:          c.cursor,
		Partial:         c.partial,
		Confidence:      c.confidence,
		Messages:        append([]domain.Message(nil), c.messages...),
		CaptionsEnabled: c.captions,
		FeedbackPending: c.feedbackPending,
		DrawerOpen:      c.drawerOpen,
		Generation:      c.gen,
	}
	if c.conv != nil {
		snap.ConversationID = c.conv.ID
		snap.Category = c.conv.Category
		snap.TurnCount = len(c.conv.Turns)
	}
	if sig, ok := c.signals.Active(); ok {
		snap.Signal = &sig
	}
	return snap
}

// setState moves to a new state and bumps the generation so every timer
// scheduled under the old state turns stale.
func (c *Controller) setState(to domain.SessionState) {
	from := c.state
	c.state = to
	c.gen++
	c.log.Debug("state %s -> %s (gen=%d)", from, to, c.gen)
	c.observer.StateChanged(from, to)
}

func (c *Controller) trigger(name domain.Trigger) {
	if err := c.signals.Trigger(name); err != nil {
		c.log.Debug("trigger %s: %v", name, err)
	}
}

func (c *Controller) record() *domain.Record {
	rec := &domain.Record{
		ID:        c.sessionID,
		Messages:  append([]domain.Message(nil), c.messages...),
		StartedAt: c.startedAt,
	}
	if c.conv != nil {
		rec.ConversationID = c.conv.ID
		rec.Category = c.conv.Category
	}
	return rec
}
