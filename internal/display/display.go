// Package display provides the terminal UI using Bubble Tea.
//
// The model renders one of two screens from the session snapshot: the
// idle chat screen (message log, history drawer, typed prompt, feedback
// prompt) and the voice screen (toast, badge, visualizer, captions,
// controls). Session timers are scheduled through [Scheduler] and come
// back as [TimerMsg], so the controller is only touched from Update.
package display

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/voicemode/internal/catalog"
	"github.com/hammamikhairi/voicemode/internal/domain"
	"github.com/hammamikhairi/voicemode/internal/feedback"
	"github.com/hammamikhairi/voicemode/internal/logger"
)

// Session is the controller surface the UI drives.
type Session interface {
	Start(ctx context.Context) error
	StartConversation(ctx context.Context, id string) error
	TogglePause(ctx context.Context) error
	Exit(ctx context.Context) error
	Save(ctx context.Context) error
	NewChat(ctx context.Context) error
	SetDrawer(open bool) error
	ToggleCaptions() bool
	SubmitFeedback(ctx context.Context, fb domain.Feedback) error
	DismissFeedback()
	Fire(t domain.Timer)
	Snapshot() domain.Snapshot
}

// Searcher finds conversations by topic for "voice <topic>".
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.Conversation, error)
	Categories() []string
}

// Deps are the collaborators of the UI.
type Deps struct {
	Session   Session
	Scheduler *Scheduler
	Archive   domain.SessionArchive
	Parser    domain.CommandParser
	Search    Searcher
	Catalog   *catalog.Catalog
	Log       *logger.Logger
}

// UI manages the terminal through Bubble Tea.
type UI struct {
	deps    Deps
	program *tea.Program
}

// NewUI creates the display. Call Run() to start.
func NewUI(deps Deps) *UI {
	return &UI{deps: deps}
}

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run(ctx context.Context) error {
	u.program = tea.NewProgram(newModel(ctx, u.deps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := u.program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	ctx   context.Context
	deps  Deps
	st    styles
	keys  keyMap
	help  help.Model
	input textinput.Model
	spin  spinner.Model

	form    *feedback.Form
	history []*domain.Record
	notice  string
	frame   int
	width   int
	height  int
}

func newModel(ctx context.Context, deps Deps) model {
	ti := textinput.New()
	// Plain-text prompt keeps the textinput width math correct.
	ti.Prompt = "› "
	ti.Placeholder = "Message (type \"voice\" or press ctrl+v)"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60 // updated on first WindowSizeMsg

	sp := spinner.New()
	sp.Spinner = spinner.Points

	st := newStyles(deps.Catalog.Theme)
	sp.Style = st.accent
	ti.PromptStyle = st.accent

	return model{
		ctx:   ctx,
		deps:  deps,
		st:    st,
		keys:  defaultKeyMap(),
		help:  help.New(),
		input: ti,
		spin:  sp,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spin.Tick,
		tea.SetWindowTitle(m.deps.Catalog.Name),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)

	case TimerMsg:
		m.deps.Session.Fire(msg.Timer)

	case spinner.TickMsg:
		m.frame++
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if msg.Width > 4 {
			m.input.Width = msg.Width - 4
		}

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.syncFeedback()
	cmds = append(cmds, m.deps.Scheduler.Drain())
	return m, tea.Batch(cmds...)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	snap := m.deps.Session.Snapshot()
	switch {
	case snap.State.Active():
		return m.handleVoiceKey(msg), nil
	case m.form != nil:
		return m.handleFeedbackKey(msg), nil
	default:
		return m.handleIdleKey(msg)
	}
}

func (m model) handleVoiceKey(msg tea.KeyMsg) model {
	s := m.deps.Session
	switch {
	case key.Matches(msg, m.keys.Pause):
		m.report(s.TogglePause(m.ctx))
	case key.Matches(msg, m.keys.Captions):
		s.ToggleCaptions()
	case key.Matches(msg, m.keys.Save):
		m.report(s.Save(m.ctx))
	case key.Matches(msg, m.keys.Exit):
		m.report(s.Exit(m.ctx))
		m.input.Focus()
	}
	return m
}

func (m model) handleFeedbackKey(msg tea.KeyMsg) model {
	f := m.form
	switch f.Step() {
	case feedback.StepRating:
		switch {
		case key.Matches(msg, m.keys.ThumbsUp):
			f.ThumbsUp()
		case key.Matches(msg, m.keys.ThumbsDown):
			f.ThumbsDown()
		case key.Matches(msg, m.keys.Skip):
			f.Skip()
		}
	case feedback.StepDetails:
		switch {
		case key.Matches(msg, m.keys.Up):
			f.MoveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			f.MoveCursor(1)
		case key.Matches(msg, m.keys.Toggle):
			f.ToggleCursor()
		case key.Matches(msg, m.keys.Submit):
			_, _ = f.Submit()
		case key.Matches(msg, m.keys.Skip):
			f.Skip()
		}
	}

	if f.Step() != feedback.StepDone {
		return m
	}
	if f.Skipped() {
		m.deps.Session.DismissFeedback()
	} else if fb, err := f.Submit(); err == nil {
		m.report(m.deps.Session.SubmitFeedback(m.ctx, fb))
		m.notice = "Thanks for the feedback."
	}
	m.form = nil
	m.input.Focus()
	return m
}

func (m model) handleIdleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	s := m.deps.Session
	switch {
	case key.Matches(msg, m.keys.Voice):
		m.startVoice("")
		return m, nil
	case key.Matches(msg, m.keys.Drawer):
		m.toggleDrawer()
		return m, nil
	case key.Matches(msg, m.keys.NewChat):
		m.report(s.NewChat(m.ctx))
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case msg.Type == tea.KeyEnter:
		v := m.input.Value()
		m.input.Reset()
		return m.runCommand(v)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) runCommand(input string) (model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	cmd, err := m.deps.Parser.Parse(m.ctx, input)
	if err != nil {
		m.report(err)
		return m, nil
	}

	m.notice = ""
	switch cmd.Type {
	case domain.CommandVoice:
		m.startVoice(cmd.Payload)
	case domain.CommandNewChat:
		m.report(m.deps.Session.NewChat(m.ctx))
	case domain.CommandHistory:
		m.toggleDrawer()
	case domain.CommandCaptions:
		if m.deps.Session.ToggleCaptions() {
			m.notice = "Captions on."
		} else {
			m.notice = "Captions off."
		}
	case domain.CommandHelp:
		m.help.ShowAll = !m.help.ShowAll
	case domain.CommandQuit:
		return m, tea.Quit
	default:
		m.notice = "This prototype only talks. Press ctrl+v or type \"voice\"."
	}
	return m, nil
}

func (m *model) startVoice(topic string) {
	s := m.deps.Session
	if topic == "" {
		m.report(s.Start(m.ctx))
	} else {
		convs, err := m.deps.Search.Search(m.ctx, topic)
		switch {
		case err != nil:
			m.report(err)
			return
		case len(convs) == 0:
			m.notice = fmt.Sprintf("No conversation about %q. Try: %s.", topic, strings.Join(m.deps.Search.Categories(), ", "))
			return
		}
		m.report(s.StartConversation(m.ctx, convs[0].ID))
	}
	if s.Snapshot().State.Active() {
		m.input.Blur()
		m.notice = ""
	}
}

func (m *model) toggleDrawer() {
	open := !m.deps.Session.Snapshot().DrawerOpen
	if err := m.deps.Session.SetDrawer(open); err != nil {
		m.report(err)
		return
	}
	if !open {
		return
	}
	recs, err := m.deps.Archive.List(m.ctx)
	if err != nil {
		m.report(err)
		return
	}
	m.history = recs
}

// syncFeedback opens the form when the controller raises the prompt.
func (m *model) syncFeedback() {
	pending := m.deps.Session.Snapshot().FeedbackPending
	switch {
	case pending && m.form == nil:
		m.form = feedback.NewForm()
		m.input.Blur()
	case !pending && m.form != nil:
		m.form = nil
	}
}

func (m *model) report(err error) {
	if err == nil {
		return
	}
	m.deps.Log.Warn("ui action: %v", err)
	m.notice = friendly(err)
}

func friendly(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoConversations):
		return "No conversations to play."
	case errors.Is(err, domain.ErrSessionActive):
		return "Leave voice mode first."
	case errors.Is(err, domain.ErrSessionNotActive):
		return "Voice mode is not running."
	default:
		return err.Error()
	}
}

func (m model) View() string {
	snap := m.deps.Session.Snapshot()
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}

	if snap.State.Active() {
		return m.voiceView(snap, w, h)
	}
	if m.form != nil {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.feedbackView())
	}
	return m.idleView(snap, w, h)
}
