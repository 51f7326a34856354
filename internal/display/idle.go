package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/voicemode/internal/domain"
	"github.com/hammamikhairi/voicemode/internal/feedback"
)

// ── Idle chat screen ─────────────────────────────────────────────

func (m model) idleView(snap domain.Snapshot, w, h int) string {
	mainW := w
	var drawer string
	if snap.DrawerOpen {
		drawer = m.drawerView(h)
		mainW -= lipgloss.Width(drawer)
	}

	header := m.st.header.Render(m.deps.Catalog.Name) +
		m.st.subtle.Render(" "+m.deps.Catalog.Version)

	var footer strings.Builder
	if m.notice != "" {
		footer.WriteString(m.st.notice.Render(m.notice))
		footer.WriteByte('\n')
	}
	footer.WriteString(m.input.View())
	footer.WriteByte('\n')
	footer.WriteString(m.help.View(m.keys.idle()))

	bodyH := h - lipgloss.Height(header) - lipgloss.Height(footer.String()) - 2
	if bodyH < 3 {
		bodyH = 3
	}
	body := m.messagesView(snap.Messages, mainW, bodyH)

	main := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		body,
		"",
		footer.String(),
	)
	if drawer == "" {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, drawer, main)
}

// messagesView renders the log bottom-aligned, keeping only what fits.
func (m model) messagesView(msgs []domain.Message, w, h int) string {
	if len(msgs) == 0 {
		empty := lipgloss.JoinVertical(lipgloss.Center,
			BannerStyle.Render(strings.Join(bannerLines(), "\n")),
			"",
			m.st.empty.Render("What can I help with?"),
		)
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, empty)
	}

	bubbleW := w * 3 / 4
	if bubbleW < 20 {
		bubbleW = 20
	}

	var lines []string
	for _, msg := range msgs {
		var block string
		if msg.Role == domain.RoleUser {
			block = lipgloss.PlaceHorizontal(w, lipgloss.Right, m.st.userMsg.MaxWidth(bubbleW).Render(msg.Text))
		} else {
			block = m.st.assistant.Width(bubbleW).Render(msg.Text)
		}
		lines = append(lines, strings.Split(block, "\n")...)
		lines = append(lines, "")
	}
	if len(lines) > h {
		lines = lines[len(lines)-h:]
	}
	return lipgloss.PlaceVertical(h, lipgloss.Bottom, strings.Join(lines, "\n"))
}

func (m model) drawerView(h int) string {
	var b strings.Builder
	b.WriteString(m.st.drawerActive.Render("+ New chat"))
	b.WriteString("\n\n")
	b.WriteString(m.st.subtle.Render("History"))
	b.WriteByte('\n')
	if len(m.history) == 0 {
		b.WriteString(m.st.drawerItem.Render("No saved voice chats"))
	}
	for _, rec := range m.history {
		b.WriteString(m.st.drawerItem.Render(fmt.Sprintf("%s  %s", rec.StartedAt.Format("15:04"), rec.Title())))
		if rec.Feedback != nil {
			mark := "👍"
			if rec.Feedback.Rating == domain.RatingNegative {
				mark = "👎"
			}
			b.WriteString(" " + mark)
		}
		b.WriteByte('\n')
	}
	return m.st.drawer.Height(h - 2).Render(strings.TrimRight(b.String(), "\n"))
}

// feedbackView renders the post-session prompt.
func (m model) feedbackView() string {
	f := m.form
	var b strings.Builder

	switch f.Step() {
	case feedback.StepRating:
		b.WriteString(m.st.header.Render("How was the conversation?"))
		b.WriteString("\n\n")
		b.WriteString(m.st.modalItem.Render("[u] 👍      [d] 👎"))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys.rating()))

	case feedback.StepDetails:
		b.WriteString(m.st.header.Render("What went wrong?"))
		b.WriteByte('\n')
		b.WriteString(m.st.subtle.Render("Select all that apply"))
		b.WriteString("\n\n")
		for i, opt := range f.Options() {
			cursor := "  "
			style := m.st.modalItem
			if i == f.Cursor() {
				cursor = "› "
				style = m.st.modalSel
			}
			box := "[ ]"
			if f.Selected(i) {
				box = "[x]"
			}
			b.WriteString(style.Render(cursor + box + " " + opt))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
		b.WriteString(m.help.View(m.keys.details()))
	}

	return m.st.modal.Render(b.String())
}
