package display

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/voicemode/internal/captions"
	"github.com/hammamikhairi/voicemode/internal/domain"
)

// ── Voice screen ─────────────────────────────────────────────────

func (m model) voiceView(snap domain.Snapshot, w, h int) string {
	top := m.badge(snap)
	if snap.Signal != nil {
		top = lipgloss.JoinVertical(lipgloss.Left, top, "", m.toastView(*snap.Signal))
	}

	middle := lipgloss.JoinVertical(lipgloss.Center,
		m.visualizer(snap.State),
		"",
		m.stateLine(snap),
	)
	if line := m.captionLine(snap, w); line != "" {
		middle = lipgloss.JoinVertical(lipgloss.Center, middle, "", line)
	}

	bottom := lipgloss.JoinVertical(lipgloss.Center,
		m.controls(snap),
		"",
		m.help.View(m.keys.voice()),
	)

	topH := lipgloss.Height(top)
	bottomH := lipgloss.Height(bottom)
	midH := h - topH - bottomH
	if midH < lipgloss.Height(middle) {
		midH = lipgloss.Height(middle)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.PlaceHorizontal(w, lipgloss.Left, top),
		lipgloss.Place(w, midH, lipgloss.Center, lipgloss.Center, middle),
		lipgloss.PlaceHorizontal(w, lipgloss.Center, bottom),
	)
}

func (m model) badge(snap domain.Snapshot) string {
	name := m.deps.Catalog.Name
	if name == "" {
		name = "Advanced Voice"
	}
	b := m.st.badge.Render("ChatGPT") + m.st.subtle.Render(" · "+name)
	if snap.Category != "" {
		b += m.st.subtle.Render(" · " + snap.Category)
	}
	return b
}

func (m model) toastView(sig domain.TrustSignal) string {
	icon := m.st.toastInfo.Render(sig.Icon)
	if sig.Category == "success" {
		icon = m.st.toastSuccess.Render(sig.Icon)
	}
	return m.st.toast.Render(icon + " " + sig.Message)
}

func (m model) stateLine(snap domain.Snapshot) string {
	switch snap.State {
	case domain.StateListening:
		return m.st.stateLabel.Render("Listening")
	case domain.StateProcessing:
		return m.spin.View() + m.st.stateLabel.Render(" Thinking")
	case domain.StatePaused:
		return m.st.stateLabel.Render("Paused · press space to resume")
	default:
		return ""
	}
}

// visualizer draws the blob: pulsing while listening, slower while
// processing, a small static dot while paused.
func (m model) visualizer(state domain.SessionState) string {
	switch state {
	case domain.StateListening:
		return m.st.blobActive.Render(blob(pulse(m.frame, 4)))
	case domain.StateProcessing:
		return m.st.blobCalm.Render(blob(pulse(m.frame/2, 4)))
	default:
		return m.st.blobIdle.Render(blob(2))
	}
}

// pulse maps an animation frame to a radius between base and base+2.
func pulse(frame, base int) int {
	steps := []int{0, 1, 2, 1}
	return base + steps[frame%len(steps)]
}

// blob renders a filled circle. Terminal cells are about twice as tall as
// wide, so columns are doubled.
func blob(radius int) string {
	if radius <= 0 {
		return ""
	}
	var b strings.Builder
	r := float64(radius)
	for y := -radius; y <= radius; y++ {
		for x := -2 * radius; x <= 2*radius; x++ {
			d := math.Hypot(float64(x)/2, float64(y))
			switch {
			case d <= r-1:
				b.WriteRune('█')
			case d <= r-0.5:
				b.WriteRune('▓')
			case d <= r:
				b.WriteRune('░')
			default:
				b.WriteRune(' ')
			}
		}
		if y < radius {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m model) captionLine(snap domain.Snapshot, w int) string {
	cfg := m.deps.Catalog.Captions
	words := captions.Render(snap.Partial, snap.Confidence, captions.Visible(snap.CaptionsEnabled, snap.State), cfg)
	if len(words) == 0 {
		return ""
	}

	parts := make([]string, len(words))
	low := false
	for i, word := range words {
		if word.LowConfidence {
			low = true
			parts[i] = m.st.captionLow.Render(word.Text)
			continue
		}
		parts[i] = m.st.caption.Render(word.Text)
	}

	maxW := w - 8
	if maxW < 20 {
		maxW = 20
	}
	line := m.st.captionBubble.MaxWidth(maxW).Render(strings.Join(parts, " "))
	if low {
		line = lipgloss.JoinVertical(lipgloss.Center, line, m.st.subtle.Render(cfg.WithDefaults().Tooltip))
	}
	return line
}

func (m model) controls(snap domain.Snapshot) string {
	cc := m.st.ccOff.Render("CC")
	if snap.CaptionsEnabled {
		cc = m.st.ccOn.Render("CC")
	}
	pause := "❚❚ Pause"
	if snap.State == domain.StatePaused {
		pause = "▶ Resume"
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		cc,
		m.st.pauseBtn.Render(pause),
		m.st.saveBtn.Render("Save"),
		m.st.exitBtn.Render("✕ End"),
	)
}
