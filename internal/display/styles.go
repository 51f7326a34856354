package display

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/voicemode/internal/catalog"
)

// BannerStyle is used by RenderBanner before a theme is loaded.
var BannerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#94a3b8"))

// styles are built once from the catalog's colour tokens.
type styles struct {
	header    lipgloss.Style
	subtle    lipgloss.Style
	text      lipgloss.Style
	accent    lipgloss.Style
	notice    lipgloss.Style
	userMsg   lipgloss.Style
	assistant lipgloss.Style
	empty     lipgloss.Style

	drawer       lipgloss.Style
	drawerItem   lipgloss.Style
	drawerActive lipgloss.Style

	toast        lipgloss.Style
	toastInfo    lipgloss.Style
	toastSuccess lipgloss.Style

	badge      lipgloss.Style
	stateLabel lipgloss.Style
	blobActive lipgloss.Style
	blobCalm   lipgloss.Style
	blobIdle   lipgloss.Style

	caption       lipgloss.Style
	captionLow    lipgloss.Style
	captionBubble lipgloss.Style

	ccOn      lipgloss.Style
	ccOff     lipgloss.Style
	pauseBtn  lipgloss.Style
	exitBtn   lipgloss.Style
	saveBtn   lipgloss.Style
	modal     lipgloss.Style
	modalItem lipgloss.Style
	modalSel  lipgloss.Style
}

func newStyles(t catalog.Theme) styles {
	c := func(hex, fallback string) lipgloss.Color {
		if hex == "" {
			return lipgloss.Color(fallback)
		}
		return lipgloss.Color(hex)
	}
	fg := c(t.Foreground, "#FFFFFF")
	muted := c(t.Muted, "#A0A0A0")
	surface := c(t.Surface, "#212121")
	accent := c(t.Accent, "#10A37F")

	btn := lipgloss.NewStyle().Padding(0, 2).MarginRight(2)

	return styles{
		header:    lipgloss.NewStyle().Foreground(fg).Bold(true),
		subtle:    lipgloss.NewStyle().Foreground(muted),
		text:      lipgloss.NewStyle().Foreground(fg),
		accent:    lipgloss.NewStyle().Foreground(accent),
		notice:    lipgloss.NewStyle().Foreground(muted).Italic(true),
		userMsg:   lipgloss.NewStyle().Foreground(fg).Background(surface).Padding(0, 1),
		assistant: lipgloss.NewStyle().Foreground(fg),
		empty:     lipgloss.NewStyle().Foreground(fg).Bold(true),

		drawer:       lipgloss.NewStyle().Background(c(t.Drawer, "#171717")).Padding(1, 2).Width(28),
		drawerItem:   lipgloss.NewStyle().Foreground(muted),
		drawerActive: lipgloss.NewStyle().Foreground(fg).Bold(true),

		toast:        lipgloss.NewStyle().Background(c(t.ToastBackground, "#1A202C")).Foreground(fg).Padding(0, 2),
		toastInfo:    lipgloss.NewStyle().Foreground(c(t.ToastInfo, "#60A5FA")),
		toastSuccess: lipgloss.NewStyle().Foreground(c(t.ToastSuccess, "#4ADE80")),

		badge:      lipgloss.NewStyle().Foreground(fg).Bold(true),
		stateLabel: lipgloss.NewStyle().Foreground(muted),
		blobActive: lipgloss.NewStyle().Foreground(accent),
		blobCalm:   lipgloss.NewStyle().Foreground(accent).Faint(true),
		blobIdle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#333333")),

		caption:       lipgloss.NewStyle().Foreground(fg),
		captionLow:    lipgloss.NewStyle().Foreground(c(t.LowConfidence, "#A0A0A0")).Underline(true),
		captionBubble: lipgloss.NewStyle().Background(lipgloss.Color("#111111")).Padding(0, 2),

		ccOn:      btn.Background(c(t.Buttons.CCOn, "#2F2F2F")).Foreground(fg),
		ccOff:     btn.Background(c(t.Buttons.CCOff, "#1E1E1E")).Foreground(muted),
		pauseBtn:  btn.Background(c(t.Buttons.Pause, "#FFFFFF")).Foreground(lipgloss.Color("#000000")),
		exitBtn:   btn.Background(c(t.Buttons.Exit, "#EF4444")).Foreground(fg),
		saveBtn:   btn.Background(surface).Foreground(fg),
		modal:     lipgloss.NewStyle().Background(c(t.Modal, "#546575")).Foreground(fg).Padding(1, 3).Width(44),
		modalItem: lipgloss.NewStyle().Foreground(fg),
		modalSel:  lipgloss.NewStyle().Foreground(fg).Bold(true),
	}
}
