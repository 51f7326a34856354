package display

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every binding; the help bar shows the ones that apply to
// the current screen.
type keyMap struct {
	Voice    key.Binding
	Pause    key.Binding
	Captions key.Binding
	Save     key.Binding
	Exit     key.Binding
	Drawer   key.Binding
	NewChat  key.Binding
	Help     key.Binding
	Quit     key.Binding

	ThumbsUp   key.Binding
	ThumbsDown key.Binding
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Submit     key.Binding
	Skip       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Voice:    key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "voice mode")),
		Pause:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "pause/resume")),
		Captions: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "captions")),
		Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Exit:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "end")),
		Drawer:   key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "history")),
		NewChat:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new chat")),
		Help:     key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

		ThumbsUp:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "thumbs up")),
		ThumbsDown: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "thumbs down")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Skip:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "skip")),
	}
}

// screenKeys adapts the key map to help.KeyMap for one screen.
type screenKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (s screenKeys) ShortHelp() []key.Binding  { return s.short }
func (s screenKeys) FullHelp() [][]key.Binding { return s.full }

func (k keyMap) idle() screenKeys {
	return screenKeys{
		short: []key.Binding{k.Voice, k.Drawer, k.Help, k.Quit},
		full: [][]key.Binding{
			{k.Voice, k.NewChat, k.Drawer},
			{k.Help, k.Quit},
		},
	}
}

func (k keyMap) voice() screenKeys {
	b := []key.Binding{k.Pause, k.Captions, k.Save, k.Exit, k.Quit}
	return screenKeys{short: b, full: [][]key.Binding{b}}
}

func (k keyMap) rating() screenKeys {
	b := []key.Binding{k.ThumbsUp, k.ThumbsDown, k.Skip}
	return screenKeys{short: b, full: [][]key.Binding{b}}
}

func (k keyMap) details() screenKeys {
	b := []key.Binding{k.Up, k.Down, k.Toggle, k.Submit, k.Skip}
	return screenKeys{short: b, full: [][]key.Binding{b}}
}
