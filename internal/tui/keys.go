package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the task browser keybindings.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	CycleStatus key.Binding
	ToggleDone  key.Binding
	CycleSort   key.Binding
	Search      key.Binding
	ClearSearch key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		CycleStatus: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "cycle status"),
		),
		ToggleDone: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle completed"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle sort"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear search"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
