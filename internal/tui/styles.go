package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for the task browser.
type Styles struct {
	Title        lipgloss.Style
	Selected     lipgloss.Style
	Normal       lipgloss.Style
	Dimmed       lipgloss.Style
	StatusTodo   lipgloss.Style
	StatusActive lipgloss.Style
	StatusDone   lipgloss.Style
	PriorityHigh lipgloss.Style
	Footer       lipgloss.Style
	Help         lipgloss.Style
}

// NewStyles returns the default styles.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")),
		Normal: lipgloss.NewStyle(),
		Dimmed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		StatusTodo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		StatusActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")),
		StatusDone: lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")),
		PriorityHigh: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1),
	}
}
