// Package tui implements the interactive task browser.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/trellis/internal/core/query"
	"github.com/hay-kot/trellis/internal/core/task"
	"github.com/hay-kot/trellis/internal/store/jsonfile"
	"github.com/hay-kot/trellis/internal/trellis"
)

func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

var sortCycle = []query.Order{
	query.OrderDefault,
	query.OrderDueDate,
	query.OrderPriority,
	query.OrderCreatedAt,
}

// Model is the root bubbletea model for the task browser.
type Model struct {
	app     *trellis.App
	watcher *jsonfile.Watcher
	keys    KeyMap
	styles  *Styles

	tasks    []task.Task
	visible  []task.Task
	projects map[string]string // id -> name

	cursor  int
	scrollY int
	width   int
	height  int

	showCompleted bool
	sortIdx       int
	searchInput   textinput.Model
	searching     bool
	showHelp      bool

	err error
}

// New creates the task browser. The watcher may be nil; when present the
// model reloads whenever a data file changes on disk.
func New(app *trellis.App, watcher *jsonfile.Watcher) *Model {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	return &Model{
		app:         app,
		watcher:     watcher,
		keys:        DefaultKeyMap(),
		styles:      NewStyles(),
		projects:    map[string]string{},
		searchInput: search,
	}
}

type tasksLoadedMsg struct {
	tasks    []task.Task
	projects map[string]string
	err      error
}

type fileChangedMsg struct{}

func (m *Model) loadTasks() tea.Msg {
	ctx := context.Background()

	tasks, err := m.app.Tasks.List(ctx)
	if err != nil {
		return tasksLoadedMsg{err: err}
	}

	projects := map[string]string{}
	if list, err := m.app.Projects.List(ctx); err == nil {
		for _, p := range list {
			projects[p.ID] = p.Name
		}
	}

	return tasksLoadedMsg{tasks: tasks, projects: projects}
}

func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-m.watcher.Events(); !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// Init loads the task collection and starts watching for file changes.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadTasks, m.waitForChange())
}

// Update handles all messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.tasks = msg.tasks
		m.projects = msg.projects
		m.applyFilters()
		return m, nil

	case fileChangedMsg:
		return m, tea.Batch(m.loadTasks, m.waitForChange())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		case "esc":
			m.searching = false
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			m.applyFilters()
			return m, nil
		}

		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.applyFilters()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.cursor = clamp(m.cursor-1, 0, maxIndex(m.visible))
		m.scrollIntoView()

	case key.Matches(msg, m.keys.Down):
		m.cursor = clamp(m.cursor+1, 0, maxIndex(m.visible))
		m.scrollIntoView()

	case key.Matches(msg, m.keys.CycleStatus):
		return m, m.cycleStatus()

	case key.Matches(msg, m.keys.ToggleDone):
		m.showCompleted = !m.showCompleted
		m.applyFilters()

	case key.Matches(msg, m.keys.CycleSort):
		m.sortIdx = (m.sortIdx + 1) % len(sortCycle)
		m.applyFilters()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.ClearSearch):
		m.searchInput.SetValue("")
		m.applyFilters()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadTasks

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	}

	return m, nil
}

// cycleStatus advances the selected task To Do -> In Progress -> Completed
// -> To Do and persists the change.
func (m *Model) cycleStatus() tea.Cmd {
	if m.cursor >= len(m.visible) {
		return nil
	}
	selected := m.visible[m.cursor]

	var next task.Status
	switch selected.Status {
	case task.StatusTodo:
		next = task.StatusInProgress
	case task.StatusInProgress:
		next = task.StatusCompleted
	default:
		next = task.StatusTodo
	}

	return func() tea.Msg {
		ctx := context.Background()
		_, err := m.app.Tasks.Update(ctx, selected.ID, task.Patch{Status: &next})
		if err != nil {
			return tasksLoadedMsg{err: err}
		}
		return m.loadTasks()
	}
}

func (m *Model) applyFilters() {
	criteria := query.Criteria{SearchText: m.searchInput.Value()}

	filtered := query.Filter(m.tasks, criteria, time.Now())
	if !m.showCompleted {
		open := []task.Task{}
		for _, t := range filtered {
			if !t.Completed() {
				open = append(open, t)
			}
		}
		filtered = open
	}

	m.visible = query.Sort(filtered, sortCycle[m.sortIdx])
	m.cursor = clamp(m.cursor, 0, maxIndex(m.visible))
	m.scrollIntoView()
}

func maxIndex(tasks []task.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	return len(tasks) - 1
}

func (m *Model) listHeight() int {
	// title + search + footer + help line
	h := m.height - 4
	if h < 1 {
		h = 10
	}
	return h
}

func (m *Model) scrollIntoView() {
	h := m.listHeight()
	if m.cursor < m.scrollY {
		m.scrollY = m.cursor
	}
	if m.cursor >= m.scrollY+h {
		m.scrollY = m.cursor - h + 1
	}
}

// View renders the browser.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Trellis") + "\n")

	if m.err != nil {
		b.WriteString(m.styles.PriorityHigh.Render("error: "+m.err.Error()) + "\n")
	}

	if m.searching || m.searchInput.Value() != "" {
		b.WriteString(m.searchInput.View() + "\n")
	}

	if m.showHelp {
		b.WriteString(m.helpView())
		return b.String()
	}

	h := m.listHeight()
	end := clamp(m.scrollY+h, 0, len(m.visible))
	for i := m.scrollY; i < end; i++ {
		b.WriteString(m.renderRow(i) + "\n")
	}
	if len(m.visible) == 0 {
		b.WriteString(m.styles.Dimmed.Render("  no tasks") + "\n")
	}

	b.WriteString(m.footerView())
	return b.String()
}

func (m *Model) renderRow(i int) string {
	t := m.visible[i]

	var statusStyle lipgloss.Style
	var marker string
	switch t.Status {
	case task.StatusCompleted:
		statusStyle, marker = m.styles.StatusDone, "[x]"
	case task.StatusInProgress:
		statusStyle, marker = m.styles.StatusActive, "[~]"
	default:
		statusStyle, marker = m.styles.StatusTodo, "[ ]"
	}

	title := t.Title
	if t.Priority == task.PriorityHigh {
		title = m.styles.PriorityHigh.Render(title)
	}

	meta := []string{}
	if name, ok := m.projects[t.ProjectID]; ok && name != "" {
		meta = append(meta, name)
	}
	if t.DueDate != "" {
		meta = append(meta, "due "+t.DueDate)
	}
	if len(t.Tags) > 0 {
		meta = append(meta, strings.Join(t.Tags, ","))
	}

	line := fmt.Sprintf("%s %s", statusStyle.Render(marker), title)
	if len(meta) > 0 {
		line += " " + m.styles.Dimmed.Render("("+strings.Join(meta, " · ")+")")
	}

	if i == m.cursor {
		return m.styles.Selected.Render("> " + line)
	}
	return "  " + line
}

func (m *Model) footerView() string {
	stats := query.ComputeStats(m.tasks)
	return m.styles.Footer.Render(fmt.Sprintf(
		"%d/%d done · %.0f%% · score %.0f · sort: %s · ? for help",
		stats.CompletedCount, stats.TotalCount,
		stats.CompletionRate,
		query.ProductivityScore(m.tasks),
		sortCycle[m.sortIdx],
	))
}

func (m *Model) helpView() string {
	rows := []string{
		"↑/k, ↓/j    move",
		"space       cycle status",
		"c           toggle completed tasks",
		"s           cycle sort order",
		"/           search",
		"esc         clear search",
		"r           refresh from disk",
		"q           quit",
	}
	return m.styles.Help.Render(strings.Join(rows, "\n"))
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, app *trellis.App, watcher *jsonfile.Watcher) error {
	p := tea.NewProgram(New(app, watcher), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
