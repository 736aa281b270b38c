package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flap/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the stats sidebar
	sidebarWidth       = 22  // Width of stats sidebar
	maxRuns            = 100 // Max runs to load
)

// HistoryView selects which runs the history screen lists.
type HistoryView int

const (
	HistoryTop HistoryView = iota
	HistoryRecent
)

// String returns the tab title.
func (v HistoryView) String() string {
	if v == HistoryRecent {
		return "Recent"
	}
	return "Top"
}

// HistorySource provides runs and aggregate stats.
type HistorySource interface {
	TopRuns(limit int) ([]storage.Run, error)
	RecentRuns(limit int) ([]storage.Run, error)
	GetStats() (*storage.Stats, error)
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Switch, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "top/recent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the run history screen.
type HistoryModel struct {
	source      HistorySource
	view        HistoryView
	runs        []storage.Run
	stats       *storage.Stats
	err         error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a history model. source may be nil.
func NewHistoryModel(source HistorySource, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		source:      source,
		view:        HistoryTop,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Frames", Width: 8},
		{Title: "End", Width: 14},
		{Title: "Where", Width: 7},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, tabs and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches runs for the current view and the stats.
func (m *HistoryModel) load() {
	m.runs, m.stats, m.err = nil, nil, nil
	if m.source == nil {
		m.updateTableRows()
		return
	}

	var err error
	switch m.view {
	case HistoryRecent:
		m.runs, err = m.source.RecentRuns(maxRuns)
	default:
		m.runs, err = m.source.TopRuns(maxRuns)
	}
	if err != nil {
		m.runs = nil
		m.err = err
	}

	if stats, err := m.source.GetStats(); err == nil {
		m.stats = stats
	} else if m.err == nil {
		m.err = err
	}

	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Frames),
			r.Cause,
			r.Source,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Switch):
			if m.view == HistoryTop {
				m.view = HistoryRecent
			} else {
				m.view = HistoryTop
			}
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("RUN HISTORY - %s", m.view)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(tableRendered)
		b.WriteString("\n")
		b.WriteString(m.statsLine())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders the Top/Recent switch.
func (m HistoryModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	views := []HistoryView{HistoryTop, HistoryRecent}
	tabs := make([]string, len(views))
	for i, v := range views {
		if v == m.view {
			tabs[i] = activeTabStyle.Render(v.String())
		} else {
			tabs[i] = tabStyle.Render(" " + v.String() + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderSidebar renders the stats panel.
func (m HistoryModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Stats\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	if m.stats == nil {
		sb.WriteString("n/a")
		return sidebarStyle.Render(sb.String())
	}

	fmt.Fprintf(&sb, "Runs:   %d\n", m.stats.Runs)
	fmt.Fprintf(&sb, "Best:   %d\n", m.stats.HighScore)
	fmt.Fprintf(&sb, "Avg:    %.1f\n", m.stats.AvgScore)
	fmt.Fprintf(&sb, "Pipes:  %d\n", m.stats.TotalScore)
	fmt.Fprintf(&sb, "Frames: %d", m.stats.TotalFrames)
	if !m.stats.LastPlayed.IsZero() {
		fmt.Fprintf(&sb, "\nLast:   %s", m.stats.LastPlayed.Format("Jan 02"))
	}
	return sidebarStyle.Render(sb.String())
}

// statsLine is the one-line stats summary for narrow terminals.
func (m HistoryModel) statsLine() string {
	if m.stats == nil {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return style.Render(fmt.Sprintf("Runs: %d  Best: %d  Avg: %.1f",
		m.stats.Runs, m.stats.HighScore, m.stats.AvgScore))
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		if m.err != nil {
			return emptyStyle.Render("Could not load runs:\n" + m.err.Error())
		}
		return emptyStyle.Render("No runs recorded yet.\nPlay a game to fill the history!")
	}

	return m.table.View()
}

// CurrentView returns the selected history view.
func (m HistoryModel) CurrentView() HistoryView {
	return m.view
}

// Runs returns the loaded runs.
func (m HistoryModel) Runs() []storage.Run {
	return m.runs
}

// centerText pads text so it is centered within width.
func centerText(text string, width int) string {
	if lipgloss.Width(text) >= width {
		return text
	}
	padding := (width - lipgloss.Width(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// RunHistory runs the history screen until the user quits.
func RunHistory(source HistorySource, width, height int) error {
	model := NewHistoryModel(source, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
