package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flap/internal/config"
)

// MenuChoice is what the user picked in the title menu.
type MenuChoice int

const (
	MenuNone MenuChoice = iota
	MenuPlay
	MenuDifficulty
	MenuHistory
	MenuQuit
)

// MenuItem is one selectable line of the title menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

// presetCycle is the order the difficulty item steps through.
var presetCycle = []config.DifficultyPreset{
	config.DifficultyFixed,
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
}

// MenuKeyMap defines the key bindings for the title menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Left   key.Binding
	Right  key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Select: key.NewBinding(key.WithKeys("enter", " ")),
		Left:   key.NewBinding(key.WithKeys("left", "h")),
		Right:  key.NewBinding(key.WithKeys("right", "l")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// MenuModel is the Bubble Tea model for the title menu.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	best     int
	preset   config.DifficultyPreset
	keys     MenuKeyMap
	quitting bool
	selected MenuChoice
}

// NewMenuModel creates a new menu model.
func NewMenuModel(width, height, best int, preset config.DifficultyPreset) MenuModel {
	if preset == "" {
		preset = config.DifficultyFixed
	}

	return MenuModel{
		items: []MenuItem{
			{Choice: MenuPlay, Title: "Play"},
			{Choice: MenuDifficulty, Title: "Difficulty"},
			{Choice: MenuHistory, Title: "Run history"},
			{Choice: MenuQuit, Title: "Quit"},
		},
		width:  width,
		height: height,
		best:   best,
		preset: preset,
		keys:   DefaultMenuKeyMap(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.items[m.cursor]

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Left):
		if item.Choice == MenuDifficulty {
			m.cyclePreset(-1)
		}

	case key.Matches(msg, m.keys.Right):
		if item.Choice == MenuDifficulty {
			m.cyclePreset(1)
		}

	case key.Matches(msg, m.keys.Select):
		switch item.Choice {
		case MenuDifficulty:
			m.cyclePreset(1)
		case MenuQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.selected = item.Choice
			return m, tea.Quit // Exit menu to run the choice
		}
	}

	return m, nil
}

// cyclePreset steps the difficulty preset by delta, wrapping around.
func (m *MenuModel) cyclePreset(delta int) {
	idx := 0
	for i, p := range presetCycle {
		if p == m.preset {
			idx = i
			break
		}
	}
	n := len(presetCycle)
	m.preset = presetCycle[((idx+delta)%n+n)%n]
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  F L A P  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("Best: %d", m.best)), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = activeStyle
		}

		title := item.Title
		if item.Choice == MenuDifficulty {
			title = fmt.Sprintf("%s: < %s >", item.Title, m.preset)
		}

		b.WriteString(centerText(style.Render(cursor+title), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Left/Right: Difficulty  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen action, or MenuNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// Preset returns the difficulty preset shown in the menu.
func (m MenuModel) Preset() config.DifficultyPreset {
	return m.preset
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice        MenuChoice
	Preset        config.DifficultyPreset
	Width, Height int
}

// RunMenu runs the title menu and returns the selection.
func RunMenu(width, height, best int, preset config.DifficultyPreset) (MenuResult, error) {
	model := NewMenuModel(width, height, best, preset)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: MenuQuit, Preset: preset, Width: width, Height: height}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() || m.Selected() == MenuNone {
		return MenuResult{Choice: MenuQuit, Preset: preset, Width: width, Height: height}, nil
	}

	return MenuResult{
		Choice: m.Selected(),
		Preset: m.Preset(),
		Width:  m.width,
		Height: m.height,
	}, nil
}
