package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flap/internal/assets"
	"github.com/vovakirdan/flap/internal/audio"
	"github.com/vovakirdan/flap/internal/core"
	"github.com/vovakirdan/flap/internal/game"
	"github.com/vovakirdan/flap/internal/storage"
)

// RunRecorder stores finished runs.
type RunRecorder interface {
	SaveRun(run storage.Run) (int64, error)
}

// Options configures a game model.
type Options struct {
	Session       *game.Session
	Sprites       *assets.Loader // Optional
	Audio         audio.Sink     // Optional
	Runs          RunRecorder    // Optional
	Source        string         // Recorded with each run
	Runtime       core.RuntimeConfig
	ScreenshotDir string // Defaults to ~/.flap/screenshots
	Logger        *log.Logger
}

// Model is the Bubble Tea model that plays one game session.
type Model struct {
	session    *game.Session
	screen     *core.Screen
	canvas     *Canvas
	audio      audio.Sink
	runs       RunRecorder
	source     string
	tickRate   int
	keys       GameKeyMap
	help       help.Model
	inputFrame core.InputFrame
	shotDir    string
	logger     *log.Logger
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given options.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	sink := opts.Audio
	if sink == nil {
		sink = audio.Nop{}
	}

	rt := opts.Runtime
	screen := core.NewScreen(rt.ScreenW, max(rt.ScreenH-helpRows, 1))
	h := help.New()
	h.Width = rt.ScreenW

	return Model{
		session:    opts.Session,
		screen:     screen,
		canvas:     NewCanvas(screen, opts.Session.Config().Viewport, opts.Sprites),
		audio:      sink,
		runs:       opts.Runs,
		source:     opts.Source,
		tickRate:   rt.TickRate,
		keys:       DefaultGameKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		shotDir:    opts.ScreenshotDir,
		logger:     logger,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.inputFrame.Set(MapMouse(msg))
		return m, nil

	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, screenshot := m.keys.MapKey(msg)

	if screenshot {
		m.saveScreenshot()
		return m, nil
	}

	if action == core.ActionQuit {
		m.endRun()
		m.quitting = true
		return m, tea.Quit
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleTick runs one frame: input, simulation, audio cues, persistence.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// First interaction unlocks audio
	if m.inputFrame.Has(core.ActionActivate) || m.inputFrame.Has(core.ActionRestart) {
		m.audio.Unlock()
	}

	res := m.session.Advance(m.inputFrame)
	audio.Follow(m.audio, res)

	if res.Ended {
		m.recordRun(res)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.tickRate)
}

// endRun ends a run in progress so its score still counts.
func (m Model) endRun() {
	res := m.session.End()
	if !res.Ended {
		return
	}
	m.audio.StopMusic()
	m.recordRun(res)
}

// recordRun adds a finished run to the history. Empty runs are skipped.
func (m Model) recordRun(res game.FrameResult) {
	if m.runs == nil || res.Score <= 0 {
		return
	}

	run := storage.Run{
		Score:  res.Score,
		Frames: res.Frame,
		Cause:  res.Cause.String(),
		Source: m.source,
	}
	if _, err := m.runs.SaveRun(run); err != nil {
		m.logger.Warn("could not record run", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.session.Draw(m.canvas)

	dir := m.shotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".flap", "screenshots")
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("flap_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Draw(m.canvas)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Session returns the game session.
func (m Model) Session() *game.Session {
	return m.session
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks activate
	)

	_, err := p.Run()
	return err
}
