package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flap/internal/config"
	"github.com/vovakirdan/flap/internal/core"
	"github.com/vovakirdan/flap/internal/game"
	"github.com/vovakirdan/flap/internal/logging"
	"github.com/vovakirdan/flap/internal/storage"
)

type fakeRecorder struct {
	runs []storage.Run
	err  error
}

func (r *fakeRecorder) SaveRun(run storage.Run) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.runs = append(r.runs, run)
	return int64(len(r.runs)), nil
}

type recordingSink struct {
	calls []string
}

func (s *recordingSink) Unlock()       { s.calls = append(s.calls, "unlock") }
func (s *recordingSink) StartMusic()   { s.calls = append(s.calls, "music") }
func (s *recordingSink) StopMusic()    { s.calls = append(s.calls, "stop-music") }
func (s *recordingSink) PlayGameOver() { s.calls = append(s.calls, "game-over") }
func (s *recordingSink) StopGameOver() { s.calls = append(s.calls, "stop-game-over") }

func (s *recordingSink) has(call string) bool {
	for _, c := range s.calls {
		if c == call {
			return true
		}
	}
	return false
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	logger := logging.Discard()
	if opts.Session == nil {
		session, err := game.NewSession(game.Options{
			Config: config.Default(),
			Seed:   1,
			Logger: logger,
		})
		if err != nil {
			t.Fatalf("NewSession failed: %v", err)
		}
		opts.Session = session
	}
	if opts.Runtime.ScreenW == 0 {
		opts.Runtime = core.RuntimeConfig{ScreenW: 100, ScreenH: 43, TickRate: 60}
	}
	opts.Logger = logger
	return NewModel(opts)
}

// send feeds msg to m and returns the updated model and command.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return updated, cmd
}

var spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func TestModelActivateStartsRun(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = send(t, m, spaceKey)
	if m.Session().State() != game.StateIdle {
		t.Fatal("input should only apply on the next tick")
	}

	m, cmd := send(t, m, TickMsg{})
	if m.Session().State() != game.StateRunning {
		t.Errorf("state = %v, expected running", m.Session().State())
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
}

func TestModelInputClearedAfterTick(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = send(t, m, spaceKey)
	m, _ = send(t, m, TickMsg{})
	frame := m.Session().Frame()
	vy := m.Session().Entity().Velocity

	m, _ = send(t, m, TickMsg{})
	if m.Session().Frame() != frame+1 {
		t.Errorf("frame = %d, expected %d", m.Session().Frame(), frame+1)
	}
	if m.Session().Entity().Velocity <= vy {
		t.Error("without input the entity should keep falling faster")
	}
}

func TestModelMouseActivates(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = send(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = send(t, m, TickMsg{})

	if m.Session().State() != game.StateRunning {
		t.Errorf("state = %v, expected running after click", m.Session().State())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, Options{})

	m, cmd := send(t, m, runeKey("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestModelQuitEndsRunningGame(t *testing.T) {
	sink := &recordingSink{}
	m := newTestModel(t, Options{Audio: sink})

	m, _ = send(t, m, spaceKey)
	m, _ = send(t, m, TickMsg{})
	if m.Session().State() != game.StateRunning {
		t.Fatal("run should be in progress")
	}

	m, _ = send(t, m, runeKey("q"))
	if m.Session().State() != game.StateEnded {
		t.Errorf("state = %v after quit, expected ended", m.Session().State())
	}
	if !sink.has("stop-music") {
		t.Errorf("quit should stop the music, got %v", sink.calls)
	}
	if sink.has("game-over") {
		t.Error("quitting should not play the game-over sound")
	}
}

func TestModelAudioFollowsRun(t *testing.T) {
	sink := &recordingSink{}
	m := newTestModel(t, Options{Audio: sink})

	m, _ = send(t, m, TickMsg{})
	if len(sink.calls) != 0 {
		t.Errorf("idle tick should not touch audio, got %v", sink.calls)
	}

	m, _ = send(t, m, spaceKey)
	m, _ = send(t, m, TickMsg{})
	if !sink.has("unlock") || !sink.has("music") {
		t.Errorf("start should unlock audio and start music, got %v", sink.calls)
	}

	// Fall until the run ends
	for i := 0; i < 1000 && m.Session().State() == game.StateRunning; i++ {
		m, _ = send(t, m, TickMsg{})
	}
	if !sink.has("stop-music") || !sink.has("game-over") {
		t.Errorf("end should stop music and play game over, got %v", sink.calls)
	}
}

func TestModelRecordRun(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel(t, Options{Runs: rec, Source: "terminal"})

	m.recordRun(game.FrameResult{Ended: true, Score: 3, Frame: 420, Cause: game.EndCollision})

	if len(rec.runs) != 1 {
		t.Fatalf("recorded %d runs, expected 1", len(rec.runs))
	}
	got := rec.runs[0]
	if got.Score != 3 || got.Frames != 420 || got.Cause != "collision" || got.Source != "terminal" {
		t.Errorf("recorded %+v", got)
	}
}

func TestModelSkipsEmptyRun(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel(t, Options{Runs: rec})

	m, _ = send(t, m, spaceKey)
	for i := 0; i < 1000 && m.Session().State() != game.StateEnded; i++ {
		m, _ = send(t, m, TickMsg{})
	}

	if m.Session().State() != game.StateEnded {
		t.Fatal("unattended run should end")
	}
	if len(rec.runs) != 0 {
		t.Errorf("zero-score run should not be recorded, got %d", len(rec.runs))
	}
}

func TestModelRecordRunErrorIsTolerated(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	m := newTestModel(t, Options{Runs: rec})

	// Must not panic
	m.recordRun(game.FrameResult{Ended: true, Score: 1})
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})

	if m.screen.Width() != 60 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, expected 60x29", m.screen.Width(), m.screen.Height())
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, Options{})

	view := m.View()
	for _, want := range []string{"F L A P", "restart", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, Options{ScreenshotDir: dir})

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("screenshot should not return a command")
	}
	if m.Session().State() != game.StateIdle {
		t.Error("screenshot should not act as game input")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("found %d files, expected 1", len(entries))
	}

	name := entries[0].Name()
	if !strings.HasPrefix(name, "flap_") || !strings.HasSuffix(name, ".txt") {
		t.Errorf("screenshot name = %q", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "F L A P") {
		t.Error("screenshot should contain the idle screen")
	}
}
