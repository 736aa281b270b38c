// Package desktop runs the game in a native window with Ebitengine.
// The window shows the fixed logical viewport; Ebitengine scales it to the
// window size with letterboxing.
package desktop

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

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

// Options configures the window.
type Options struct {
	Session *game.Session
	Sprites *assets.Loader     // Optional
	Audio   audio.Sink         // Optional
	Runs    RunRecorder        // Optional
	Source  string             // Recorded with each run
	Runtime core.RuntimeConfig // ScreenW/ScreenH set the initial window size in pixels
	Logger  *log.Logger
}

// keyBindings maps keyboard keys to actions.
var keyBindings = []struct {
	key    ebiten.Key
	action core.Action
}{
	{ebiten.KeySpace, core.ActionActivate},
	{ebiten.KeyArrowUp, core.ActionActivate},
	{ebiten.KeyW, core.ActionActivate},
	{ebiten.KeyR, core.ActionRestart},
	{ebiten.KeyEscape, core.ActionQuit},
	{ebiten.KeyQ, core.ActionQuit},
}

// Game implements ebiten.Game for one session.
type Game struct {
	session  *game.Session
	renderer *renderer
	audio    audio.Sink
	runs     RunRecorder
	source   string
	input    core.InputFrame
	logger   *log.Logger
}

var _ ebiten.Game = (*Game)(nil)

// New creates the window game.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	sink := opts.Audio
	if sink == nil {
		sink = audio.Nop{}
	}

	return &Game{
		session:  opts.Session,
		renderer: newRenderer(opts.Session.Config().Viewport, opts.Sprites),
		audio:    sink,
		runs:     opts.Runs,
		source:   opts.Source,
		input:    core.NewInputFrame(),
		logger:   logger,
	}
}

// Update polls input and advances the session by one tick.
func (g *Game) Update() error {
	g.pollInput()

	if g.input.Has(core.ActionQuit) {
		// A run in progress still counts
		if res := g.session.End(); res.Ended {
			g.audio.StopMusic()
			g.recordRun(res)
		}
		return ebiten.Termination
	}

	// First interaction unlocks audio
	if g.input.Has(core.ActionActivate) || g.input.Has(core.ActionRestart) {
		g.audio.Unlock()
	}

	res := g.session.Advance(g.input)
	audio.Follow(g.audio, res)

	if res.Ended {
		g.recordRun(res)
	}

	g.input.Clear()
	return nil
}

// pollInput collects the presses that happened since the last tick.
// Clicks and touches count as Activate.
func (g *Game) pollInput() {
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			g.input.Set(b.action)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.input.Set(core.ActionActivate)
	}
	if len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		g.input.Set(core.ActionActivate)
	}
}

// recordRun adds a finished run to the history. Empty runs are skipped.
func (g *Game) recordRun(res game.FrameResult) {
	if g.runs == nil || res.Score <= 0 {
		return
	}

	run := storage.Run{
		Score:  res.Score,
		Frames: res.Frame,
		Cause:  res.Cause.String(),
		Source: g.source,
	}
	if _, err := g.runs.SaveRun(run); err != nil {
		g.logger.Warn("could not record run", "err", err)
	}
}

// Draw renders the session onto the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.target(screen)
	g.session.Draw(g.renderer)
}

// Layout returns the fixed logical viewport size.
func (g *Game) Layout(_, _ int) (int, int) {
	vp := g.session.Config().Viewport
	return int(vp.Width), int(vp.Height)
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	g := New(opts)

	rt := opts.Runtime
	vp := opts.Session.Config().Viewport
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		rt.ScreenW, rt.ScreenH = int(vp.Width), int(vp.Height)
	}
	if rt.TickRate <= 0 {
		rt.TickRate = 60
	}

	ebiten.SetWindowSize(rt.ScreenW, rt.ScreenH)
	ebiten.SetWindowTitle("Flap")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(rt.TickRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
