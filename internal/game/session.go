// Package game implements the side-scrolling obstacle game: a falling
// entity kept aloft by jumps, a stream of gapped obstacles, scoring and
// the run state machine. It knows nothing about terminals or windows;
// platforms feed it input frames and draw it through a Renderer.
package game

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flap/internal/config"
	"github.com/vovakirdan/flap/internal/core"
)

// State is the run state of a session.
type State int

const (
	StateIdle    State = iota // Before the first run
	StateRunning              // A run is in progress
	StateEnded                // The last run is over
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// EndCause tells why a run ended.
type EndCause int

const (
	EndNone EndCause = iota
	EndOutOfBounds
	EndCollision
	EndManual
)

// String returns a human-readable cause.
func (c EndCause) String() string {
	switch c {
	case EndOutOfBounds:
		return "out of bounds"
	case EndCollision:
		return "collision"
	case EndManual:
		return "manual"
	default:
		return "none"
	}
}

// FrameResult reports what happened during one Advance call.
type FrameResult struct {
	State   State
	Score   int
	Best    int
	Frame   int      // Frames elapsed in the current run
	Started bool     // A run started this frame
	Passed  int      // Obstacles scored this frame
	Ended   bool     // The run ended this frame
	Cause   EndCause // Why it ended, if Ended
	NewBest bool     // The ended run set a new best
}

// Options configures a new Session.
type Options struct {
	Config config.Config
	Seed   int64       // RNG seed for obstacle placement
	Store  BestStore   // Best score persistence; nil keeps it in memory
	Logger *log.Logger // Defaults to log.Default()
}

// Session owns one game: entity, obstacles, score and run state.
// It is not safe for concurrent use.
type Session struct {
	cfg        config.Config
	state      State
	frame      int
	entity     *Entity
	stream     *Stream
	score      *Score
	difficulty *config.DifficultyManager
	logger     *log.Logger

	lastNewBest bool
	runs        int
}

// NewSession creates a session in the Idle state. The best score is read
// from the store once, here. The config is validated first.
func NewSession(opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	return &Session{
		cfg:        cfg,
		state:      StateIdle,
		entity:     NewEntity(cfg.Entity, cfg.Viewport.Height),
		stream:     NewStream(cfg.Obstacles, cfg.Viewport, opts.Seed),
		score:      NewScore(opts.Store, cfg.Storage.BestKey, logger),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		logger:     logger,
	}, nil
}

// Start begins a new run from Idle or Ended. It is a no-op while Running.
func (s *Session) Start() {
	if s.state == StateRunning {
		return
	}

	s.state = StateRunning
	s.frame = 0
	s.lastNewBest = false
	s.runs++
	s.score.Reset()
	s.entity.Reset()
	s.stream.Clear()

	s.logger.Debug("run started", "run", s.runs, "best", s.score.Best())
}

// End stops the current run, as when the player quits mid-run. It is a
// no-op unless Running, so a run is finalized exactly once; the result
// reports Ended only when this call ended it.
func (s *Session) End() FrameResult {
	var res FrameResult
	if s.state == StateRunning {
		res.NewBest = s.end(EndManual)
		res.Ended = true
		res.Cause = EndManual
	}

	res.State = s.state
	res.Score = s.score.Current()
	res.Best = s.score.Best()
	res.Frame = s.frame
	return res
}

// end finalizes the run and returns whether a new best was set.
func (s *Session) end(cause EndCause) bool {
	if s.state != StateRunning {
		return false
	}

	s.state = StateEnded
	s.lastNewBest = s.score.Finalize()

	s.logger.Info("run ended",
		"run", s.runs,
		"score", s.score.Current(),
		"best", s.score.Best(),
		"frames", s.frame,
		"cause", cause,
	)
	return s.lastNewBest
}

// Activate is the primary action: jump while Running, otherwise start a run.
func (s *Session) Activate() {
	if s.state == StateRunning {
		s.entity.Jump()
		return
	}
	s.Start()
}

// Restart starts a new run. It only acts in the Ended state.
func (s *Session) Restart() {
	if s.state != StateEnded {
		return
	}
	s.Start()
}

// Advance applies one input frame and, while Running, simulates one tick.
// Within a tick: the frame counter increments, the entity moves, obstacles
// spawn and move, passed obstacles score, off-screen obstacles are removed
// and every live obstacle is tested for collision.
func (s *Session) Advance(in core.InputFrame) FrameResult {
	var res FrameResult
	wasRunning := s.state == StateRunning

	switch {
	case in.Empty():
	case in.Has(core.ActionRestart) && s.state == StateEnded:
		s.Restart()
	case in.Has(core.ActionActivate):
		s.Activate()
	}
	res.Started = !wasRunning && s.state == StateRunning

	if s.state == StateRunning {
		s.step(&res)
	}

	res.State = s.state
	res.Score = s.score.Current()
	res.Best = s.score.Best()
	res.Frame = s.frame
	return res
}

// step simulates one tick of a running game.
func (s *Session) step(res *FrameResult) {
	s.frame++

	hitBottom := s.entity.Update()

	s.stream.Tick(s.frame)
	s.stream.Advance(s.Speed())

	box := s.entity.Box()
	res.Passed = s.stream.ScoreCheck(box.CenterX())
	for i := 0; i < res.Passed; i++ {
		s.score.RecordPass()
	}
	s.stream.Reap()

	collided := false
	for _, o := range s.stream.Obstacles() {
		if Collides(box, o, s.stream.Width(), s.cfg.Collision.Margin) {
			collided = true
		}
	}

	cause := EndNone
	switch {
	case hitBottom:
		cause = EndOutOfBounds
	case collided:
		cause = EndCollision
	}
	if cause != EndNone {
		res.NewBest = s.end(cause)
		res.Ended = true
		res.Cause = cause
	}
}

// Speed returns the current obstacle speed after difficulty scaling.
func (s *Session) Speed() float64 {
	return s.difficulty.Speed(s.cfg.Obstacles.Speed, s.score.Current(), s.frame)
}

// State returns the run state.
func (s *Session) State() State { return s.state }

// Frame returns the number of ticks simulated in the current run.
func (s *Session) Frame() int { return s.frame }

// Score returns the current run's score.
func (s *Session) Score() int { return s.score.Current() }

// Best returns the best score.
func (s *Session) Best() int { return s.score.Best() }

// NewBest reports whether the last ended run set a new best.
func (s *Session) NewBest() bool { return s.lastNewBest }

// Entity returns the entity. Callers must not mutate it.
func (s *Session) Entity() *Entity { return s.entity }

// Obstacles returns the live obstacles in spawn order.
func (s *Session) Obstacles() []Obstacle { return s.stream.Obstacles() }

// Config returns the game configuration.
func (s *Session) Config() config.Config { return s.cfg }
