package game

import (
	"math/rand"

	"github.com/vovakirdan/flap/internal/config"
	"github.com/vovakirdan/flap/internal/core"
)

// Obstacle is a pair of blocking columns separated by a vertical gap.
type Obstacle struct {
	X               float64 // Left edge
	GapTopHeight    float64 // Height of the top segment
	GapBottomY      float64 // Top of the bottom segment
	GapBottomHeight float64 // Height of the bottom segment
	Scored          bool    // Whether passing it has been counted
}

// TopBox returns the rectangle of the top segment.
func (o Obstacle) TopBox(width float64) core.Box {
	return core.NewBox(o.X, 0, width, o.GapTopHeight)
}

// BottomBox returns the rectangle of the bottom segment.
func (o Obstacle) BottomBox(width float64) core.Box {
	return core.NewBox(o.X, o.GapBottomY, width, o.GapBottomHeight)
}

// Stream handles spawning, movement, scoring and removal of obstacles.
// Obstacles are kept in spawn order.
type Stream struct {
	obstacles []Obstacle
	rng       *rand.Rand
	cfg       config.Obstacles
	viewW     float64
	viewH     float64
}

// NewStream creates an empty obstacle stream with the given RNG seed.
func NewStream(cfg config.Obstacles, viewport config.Viewport, seed int64) *Stream {
	return &Stream{
		obstacles: make([]Obstacle, 0, 4),
		rng:       rand.New(rand.NewSource(seed)),
		cfg:       cfg,
		viewW:     viewport.Width,
		viewH:     viewport.Height,
	}
}

// Clear removes all obstacles. The RNG keeps its position.
func (s *Stream) Clear() {
	s.obstacles = s.obstacles[:0]
}

// Tick spawns an obstacle on every spawn-interval frame.
// Returns true if an obstacle was spawned.
func (s *Stream) Tick(frame int) bool {
	if frame%s.cfg.SpawnInterval != 0 {
		return false
	}
	s.Spawn()
	return true
}

// Spawn adds an obstacle at the right edge of the viewport. The gap is
// placed uniformly at random so both segments keep at least MinHeight.
func (s *Stream) Spawn() {
	minH := s.cfg.MinHeight
	maxH := s.viewH - s.cfg.Gap - minH
	top := minH
	if maxH > minH {
		top = s.rng.Float64()*(maxH-minH) + minH
	}
	s.obstacles = append(s.obstacles, newObstacle(s.viewW, top, s.cfg.Gap, s.viewH))
}

// newObstacle builds an obstacle from its top segment height.
func newObstacle(x, topHeight, gap, viewH float64) Obstacle {
	bottomY := topHeight + gap
	return Obstacle{
		X:               x,
		GapTopHeight:    topHeight,
		GapBottomY:      bottomY,
		GapBottomHeight: viewH - bottomY,
	}
}

// Advance moves every obstacle left by speed.
func (s *Stream) Advance(speed float64) {
	for i := range s.obstacles {
		s.obstacles[i].X -= speed
	}
}

// ScoreCheck marks every unscored obstacle whose right edge has passed
// centerX. Returns the number of obstacles newly scored; an obstacle is
// counted at most once.
func (s *Stream) ScoreCheck(centerX float64) int {
	passed := 0
	for i := range s.obstacles {
		if !s.obstacles[i].Scored && s.obstacles[i].X+s.cfg.Width < centerX {
			s.obstacles[i].Scored = true
			passed++
		}
	}
	return passed
}

// Reap removes obstacles that moved fully past the left edge, keeping the
// relative order of the survivors. Returns the number removed.
func (s *Stream) Reap() int {
	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		if o.X+s.cfg.Width >= 0 {
			kept = append(kept, o)
		}
	}
	removed := len(s.obstacles) - len(kept)
	s.obstacles = kept
	return removed
}

// Obstacles returns the live obstacles in spawn order.
// The slice is owned by the stream and must not be modified.
func (s *Stream) Obstacles() []Obstacle {
	return s.obstacles
}

// Width returns the obstacle column width.
func (s *Stream) Width() float64 {
	return s.cfg.Width
}

// Len returns the number of live obstacles.
func (s *Stream) Len() int {
	return len(s.obstacles)
}
