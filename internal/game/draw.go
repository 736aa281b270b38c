package game

import "github.com/vovakirdan/flap/internal/core"

// HUD is the overlay state drawn on top of the playfield.
type HUD struct {
	State   State
	Score   int
	Best    int
	NewBest bool
}

// Renderer draws a session. Coordinates are world units; the renderer
// owns the mapping onto its surface.
type Renderer interface {
	Clear()
	DrawObstacle(top, bottom core.Box)
	DrawEntity(box core.Box, tilt float64)
	DrawHUD(hud HUD)
}

// Draw clears the surface and draws obstacles, the entity, then the HUD.
func (s *Session) Draw(r Renderer) {
	r.Clear()

	w := s.stream.Width()
	for _, o := range s.stream.Obstacles() {
		r.DrawObstacle(o.TopBox(w), o.BottomBox(w))
	}

	r.DrawEntity(s.entity.Box(), s.entity.Tilt())

	r.DrawHUD(s.HUD())
}

// HUD returns the current overlay state.
func (s *Session) HUD() HUD {
	return HUD{
		State:   s.state,
		Score:   s.score.Current(),
		Best:    s.score.Best(),
		NewBest: s.lastNewBest,
	}
}
