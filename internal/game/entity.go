package game

import (
	"math"

	"github.com/vovakirdan/flap/internal/config"
	"github.com/vovakirdan/flap/internal/core"
)

// maxTilt bounds the display rotation of the entity.
const maxTilt = math.Pi / 4

// Entity is the falling actor. Motion is integrated per tick, not per
// elapsed time, so the feel depends on the tick rate.
type Entity struct {
	X, Y     float64 // Top-left corner in world units
	W, H     float64
	Velocity float64 // Vertical velocity, positive is down

	gravity float64
	impulse float64
	spawnY  float64
	floor   float64 // Viewport height
}

// NewEntity creates the entity at its spawn position.
func NewEntity(cfg config.Entity, viewportHeight float64) *Entity {
	e := &Entity{
		X:       cfg.X,
		W:       cfg.Width,
		H:       cfg.Height,
		gravity: cfg.Gravity,
		impulse: cfg.JumpImpulse,
		spawnY:  viewportHeight / 2,
		floor:   viewportHeight,
	}
	e.Reset()
	return e
}

// Update applies gravity and moves the entity by one tick.
// Position is clamped to the viewport; touching an edge zeroes velocity.
// Returns true when the entity was clamped at the bottom edge.
func (e *Entity) Update() (hitBottom bool) {
	e.Velocity += e.gravity
	e.Y += e.Velocity

	if e.Y < 0 {
		e.Y = 0
		e.Velocity = 0
	}

	if e.Y+e.H > e.floor {
		e.Y = e.floor - e.H
		e.Velocity = 0
		hitBottom = true
	}

	return hitBottom
}

// Jump overwrites the velocity with the jump impulse. Jumps never stack.
func (e *Entity) Jump() {
	e.Velocity = e.impulse
}

// Reset restores the spawn position and zero velocity.
func (e *Entity) Reset() {
	e.Y = e.spawnY
	e.Velocity = 0
}

// Box returns the entity's bounding box.
func (e *Entity) Box() core.Box {
	return core.NewBox(e.X, e.Y, e.W, e.H)
}

// Tilt returns the display rotation in radians derived from velocity.
// Positive values tilt the nose down.
func (e *Entity) Tilt() float64 {
	return core.ClampF(e.Velocity*0.05, -maxTilt, maxTilt)
}
