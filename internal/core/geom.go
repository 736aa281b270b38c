// Package core provides fundamental types and utilities shared by the game
// simulation and the platform layers. It contains no external dependencies
// (especially no Bubble Tea or Ebiten) to keep game logic pure and testable.
package core

// Box is an axis-aligned bounding box in world units.
// World units are the logical pixels of the fixed-size playfield.
type Box struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewBox creates a new box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 {
	return b.X + b.W/2
}

// Inset shrinks the box by margin on every side.
// A negative margin grows the box.
func (b Box) Inset(margin float64) Box {
	return Box{
		X: b.X + margin,
		Y: b.Y + margin,
		W: b.W - 2*margin,
		H: b.H - 2*margin,
	}
}

// Intersects returns true if this box overlaps with another.
// Touching edges do not count as overlap.
func (b Box) Intersects(other Box) bool {
	if b.X >= other.Right() || other.X >= b.Right() {
		return false
	}
	if b.Y >= other.Bottom() || other.Y >= b.Bottom() {
		return false
	}
	return true
}

// Empty reports whether the box has no area.
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
