package game

import "github.com/vovakirdan/flap/internal/core"

// Collides tests the entity box against one obstacle. The entity box is
// shrunk by margin on every side first, so grazing contacts are forgiven.
// The segments span the viewport above and below the gap, so with the
// entity inside the viewport this is "top above the gap's top edge or
// bottom below its bottom edge" within the obstacle column.
func Collides(entity core.Box, o Obstacle, width, margin float64) bool {
	hit := entity.Inset(margin)
	return hit.Intersects(o.TopBox(width)) || hit.Intersects(o.BottomBox(width))
}
