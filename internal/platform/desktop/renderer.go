package desktop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/flap/internal/assets"
	"github.com/vovakirdan/flap/internal/config"
	"github.com/vovakirdan/flap/internal/core"
	"github.com/vovakirdan/flap/internal/game"
)

// Debug font cell size
const (
	glyphW = 6
	glyphH = 16
)

const pipeEdgeStroke = 3

var (
	skyColor      = color.RGBA{0x70, 0xc5, 0xce, 0xff}
	pipeColor     = color.RGBA{0x5e, 0xbd, 0x3e, 0xff}
	pipeEdgeColor = color.RGBA{0x2f, 0x6b, 0x1f, 0xff}
	birdColor     = color.RGBA{0xf7, 0xd3, 0x08, 0xff}
	beakColor     = color.RGBA{0xf5, 0x8a, 0x07, 0xff}
	eyeColor      = color.RGBA{0x10, 0x10, 0x10, 0xff}
	overlayColor  = color.RGBA{0x00, 0x00, 0x00, 0x90}
)

// renderer draws a session with Ebitengine primitives or sprites.
type renderer struct {
	dst     *ebiten.Image
	width   float64
	height  float64
	sprites *assets.Loader

	converted bool
	entity    *ebiten.Image
	obstacle  *ebiten.Image
}

var _ game.Renderer = (*renderer)(nil)

func newRenderer(vp config.Viewport, sprites *assets.Loader) *renderer {
	return &renderer{width: vp.Width, height: vp.Height, sprites: sprites}
}

// target sets the image to draw on and picks up sprites once loaded.
func (r *renderer) target(dst *ebiten.Image) {
	r.dst = dst
	if r.converted || r.sprites == nil {
		return
	}

	s, ok := r.sprites.Sprites()
	if !ok {
		return
	}
	if s.Entity != nil {
		r.entity = ebiten.NewImageFromImage(s.Entity)
	}
	if s.Obstacle != nil {
		r.obstacle = ebiten.NewImageFromImage(s.Obstacle)
	}
	r.converted = true
}

func (r *renderer) Clear() {
	r.dst.Fill(skyColor)
}

func (r *renderer) DrawObstacle(top, bottom core.Box) {
	r.drawSegment(top, true)
	r.drawSegment(bottom, false)
}

// drawSegment draws one obstacle segment. flip mirrors the sprite
// vertically so the top segment's cap faces the gap.
func (r *renderer) drawSegment(b core.Box, flip bool) {
	if b.Empty() {
		return
	}

	if r.obstacle != nil {
		w, h := r.obstacle.Bounds().Dx(), r.obstacle.Bounds().Dy()
		op := &ebiten.DrawImageOptions{}
		if flip {
			op.GeoM.Scale(1, -1)
			op.GeoM.Translate(0, float64(h))
		}
		op.GeoM.Scale(b.W/float64(w), b.H/float64(h))
		op.GeoM.Translate(b.X, b.Y)
		r.dst.DrawImage(r.obstacle, op)
		return
	}

	x, y, w, h := float32(b.X), float32(b.Y), float32(b.W), float32(b.H)
	vector.DrawFilledRect(r.dst, x, y, w, h, pipeColor, false)
	vector.StrokeRect(r.dst, x, y, w, h, pipeEdgeStroke, pipeEdgeColor, false)
}

// DrawEntity draws the entity rotated by tilt around its center.
func (r *renderer) DrawEntity(box core.Box, tilt float64) {
	if r.entity != nil {
		w, h := r.entity.Bounds().Dx(), r.entity.Bounds().Dy()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
		op.GeoM.Scale(box.W/float64(w), box.H/float64(h))
		op.GeoM.Rotate(tilt)
		op.GeoM.Translate(box.X+box.W/2, box.Y+box.H/2)
		r.dst.DrawImage(r.entity, op)
		return
	}

	// Axis-aligned body; the beak follows the tilt
	x, y, w, h := float32(box.X), float32(box.Y), float32(box.W), float32(box.H)
	vector.DrawFilledRect(r.dst, x, y, w, h, birdColor, false)
	vector.DrawFilledCircle(r.dst, x+w*0.7, y+h*0.3, w*0.08, eyeColor, true)

	beakY := y + h/2 + float32(tilt)*h/2
	vector.DrawFilledRect(r.dst, x+w, beakY-h*0.1, w*0.25, h*0.2, beakColor, false)
}

func (r *renderer) DrawHUD(h game.HUD) {
	ebitenutil.DebugPrintAt(r.dst, fmt.Sprintf("Score: %d", h.Score), 8, 8)
	best := fmt.Sprintf("Best: %d", h.Best)
	ebitenutil.DebugPrintAt(r.dst, best, int(r.width)-8-len(best)*glyphW, 8)

	switch h.State {
	case game.StateIdle:
		r.overlay([]string{"F L A P", "", "Space / click to start"})
	case game.StateEnded:
		lines := []string{"GAME OVER", "", fmt.Sprintf("Score: %d  Best: %d", h.Score, h.Best)}
		if h.NewBest {
			lines = append(lines, "NEW BEST!")
		}
		lines = append(lines, "", "Space or R to restart")
		r.overlay(lines)
	}
}

// overlay dims the playfield and prints centered lines.
func (r *renderer) overlay(lines []string) {
	boxH := float32(len(lines)*glyphH + 2*glyphH)
	boxY := (float32(r.height) - boxH) / 2
	vector.DrawFilledRect(r.dst, 0, boxY, float32(r.width), boxH, overlayColor, false)

	y := int(boxY) + glyphH
	for i, line := range lines {
		x := (int(r.width) - len(line)*glyphW) / 2
		ebitenutil.DebugPrintAt(r.dst, line, x, y+i*glyphH)
	}
}
