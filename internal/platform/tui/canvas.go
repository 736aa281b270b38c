package tui

import (
	"fmt"
	"image"
	"math"

	"github.com/vovakirdan/flap/internal/assets"
	"github.com/vovakirdan/flap/internal/config"
	"github.com/vovakirdan/flap/internal/core"
	"github.com/vovakirdan/flap/internal/game"
)

// helpRows is the number of terminal rows kept below the screen for help.
const helpRows = 1

// Layout maps world units onto terminal cells.
type Layout struct {
	OffX, OffY   int     // Top-left cell of the play area
	Cols, Rows   int     // Play area size in cells
	UnitX, UnitY float64 // World units per cell
}

// Fit computes the largest play area for a world of worldW x worldH inside
// a termW x termH cell area. Cells are treated as twice as tall as wide so
// the world keeps its aspect ratio. A frame surrounds the play area.
func Fit(worldW, worldH float64, termW, termH int) Layout {
	availCols := max(termW-2, 1)
	availRows := max(termH-2, 1)

	unit := math.Max(worldW/float64(availCols), worldH/2/float64(availRows))
	cols := core.Clamp(int(math.Round(worldW/unit)), 1, availCols)
	rows := core.Clamp(int(math.Round(worldH/(2*unit))), 1, availRows)

	return Layout{
		OffX:  max((termW-cols)/2, 1),
		OffY:  1 + (availRows-rows)/2,
		Cols:  cols,
		Rows:  rows,
		UnitX: worldW / float64(cols),
		UnitY: worldH / float64(rows),
	}
}

// Canvas draws a game session onto a Screen.
type Canvas struct {
	screen  *core.Screen
	layout  Layout
	worldW  float64
	worldH  float64
	sprites *assets.Loader
}

var _ game.Renderer = (*Canvas)(nil)

// NewCanvas creates a canvas for the given world size. sprites may be nil.
func NewCanvas(screen *core.Screen, viewport config.Viewport, sprites *assets.Loader) *Canvas {
	c := &Canvas{
		screen:  screen,
		worldW:  viewport.Width,
		worldH:  viewport.Height,
		sprites: sprites,
	}
	c.layout = Fit(c.worldW, c.worldH, screen.Width(), screen.Height())
	return c
}

// Resize adapts the screen and layout to a new terminal size, leaving
// room for the help line.
func (c *Canvas) Resize(w, h int) {
	h = max(h-helpRows, 1)
	c.screen.Resize(w, h)
	c.layout = Fit(c.worldW, c.worldH, w, h)
}

// Layout returns the current layout.
func (c *Canvas) Layout() Layout {
	return c.layout
}

// Clear blanks the screen and draws the play area frame.
func (c *Canvas) Clear() {
	l := c.layout
	c.screen.Clear()
	c.screen.DrawFrame(l.OffX-1, l.OffY-1, l.OffX+l.Cols+1, l.OffY+l.Rows+1, core.ColorGray)
}

// span returns the play area cells whose centers lie inside b, as the
// half-open range [x0,x1) x [y0,y1).
func (c *Canvas) span(b core.Box) (x0, y0, x1, y1 int) {
	l := c.layout
	x0 = core.Clamp(int(math.Ceil(b.X/l.UnitX-0.5)), 0, l.Cols)
	x1 = core.Clamp(int(math.Ceil(b.Right()/l.UnitX-0.5)), 0, l.Cols)
	y0 = core.Clamp(int(math.Ceil(b.Y/l.UnitY-0.5)), 0, l.Rows)
	y1 = core.Clamp(int(math.Ceil(b.Bottom()/l.UnitY-0.5)), 0, l.Rows)
	return x0, y0, x1, y1
}

// set writes a play area cell.
func (c *Canvas) set(cx, cy int, r rune, col core.Color) {
	c.screen.SetColored(c.layout.OffX+cx, c.layout.OffY+cy, r, col)
}

// spriteColor samples sprite for cell (cx, cy) relative to box b.
func (c *Canvas) spriteColor(sprite image.Image, b core.Box, cx, cy int, flip bool) (core.Color, bool) {
	fx := ((float64(cx)+0.5)*c.layout.UnitX - b.X) / b.W
	fy := ((float64(cy)+0.5)*c.layout.UnitY - b.Y) / b.H
	if flip {
		fy = 1 - fy
	}
	r, g, bl, ok := assets.Sample(sprite, fx, fy)
	if !ok {
		return 0, false
	}
	return core.RGBToColor(r, g, bl), true
}

// loaded returns the sprites if loading has finished.
func (c *Canvas) loaded() assets.Sprites {
	if c.sprites == nil {
		return assets.Sprites{}
	}
	s, _ := c.sprites.Sprites()
	return s
}

// DrawObstacle draws both segments. The top segment's sprite is flipped
// so its cap faces the gap.
func (c *Canvas) DrawObstacle(top, bottom core.Box) {
	sprite := c.loaded().Obstacle
	c.drawSegment(top, true, sprite)
	c.drawSegment(bottom, false, sprite)
}

func (c *Canvas) drawSegment(b core.Box, flip bool, sprite image.Image) {
	if b.Empty() {
		return
	}

	x0, y0, x1, y1 := c.span(b)
	capRow := y0
	if flip {
		capRow = y1 - 1
	}

	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			if sprite != nil {
				if col, ok := c.spriteColor(sprite, b, cx, cy, flip); ok {
					c.set(cx, cy, '█', col)
				}
				continue
			}

			col := core.ColorGreen
			if cx == x0 || cx == x1-1 || cy == capRow {
				col = core.ColorDarkGreen
			}
			c.set(cx, cy, '█', col)
		}
	}
}

// DrawEntity draws the entity, at least one cell in size.
func (c *Canvas) DrawEntity(box core.Box, tilt float64) {
	x0, y0, x1, y1 := c.span(box)
	if x1 <= x0 {
		x1 = min(x0+1, c.layout.Cols)
		x0 = x1 - 1
	}
	if y1 <= y0 {
		y1 = min(y0+1, c.layout.Rows)
		y0 = y1 - 1
	}

	if sprite := c.loaded().Entity; sprite != nil {
		for cy := y0; cy < y1; cy++ {
			for cx := x0; cx < x1; cx++ {
				if col, ok := c.spriteColor(sprite, box, cx, cy, false); ok {
					c.set(cx, cy, '█', col)
				}
			}
		}
		return
	}

	l := c.layout
	c.screen.FillCells(l.OffX+x0, l.OffY+y0, l.OffX+x1, l.OffY+y1, '█', core.ColorGold)

	// Eye and beak
	if x1-x0 >= 3 {
		c.set(x1-2, y0, '•', core.ColorBlack)
	}
	c.set(x1-1, y0+(y1-y0)/2, beakRune(tilt), core.ColorOrange)
}

// beakRune picks the beak glyph for the display tilt.
func beakRune(tilt float64) rune {
	switch {
	case tilt < -0.15:
		return '▴'
	case tilt > 0.15:
		return '▾'
	default:
		return '▸'
	}
}

// DrawHUD draws the score line and the state overlay.
func (c *Canvas) DrawHUD(h game.HUD) {
	l := c.layout

	score := fmt.Sprintf(" Score: %d ", h.Score)
	best := fmt.Sprintf(" Best: %d ", h.Best)
	c.screen.DrawText(l.OffX+1, l.OffY, score, core.ColorBrightWhite)
	c.screen.DrawText(l.OffX+l.Cols-len(best)-1, l.OffY, best, core.ColorGold)

	switch h.State {
	case game.StateIdle:
		c.overlay([]string{"F L A P", "", "Space / click to start"}, core.ColorBrightWhite)
	case game.StateEnded:
		lines := []string{"GAME OVER", "", fmt.Sprintf("Score: %d  Best: %d", h.Score, h.Best)}
		if h.NewBest {
			lines = append(lines, "NEW BEST!")
		}
		lines = append(lines, "", "Space or R to restart")
		c.overlay(lines, core.ColorRed)
	}
}

// overlay draws lines centered in the play area; the first in titleColor.
func (c *Canvas) overlay(lines []string, titleColor core.Color) {
	l := c.layout
	y := l.OffY + (l.Rows-len(lines))/2

	for i, line := range lines {
		col := core.ColorBrightWhite
		if i == 0 {
			col = titleColor
		}
		if line == "" {
			continue
		}
		text := " " + line + " "
		x := l.OffX + (l.Cols-len([]rune(text)))/2
		c.screen.DrawText(x, y+i, text, col)
	}
}
