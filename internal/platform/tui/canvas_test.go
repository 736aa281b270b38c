package tui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/vovakirdan/flap/internal/assets"
	"github.com/vovakirdan/flap/internal/config"
	"github.com/vovakirdan/flap/internal/core"
	"github.com/vovakirdan/flap/internal/game"
)

// newTestCanvas returns a canvas on a 100x42 screen: a 60x40 play area at
// (20, 1), 8 world units per column and 16 per row.
func newTestCanvas(t *testing.T, sprites *assets.Loader) (*Canvas, *core.Screen) {
	t.Helper()
	screen := core.NewScreen(100, 42)
	return NewCanvas(screen, config.Default().Viewport, sprites), screen
}

func TestFitExact(t *testing.T) {
	l := Fit(480, 640, 100, 42)

	want := Layout{OffX: 20, OffY: 1, Cols: 60, Rows: 40, UnitX: 8, UnitY: 16}
	if l != want {
		t.Errorf("Fit(480, 640, 100, 42) = %+v, expected %+v", l, want)
	}
}

func TestFitInvariants(t *testing.T) {
	sizes := []struct{ w, h int }{
		{80, 24},
		{120, 40},
		{40, 30},
		{200, 60},
	}

	for _, sz := range sizes {
		l := Fit(480, 640, sz.w, sz.h)

		if l.Cols < 1 || l.Rows < 1 {
			t.Errorf("%dx%d: empty play area %+v", sz.w, sz.h, l)
		}
		if l.OffX < 1 || l.OffY < 1 {
			t.Errorf("%dx%d: no room for frame, offset (%d, %d)", sz.w, sz.h, l.OffX, l.OffY)
		}
		if l.OffX+l.Cols > sz.w-1 || l.OffY+l.Rows > sz.h-1 {
			t.Errorf("%dx%d: play area %+v overflows the terminal", sz.w, sz.h, l)
		}

		// Cells are twice as tall as wide
		ratio := l.UnitY / l.UnitX
		if ratio < 1.8 || ratio > 2.2 {
			t.Errorf("%dx%d: UnitY/UnitX = %.2f, expected about 2", sz.w, sz.h, ratio)
		}
	}
}

func TestCanvasResizeKeepsHelpRow(t *testing.T) {
	c, screen := newTestCanvas(t, nil)

	c.Resize(100, 43)

	if screen.Height() != 42 {
		t.Errorf("screen height = %d, expected 42", screen.Height())
	}
	if c.Layout() != Fit(480, 640, 100, 42) {
		t.Errorf("layout = %+v, expected the 100x42 fit", c.Layout())
	}
}

func TestCanvasClearDrawsFrame(t *testing.T) {
	c, screen := newTestCanvas(t, nil)
	screen.Set(50, 20, 'X')

	c.Clear()

	if screen.Get(50, 20) != ' ' {
		t.Error("Clear should blank the play area")
	}
	if got := screen.Get(19, 0); got != '┌' {
		t.Errorf("top-left corner = %q, expected '┌'", got)
	}
	if got := screen.Get(80, 41); got != '┘' {
		t.Errorf("bottom-right corner = %q, expected '┘'", got)
	}
	if got := screen.GetCell(19, 0).Color; got != core.ColorGray {
		t.Errorf("frame color = %d, expected gray", got)
	}
}

func TestCanvasDrawObstacle(t *testing.T) {
	c, screen := newTestCanvas(t, nil)
	c.Clear()

	// Columns 20..44, top rows 0..9, bottom rows 26..39
	top := core.NewBox(160, 0, 200, 160)
	bottom := core.NewBox(160, 410, 200, 230)
	c.DrawObstacle(top, bottom)

	tests := []struct {
		name string
		x, y int
		want core.Color
	}{
		{"top body", 50, 6, core.ColorGreen},
		{"top left edge", 40, 6, core.ColorDarkGreen},
		{"top right edge", 64, 6, core.ColorDarkGreen},
		{"top cap faces gap", 50, 10, core.ColorDarkGreen},
		{"bottom cap faces gap", 50, 27, core.ColorDarkGreen},
		{"bottom body", 50, 35, core.ColorGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := screen.GetCell(tt.x, tt.y)
			if cell.Rune != '█' {
				t.Errorf("cell (%d, %d) = %q, expected '█'", tt.x, tt.y, cell.Rune)
			}
			if cell.Color != tt.want {
				t.Errorf("cell (%d, %d) color = %d, expected %d", tt.x, tt.y, cell.Color, tt.want)
			}
		})
	}

	// The gap stays empty
	if got := screen.Get(50, 18); got != ' ' {
		t.Errorf("gap cell = %q, expected blank", got)
	}
	// Nothing left of the obstacle
	if got := screen.Get(39, 6); got != ' ' {
		t.Errorf("cell left of obstacle = %q, expected blank", got)
	}
}

func TestCanvasSkipsEmptySegment(t *testing.T) {
	c, screen := newTestCanvas(t, nil)
	c.Clear()
	before := screen.String()

	c.DrawObstacle(core.NewBox(160, 0, 200, 0), core.NewBox(160, 640, 200, 0))

	if screen.String() != before {
		t.Error("empty segments should draw nothing")
	}
}

func TestCanvasDrawEntity(t *testing.T) {
	c, screen := newTestCanvas(t, nil)
	c.Clear()

	// Spawn box: columns 12..16, rows 20..21
	c.DrawEntity(core.NewBox(100, 320, 40, 40), 0)

	body := screen.GetCell(32, 21)
	if body.Rune != '█' || body.Color != core.ColorGold {
		t.Errorf("body cell = %q/%d, expected gold block", body.Rune, body.Color)
	}

	eye := screen.GetCell(35, 21)
	if eye.Rune != '•' {
		t.Errorf("eye cell = %q, expected '•'", eye.Rune)
	}

	beak := screen.GetCell(36, 22)
	if beak.Rune != '▸' || beak.Color != core.ColorOrange {
		t.Errorf("beak cell = %q/%d, expected orange '▸'", beak.Rune, beak.Color)
	}
}

func TestBeakRune(t *testing.T) {
	tests := []struct {
		tilt float64
		want rune
	}{
		{-0.5, '▴'},
		{0, '▸'},
		{0.1, '▸'},
		{0.5, '▾'},
	}

	for _, tt := range tests {
		if got := beakRune(tt.tilt); got != tt.want {
			t.Errorf("beakRune(%v) = %q, expected %q", tt.tilt, got, tt.want)
		}
	}
}

func TestCanvasDrawEntitySprite(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	c, screen := newTestCanvas(t, assets.Ready(assets.Sprites{Entity: img}))
	c.Clear()
	c.DrawEntity(core.NewBox(100, 320, 40, 40), 0)

	cell := screen.GetCell(32, 21)
	if cell.Rune != '█' || cell.Color != 196 {
		t.Errorf("sprite cell = %q/%d, expected red block (196)", cell.Rune, cell.Color)
	}
	if got := screen.Get(35, 21); got == '•' {
		t.Error("sprite entity should not draw the fallback eye")
	}
}

func TestCanvasDrawHUD(t *testing.T) {
	tests := []struct {
		name    string
		hud     game.HUD
		want    []string
		notWant []string
	}{
		{
			name:    "idle",
			hud:     game.HUD{State: game.StateIdle, Best: 4},
			want:    []string{"F L A P", "Space / click to start", "Best: 4"},
			notWant: []string{"GAME OVER"},
		},
		{
			name:    "running",
			hud:     game.HUD{State: game.StateRunning, Score: 7, Best: 12},
			want:    []string{"Score: 7", "Best: 12"},
			notWant: []string{"F L A P", "GAME OVER"},
		},
		{
			name: "ended with new best",
			hud:  game.HUD{State: game.StateEnded, Score: 13, Best: 13, NewBest: true},
			want: []string{"GAME OVER", "Score: 13  Best: 13", "NEW BEST!", "Space or R to restart"},
		},
		{
			name:    "ended",
			hud:     game.HUD{State: game.StateEnded, Score: 2, Best: 13},
			want:    []string{"GAME OVER"},
			notWant: []string{"NEW BEST!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, screen := newTestCanvas(t, nil)
			c.Clear()
			c.DrawHUD(tt.hud)

			out := screen.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("screen missing %q", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("screen should not contain %q", w)
				}
			}
		})
	}
}

func TestCanvasScoreOnTopRow(t *testing.T) {
	c, screen := newTestCanvas(t, nil)
	c.Clear()
	c.DrawHUD(game.HUD{State: game.StateRunning, Score: 3, Best: 9})

	row := screen.Row(1)
	if !strings.Contains(row, "Score: 3") || !strings.Contains(row, "Best: 9") {
		t.Errorf("top play row = %q, expected score and best", row)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd", core.ColorGreen)

	out := RenderScreen(s)
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
	for _, w := range []string{"ab", "cd"} {
		if !strings.Contains(out, w) {
			t.Errorf("rendered screen missing %q", w)
		}
	}
}
