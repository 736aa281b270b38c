package game

import (
	"testing"

	"github.com/vovakirdan/flap/internal/core"
)

func TestCollidesGapScenario(t *testing.T) {
	o := newObstacle(80, 50, 250, 640)

	if o.GapBottomY != 300 || o.GapBottomHeight != 340 {
		t.Fatalf("bottom segment = (%v, %v), expected (300, 340)", o.GapBottomY, o.GapBottomHeight)
	}

	tests := []struct {
		name string
		y    float64
		want bool
	}{
		{"inside gap", 150, false},
		{"hits top segment", 0, true},
		{"hits bottom segment", 290, true},
		{"grazes top within margin", 46, false},
		{"overlaps top past margin", 44, true},
		{"grazes bottom within margin", 264, false},
		{"overlaps bottom past margin", 266, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entity := core.NewBox(100, tc.y, 40, 40)
			if got := Collides(entity, o, 200, 5); got != tc.want {
				t.Errorf("Collides(y=%v) = %v, expected %v", tc.y, got, tc.want)
			}
		})
	}
}

func TestCollidesHorizontalMargin(t *testing.T) {
	// Entity spans x 100..140, or 105..135 after the margin
	entity := core.NewBox(100, 0, 40, 40)

	tests := []struct {
		name string
		x    float64
		want bool
	}{
		{"ahead of entity", 141, false},
		{"within front margin", 136, false},
		{"past front margin", 134, true},
		{"within rear margin", 105 - 200, false},
		{"past rear margin", 106 - 200, true},
		{"far behind", -400, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := newObstacle(tc.x, 100, 250, 640)
			if got := Collides(entity, o, 200, 5); got != tc.want {
				t.Errorf("Collides(x=%v) = %v, expected %v", tc.x, got, tc.want)
			}
		})
	}
}

func TestCollidesZeroMargin(t *testing.T) {
	o := newObstacle(80, 50, 250, 640)

	if !Collides(core.NewBox(100, 49, 40, 40), o, 200, 0) {
		t.Error("without margin a one unit overlap should collide")
	}
	if Collides(core.NewBox(100, 50, 40, 40), o, 200, 0) {
		t.Error("touching the segment edge should not collide")
	}
}
