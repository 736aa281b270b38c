package config

import (
	"math"
	"testing"
)

func TestDifficultyDisabledKeepsBaseSpeed(t *testing.T) {
	d := NewDifficultyManager(Default().Difficulty)

	if d.IsEnabled() {
		t.Fatal("default difficulty should be disabled")
	}
	for _, score := range []int{0, 10, 1000} {
		if got := d.Speed(1.8, score, score*100); got != 1.8 {
			t.Errorf("Speed(score=%d) = %v, expected unchanged 1.8", score, got)
		}
	}
}

func TestDifficultyScoreProgression(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		score int
		level float64
		speed float64
	}{
		{0, 0.0, 2.0},
		{5, 0.5, 3.0},
		{10, 1.0, 4.0},
		{50, 1.0, 4.0}, // clamped
	}

	for _, tc := range tests {
		if got := d.Level(tc.score, 0); math.Abs(got-tc.level) > 1e-9 {
			t.Errorf("Level(%d) = %v, expected %v", tc.score, got, tc.level)
		}
		if got := d.Speed(2.0, tc.score, 0); math.Abs(got-tc.speed) > 1e-9 {
			t.Errorf("Speed(%d) = %v, expected %v", tc.score, got, tc.speed)
		}
	}
}

func TestDifficultyTimeProgressionFromInitialLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
	}
	d := NewDifficultyManager(cfg)

	if got := d.Level(0, 0); got != 0.5 {
		t.Errorf("Level at start = %v, expected initial 0.5", got)
	}
	if got := d.Level(0, 50); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Level halfway = %v, expected 0.75", got)
	}
}

func TestDifficultyZeroMaxAt(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 0},
	})

	if got := d.Level(1, 0); got != 1.0 {
		t.Errorf("Level with max_at=0 = %v, expected 1.0", got)
	}
}
