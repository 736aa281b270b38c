package game

import (
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flap/internal/config"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestEntity() *Entity {
	cfg := config.Default()
	return NewEntity(cfg.Entity, cfg.Viewport.Height)
}

func TestEntitySpawn(t *testing.T) {
	e := newTestEntity()

	if e.X != 100 || e.Y != 320 {
		t.Errorf("spawn = (%v, %v), expected (100, 320)", e.X, e.Y)
	}
	if e.Velocity != 0 {
		t.Errorf("spawn velocity = %v, expected 0", e.Velocity)
	}
}

func TestEntityStaysInBounds(t *testing.T) {
	e := newTestEntity()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 5000; i++ {
		if rng.Intn(12) == 0 {
			e.Jump()
		}
		e.Update()

		if e.Y < 0 || e.Y > 640-e.H {
			t.Fatalf("tick %d: y = %v out of [0, %v]", i, e.Y, 640-e.H)
		}
	}
}

func TestEntityJumpOverwritesVelocity(t *testing.T) {
	e := newTestEntity()

	for _, v := range []float64{-20, -4.5, 0, 3.3, 50} {
		e.Velocity = v
		e.Jump()
		if e.Velocity != -4.5 {
			t.Errorf("after Jump from %v velocity = %v, expected -4.5", v, e.Velocity)
		}
	}

	// Jumps never stack
	e.Jump()
	e.Jump()
	if e.Velocity != -4.5 {
		t.Errorf("double jump velocity = %v, expected -4.5", e.Velocity)
	}
}

func TestEntityUpdateIntegrates(t *testing.T) {
	e := newTestEntity()

	e.Update()
	if math.Abs(e.Velocity-0.18) > 1e-9 || math.Abs(e.Y-320.18) > 1e-9 {
		t.Errorf("after one tick v=%v y=%v, expected v=0.18 y=320.18", e.Velocity, e.Y)
	}
}

func TestEntityUnattendedFallHitsBottom(t *testing.T) {
	e := newTestEntity()

	hits := 0
	first := -1
	for i := 0; i < 200; i++ {
		if e.Update() {
			hits++
			if first < 0 {
				first = i
			}
		}
	}

	if first < 0 {
		t.Fatal("entity never reached the bottom")
	}
	if e.Y != 600 || e.Velocity != 0 {
		t.Errorf("resting at y=%v v=%v, expected y=600 v=0", e.Y, e.Velocity)
	}
	// Falls from y=320: 0.18*n(n+1)/2 >= 280 first holds at n=56
	if first != 55 {
		t.Errorf("bottom reached on tick %d, expected 55", first)
	}
}

func TestEntityTopClampDoesNotSignal(t *testing.T) {
	e := newTestEntity()
	e.Y = 2

	e.Jump()
	if e.Update() {
		t.Error("clamping at the top should not report out of bounds")
	}
	if e.Y != 0 || e.Velocity != 0 {
		t.Errorf("top clamp y=%v v=%v, expected 0, 0", e.Y, e.Velocity)
	}
}

func TestEntityReset(t *testing.T) {
	e := newTestEntity()
	e.Jump()
	for i := 0; i < 30; i++ {
		e.Update()
	}

	e.Reset()
	if e.Y != 320 || e.Velocity != 0 {
		t.Errorf("after Reset y=%v v=%v, expected 320, 0", e.Y, e.Velocity)
	}
}

func TestEntityTilt(t *testing.T) {
	e := newTestEntity()

	tests := []struct {
		velocity float64
		want     float64
	}{
		{0, 0},
		{-4.5, -0.225},
		{10, 0.5},
		{100, math.Pi / 4},
		{-100, -math.Pi / 4},
	}

	for _, tc := range tests {
		e.Velocity = tc.velocity
		if got := e.Tilt(); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Tilt(v=%v) = %v, expected %v", tc.velocity, got, tc.want)
		}
	}
}
