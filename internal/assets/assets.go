// Package assets loads the optional sprite images in the background.
// Until loading finishes, or when an image is missing, renderers draw
// their fallback shapes.
package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // Registers JPEG for image.Decode
	_ "image/png"  // Registers PNG for image.Decode
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flap/internal/config"
)

// Sprites holds the decoded images. A nil image means "use the fallback".
type Sprites struct {
	Entity   image.Image
	Obstacle image.Image
}

// Loader decodes sprites on a background goroutine.
type Loader struct {
	sprites atomic.Pointer[Sprites]
	done    chan struct{}
}

// Load starts decoding the configured sprites and returns immediately.
// Cancelling ctx abandons the load; the loader then never becomes ready.
func Load(ctx context.Context, cfg config.Assets, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}

	l := &Loader{done: make(chan struct{})}
	go l.run(ctx, cfg, logger)
	return l
}

// Ready returns an already-finished loader for s.
func Ready(s Sprites) *Loader {
	l := &Loader{done: make(chan struct{})}
	l.sprites.Store(&s)
	close(l.done)
	return l
}

func (l *Loader) run(ctx context.Context, cfg config.Assets, logger *log.Logger) {
	defer close(l.done)

	var s Sprites
	s.Entity = loadOptional(ctx, cfg.EntitySprite, "entity", logger)
	s.Obstacle = loadOptional(ctx, cfg.ObstacleSprite, "obstacle", logger)

	if ctx.Err() != nil {
		return
	}
	l.sprites.Store(&s)
}

// loadOptional decodes path, logging and returning nil on failure.
func loadOptional(ctx context.Context, path, name string, logger *log.Logger) image.Image {
	if path == "" || ctx.Err() != nil {
		return nil
	}

	img, err := Decode(path)
	if err != nil {
		logger.Warn("sprite unavailable, using fallback", "sprite", name, "err", err)
		return nil
	}
	logger.Debug("sprite loaded", "sprite", name, "size", img.Bounds().Size())
	return img
}

// Sprites returns the loaded sprites, or false while still loading.
func (l *Loader) Sprites() (Sprites, bool) {
	s := l.sprites.Load()
	if s == nil {
		return Sprites{}, false
	}
	return *s, true
}

// Decode reads a PNG or JPEG image from path.
func Decode(path string) (image.Image, error) {
	expanded, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("assets: cannot open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: cannot decode %s: %w", path, err)
	}
	return img, nil
}

// Sample returns the color of img at the relative position (fx, fy),
// both in [0, 1). Mostly transparent pixels report ok=false.
func Sample(img image.Image, fx, fy float64) (r, g, b uint8, ok bool) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0, 0, 0, false
	}

	x := bounds.Min.X + clampIndex(int(fx*float64(bounds.Dx())), bounds.Dx())
	y := bounds.Min.Y + clampIndex(int(fy*float64(bounds.Dy())), bounds.Dy())

	cr, cg, cb, ca := img.At(x, y).RGBA()
	if ca < 0x8000 {
		return 0, 0, 0, false
	}
	return uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8), true
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
