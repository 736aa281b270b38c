package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flap/internal/assets"
	"github.com/vovakirdan/flap/internal/audio"
	"github.com/vovakirdan/flap/internal/platform/desktop"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a desktop window and play there. The playfield keeps its
480x640 aspect ratio when the window is resized.

Controls:
  Space/Up/W/Click/Tap - Flap (starts a run when idle)
  R                    - Restart (after game over)
  Q/Esc                - Quit

Examples:
  flap window
  flap window --scale 1.5
  flap window --difficulty normal`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Initial window size relative to 480x640")
}

func runWindow(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}

	logger, closeLog := newLogger("")
	//nolint:errcheck // Stderr needs no close
	defer closeLog()

	store := openStore(cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	player := audio.NewPlayer(cfg.Audio, logger)

	var runs desktop.RunRecorder
	if store != nil {
		runs = store
	}

	vp := cfg.Viewport
	rt := runtimeConfig(int(vp.Width*flagScale), int(vp.Height*flagScale))

	session, err := newSession(cfg, rt, store, logger)
	if err != nil {
		fatalf("%v", err)
	}

	runErr := desktop.Run(desktop.Options{
		Session: session,
		Sprites: assets.Load(ctx, cfg.Assets, logger),
		Audio:   player,
		Runs:    runs,
		Source:  "window",
		Runtime: rt,
		Logger:  logger,
	})

	cancel()
	player.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fatalf("running window: %v", runErr)
	}
}
