package main

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flap/internal/assets"
	"github.com/vovakirdan/flap/internal/audio"
	"github.com/vovakirdan/flap/internal/config"
	"github.com/vovakirdan/flap/internal/logging"
	"github.com/vovakirdan/flap/internal/platform/tui"
	"github.com/vovakirdan/flap/internal/storage"
)

var flagScreenshotDir string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start playing in the terminal.

Controls:
  Space/Up/W/Click - Flap (starts a run when idle)
  R                - Restart (after game over)
  Ctrl+S           - Save a text screenshot
  Q/Esc/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Logs are written to ~/.flap/flap.log.

Examples:
  flap play
  flap play --difficulty hard
  flap play --config ./my-flap.yaml
  flap play --seed 42 --fps 30`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagScreenshotDir, "screenshots", "", "Directory for screenshots (default ~/.flap/screenshots)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}

	logger, closeLog := newLogger(logging.DefaultFile)
	store := openStore(cfg, logger)

	player := audio.NewPlayer(cfg.Audio, logger)

	width, height := terminalSize()
	runErr := playTerminal(cfg, store, player, logger, width, height)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}
	//nolint:errcheck // Best-effort close
	closeLog()

	if runErr != nil {
		fatalf("running game: %v", runErr)
	}
}

// playTerminal runs one terminal game until the player quits. The audio
// player outlives the game so consecutive games share the device.
func playTerminal(cfg config.Config, store *storage.Store, player *audio.Player, logger *log.Logger, width, height int) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer player.Close()

	// Avoid storing a typed nil in the interface
	var runs tui.RunRecorder
	if store != nil {
		runs = store
	}

	rt := runtimeConfig(width, height)
	session, err := newSession(cfg, rt, store, logger)
	if err != nil {
		return err
	}

	return tui.Run(tui.Options{
		Session:       session,
		Sprites:       assets.Load(ctx, cfg.Assets, logger),
		Audio:         player,
		Runs:          runs,
		Source:        "terminal",
		Runtime:       rt,
		ScreenshotDir: flagScreenshotDir,
		Logger:        logger,
	})
}
