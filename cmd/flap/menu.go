package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flap/internal/audio"
	"github.com/vovakirdan/flap/internal/config"
	"github.com/vovakirdan/flap/internal/logging"
	"github.com/vovakirdan/flap/internal/platform/tui"
)

// runMenu shows the title menu and loops menu -> game/history -> menu
// until the user quits.
func runMenu(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}

	logger, closeLog := newLogger(logging.DefaultFile)
	//nolint:errcheck // Best-effort close
	defer closeLog()

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	// One player for every game: the speaker opens once per process
	player := audio.NewPlayer(cfg.Audio, logger)
	defer player.Close()

	// Keep the config's difficulty section until a preset is picked
	preset, _ := config.ParsePreset(flagDifficulty)
	presetChosen := flagDifficulty != ""

	width, height := terminalSize()

	for {
		best := 0
		if store != nil {
			if b, err := store.Best(cfg.Storage.BestKey); err == nil {
				best = b
			}
		}

		result, err := tui.RunMenu(width, height, best, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		width, height = result.Width, result.Height

		if result.Preset != preset {
			presetChosen = true
		}
		preset = result.Preset

		switch result.Choice {
		case tui.MenuPlay:
			playCfg := cfg
			if presetChosen {
				config.ApplyPreset(&playCfg, preset)
			}
			if err := playTerminal(playCfg, store, player, logger, width, height); err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
				return
			}

		case tui.MenuHistory:
			// Without a database there is no history to show
			var source tui.HistorySource
			if store != nil {
				source = store
			}
			if err := tui.RunHistory(source, width, height); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}

		default:
			return
		}
	}
}
