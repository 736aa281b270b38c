package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/flap/internal/config"
	"github.com/vovakirdan/flap/internal/core"
	"github.com/vovakirdan/flap/internal/game"
	"github.com/vovakirdan/flap/internal/logging"
	"github.com/vovakirdan/flap/internal/storage"
)

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the configuration and applies --difficulty and --db.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	// An unset preset keeps the difficulty section of the config
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return config.Config{}, err
		}
		config.ApplyPreset(&cfg, preset)
	}

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	return cfg, nil
}

// newLogger creates the command logger. Full-screen commands pass
// logging.DefaultFile so log lines never tear the display.
func newLogger(file string) (*log.Logger, func() error) {
	logger, closeLog, err := logging.New(logging.Options{
		Prefix: "flap",
		Level:  flagLogLevel,
		File:   file,
	})
	if err != nil {
		fatalf("%v", err)
	}
	return logger, closeLog
}

// openStore opens the score database. Failure is not fatal: the game
// keeps its best score in memory and records no history.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open scores database", "path", cfg.Storage.Path, "err", err)
		return nil
	}
	return store
}

// runtimeConfig returns the platform parameters for a screen of the
// given size, resolving --fps and --seed.
func runtimeConfig(width, height int) core.RuntimeConfig {
	rt := core.DefaultConfig()
	if width > 0 && height > 0 {
		rt.ScreenW, rt.ScreenH = width, height
	}
	if flagFPS > 0 {
		rt.TickRate = flagFPS
	}
	rt.Seed = flagSeed
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	return rt
}

// newSession creates a game session backed by store, which may be nil.
func newSession(cfg config.Config, rt core.RuntimeConfig, store *storage.Store, logger *log.Logger) (*game.Session, error) {
	// Avoid storing a typed nil in the interface
	var best game.BestStore
	if store != nil {
		best = store
	}

	return game.NewSession(game.Options{
		Config: cfg,
		Seed:   rt.Seed,
		Store:  best,
		Logger: logger,
	})
}

// terminalSize returns the terminal size, or 80x24 when unknown.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
