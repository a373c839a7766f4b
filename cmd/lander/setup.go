package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/logging"
	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/storage"
	"github.com/vovakirdan/tui-lander/internal/telemetry"
)

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database, warning and continuing without it on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// fileLogger returns a logger for interactive play. The TUI owns the terminal,
// so logs go to path, or nowhere when path is empty.
func fileLogger(path string) (*log.Logger, func()) {
	if path == "" {
		return logging.Discard(), func() {}
	}
	logger, closer, err := logging.OpenFile(path, "lander")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return logging.Discard(), func() {}
	}
	logger.SetLevel(logging.ParseLevel(flagLogLevel))
	return logger, func() { closer.Close() }
}

// applyGameFlags passes config and difficulty flags to the lander package.
func applyGameFlags() {
	lander.SetConfigPath(flagConfig)
	lander.SetDifficultyPreset(flagDifficulty)
}

// startTelemetry serves a spectator feed for mode on addr until ctx ends.
// It returns nil when addr is empty.
func startTelemetry(ctx context.Context, addr, mode string, logger *log.Logger) *telemetry.Hub {
	if addr == "" {
		return nil
	}
	hub := telemetry.NewHub(mode, logger)
	go func() {
		if err := telemetry.Serve(ctx, addr, hub); err != nil {
			logger.Error("telemetry feed stopped", "error", err)
		}
	}()
	return hub
}

// createGame instantiates gameID and attaches the telemetry hub when present.
func createGame(gameID string, hub *telemetry.Hub) (registry.Game, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return nil, err
	}
	if lg, ok := game.(*lander.Game); ok && hub != nil {
		lg.SetSinks(hub, hub)
	}
	return game, nil
}
