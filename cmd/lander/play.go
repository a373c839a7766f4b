package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/registry"
)

var (
	flagConfig        string
	flagDifficulty    string
	flagTelemetryAddr string
	flagLogFile       string
)

// defaultLogFile receives round logs unless --log-file says otherwise.
const defaultLogFile = "~/.lander/lander.log"

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Fly a mode",
	Long: `Start flying the specified mode (default: lander).

Controls:
  Left/A, Right/D   - Rotate
  Up/W/Space        - Fire main engine
  P                 - Pause
  R                 - Restart (after touchdown)
  Esc/B             - Leave (after touchdown or while paused)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Looser touchdown limits, more fuel, calmer terrain, no spin
  normal - Values from the config file
  hard   - Tighter limits, less fuel, rougher terrain, faster spin

Examples:
  lander play
  lander play lander_drift
  lander play --difficulty hard --seed 42
  lander play --config ./my-lander.yaml
  lander play --telemetry-addr :8080 --log-file ./flight.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom lander config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagTelemetryAddr, "telemetry-addr", "", "Serve live telemetry over websocket on this address (e.g. :8080)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", defaultLogFile, "Append round logs to this file (empty disables logging)")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := lander.ModeStatic
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'lander list' to see available modes.")
		os.Exit(1)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()
	applyGameFlags()

	logger, closeLog := fileLogger(flagLogFile)
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := startTelemetry(ctx, flagTelemetryAddr, gameID, logger)

	game, err := createGame(gameID, hub)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	_, runErr := tui.Run(game, store, cfg, tui.WithLogger(logger))

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		cancel()
		closeLog()
		os.Exit(1)
	}
}
