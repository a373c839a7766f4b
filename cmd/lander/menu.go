package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the lander with a mode picker menu",
	Long: `Start the lander in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a round, Esc returns to the menu. Tab opens the logbook.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Logbook
  Q            - Quit

Examples:
  lander menu
  lander menu --fps 30
  lander menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom lander config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	menuCmd.Flags().StringVar(&flagLogFile, "log-file", defaultLogFile, "Append round logs to this file (empty disables logging)")
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	logger, closeLog := fileLogger(flagLogFile)
	defer closeLog()

	cfg := runtimeConfig()
	applyGameFlags()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsLogbook {
			goBack, lbErr := tui.RunLogbook(store, cfg.ScreenW, cfg.ScreenH)
			if lbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", lbErr)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := createGame(menuResult.GameID, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		goBack, runErr := tui.Run(game, store, cfg, tui.WithLogger(logger))
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			return
		}
		if !goBack {
			return
		}
	}
}
