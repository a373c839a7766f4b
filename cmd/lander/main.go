// lander is a terminal lunar lander: steer a small craft onto the landing pad
// of a spinning, bumpy little world.
//
// Usage:
//
//	lander list              - List available modes
//	lander play [mode]       - Fly one mode (default: lander)
//	lander menu              - Pick modes interactively
//	lander serve             - Start SSH server for remote play
//	lander scores <mode>     - Show high scores for a mode
//	lander history [mode]    - Show the landing logbook
//	lander config init|show  - Write or print the configuration
//
// Global flags:
//
//	--fps <rate>    - Set presentation frame rate (default: 60)
//	--seed <value>  - Set terrain seed for reproducible rounds
//	--db <path>     - Set database path (default: ~/.lander/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its modes
	_ "github.com/vovakirdan/tui-lander/internal/games/lander"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lander",
	Short: "TUI Lander - land a craft on a spinning world in your terminal",
	Long: `TUI Lander is a terminal lunar lander. Rotate the craft, fire the
main engine and touch down gently and upright on the flat landing pad.
The body spins beneath you, and in drift mode it also moves.

Available commands:
  list     - Show all available modes
  play     - Fly a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  history  - View the landing logbook
  config   - Write or print the configuration

Examples:
  lander play
  lander play lander_drift --difficulty hard
  lander play --telemetry-addr :8080
  lander serve --ssh :2222
  lander history --limit 50`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Presentation frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Terrain seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lander/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}
