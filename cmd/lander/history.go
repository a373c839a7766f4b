package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryTUI   bool
)

var historyCmd = &cobra.Command{
	Use:   "history [mode]",
	Short: "Show the landing logbook",
	Long: `List recent rounds, landed or crashed, with touchdown details and
per-mode statistics. Without a mode, rounds from every mode are listed.

Examples:
  lander history
  lander history lander_drift --limit 50
  lander history --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of rounds to show")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Open the interactive logbook")
}

func runHistory(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryTUI {
		cfg := runtimeConfig()
		if _, err := tui.RunLogbook(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	landings, err := store.RecentLandings(gameID, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		return
	}

	if len(landings) == 0 {
		fmt.Println("No flights logged yet.")
		return
	}

	fmt.Println("Recent flights")
	fmt.Println()
	fmt.Printf("  %-16s  %-12s  %-24s  %5s  %5s  %6s  %5s  %4s\n",
		"Date", "Mode", "Result", "Score", "Fuel", "Time", "Speed", "Ang")
	for _, l := range landings {
		result := l.Outcome
		if l.Reason != "" {
			result += " (" + strings.ReplaceAll(l.Reason, "_", " ") + ")"
		}
		fmt.Printf("  %-16s  %-12s  %-24s  %5d  %5.1f  %5.1fs  %5.2f  %+4.0f\n",
			l.CreatedAt.Format("2006-01-02 15:04"), l.GameID, result,
			l.Score, l.Fuel, l.Elapsed, l.Speed, l.Angle)
	}

	modes := []string{gameID}
	if gameID == "" {
		modes = modes[:0]
		for _, g := range registry.List() {
			modes = append(modes, g.ID)
		}
	}
	for _, mode := range modes {
		printStats(store, mode)
	}
}

// printStats prints the aggregate line of one mode, skipping unplayed ones.
func printStats(store *storage.Store, gameID string) {
	stats, err := store.LandingStats(gameID)
	if err != nil || stats.Attempts == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("%s: %d flights, %d landed (%.0f%%), best %d\n",
		gameID, stats.Attempts, stats.Landed, stats.SuccessRate()*100, stats.BestScore)
	if stats.Landed > 0 {
		fmt.Printf("  average touchdown speed %.2f\n", stats.AvgSpeed)
	}

	reasons := make([]string, 0, len(stats.CrashReasons))
	for r := range stats.CrashReasons {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Printf("  crashed, %s: %d\n", strings.ReplaceAll(r, "_", " "), stats.CrashReasons[r])
	}
}
