package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flap/internal/platform/tui"
	"github.com/vovakirdan/flap/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show best score and run history",
	Long: `Display the best score and the run history.

By default an interactive table is shown (tab switches between the top
and the most recent runs). Use --plain for text output.

Examples:
  flap scores
  flap scores --plain
  flap scores --plain --limit 25
  flap scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print plain text instead of the interactive table")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to print with --plain")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history (the best score is kept)")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fatalf("opening scores database: %v", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearRuns(); err != nil {
			store.Close()
			fatalf("clearing runs: %v", err)
		}
		fmt.Println("Run history cleared.")

	case flagPlain:
		if err := printScores(os.Stdout, store, cfg.Storage.BestKey, flagLimit); err != nil {
			store.Close()
			fatalf("%v", err)
		}

	default:
		width, height := terminalSize()
		if err := tui.RunHistory(store, width, height); err != nil {
			store.Close()
			fatalf("%v", err)
		}
	}
}

// printScores writes the best score, stats and top runs as text.
func printScores(w io.Writer, store *storage.Store, bestKey string, limit int) error {
	best, err := store.Best(bestKey)
	if err != nil {
		return fmt.Errorf("retrieving best score: %w", err)
	}

	runs, err := store.TopRuns(limit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Fprintf(w, "Best: %d\n", best)
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'flap play' to record the first run!")
		return nil
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %-6s  %-7s  %-14s  %-8s  %s\n", "Rank", "Score", "Frames", "End", "Where", "Date")
	fmt.Fprintf(w, "  %-4s  %-6s  %-7s  %-14s  %-8s  %s\n", "----", "-----", "------", "---", "-----", "----")

	for i, r := range runs {
		fmt.Fprintf(w, "  %-4d  %-6d  %-7d  %-14s  %-8s  %s\n",
			i+1, r.Score, r.Frames, r.Cause, r.Source, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetStats()
	if err == nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Runs: %d  Avg: %.1f  Pipes: %d\n", stats.Runs, stats.AvgScore, stats.TotalScore)
	}
	return nil
}
