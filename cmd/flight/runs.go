package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flight/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List journaled runs",
	Long: `Display the most recent runs, newest first.

The journal keeps what is needed to replay a run; use
'flight replay <id>' to re-simulate one.

Examples:
  flight runs
  flight runs --limit 50`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", storage.DefaultRecentLimit, "Number of runs to show")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening run journal: %v", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		fail("retrieving runs: %v", err)
	}

	fmt.Println("Recent runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'flight play' to record one.")
		return
	}

	fmt.Printf("  %-5s  %-16s  %-10s  %-8s  %-6s  %-10s  %s\n", "ID", "Date", "Player", "Theme", "Score", "Outcome", "Seed")
	fmt.Printf("  %-5s  %-16s  %-10s  %-8s  %-6s  %-10s  %s\n", "--", "----", "------", "-----", "-----", "-------", "----")

	for _, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-5d  %-16s  %-10s  %-8s  %-6d  %-10s  %d\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), player, r.Theme, r.Score, r.Outcome, r.Seed)
	}
}
