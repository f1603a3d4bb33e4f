package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flight/internal/replay"
	"github.com/vovakirdan/tui-flight/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a journaled run",
	Long: `Replay a run from the journal using its seed and jump ticks, then
compare the outcome with what was recorded and print the final frame.

Exits 1 if the replay does not match.

Examples:
  flight replay 12`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fail("run ID must be an integer, got %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening run journal: %v", err)
	}
	defer store.Close()

	rec, err := store.GetRun(id)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no run with ID %d\n", id)
		fmt.Fprintln(os.Stderr, "Run 'flight runs' to see recorded runs.")
		store.Close()
		os.Exit(1)
	}
	if err != nil {
		fail("%v", err)
	}

	theme := resolveTheme(rec.Theme)
	rep, err := replay.Run(rec, theme.Glyphs)
	if err != nil {
		fail("%v", err)
	}

	fmt.Println(rep.Frame.String())
	fmt.Println()
	fmt.Printf("Run %d: seed %d, %d jumps, %s after %d ticks, score %d\n",
		rec.ID, rec.Seed, len(rec.Jumps), rep.Phase, rep.Ticks, rep.Score)

	if !rep.Match {
		fmt.Println("Replay does NOT match the journal:")
		for _, m := range rep.Mismatches {
			fmt.Printf("  - %s\n", m)
		}
		store.Close()
		os.Exit(1)
	}
	fmt.Println("Replay matches the journal.")
}
