package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSteppy/paper-mario-origami-king-ai/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryBoard string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent solves",
	Long: `Display recent solve results from the history database, newest
first.

Examples:
  origami history
  origami history --limit 20
  origami history --board <board key>`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Maximum number of records to show")
	historyCmd.Flags().StringVar(&flagHistoryBoard, "board", "", "Only show solves of this board key")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var records []storage.SolveRecord
	if flagHistoryBoard != "" {
		records, err = store.ForBoard(flagHistoryBoard, flagHistoryLimit)
	} else {
		records, err = store.Recent(flagHistoryLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		fmt.Println("No solves recorded yet.")
		fmt.Println()
		fmt.Println("Run 'origami solve' or solve in the REPL to record one.")
		return
	}

	fmt.Println("Recent solves")
	fmt.Println()
	fmt.Printf("  %-16s  %-6s  %-8s  %-10s  %s\n", "Date", "Moves", "Elapsed", "Mode", "Solution")
	fmt.Printf("  %-16s  %-6s  %-8s  %-10s  %s\n", "----", "-----", "-------", "----", "--------")

	for _, r := range records {
		solution := r.Solution
		if solution == "" {
			solution = "(already solved)"
		}
		fmt.Printf("  %-16s  %-6d  %-8s  %-10s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Moves,
			r.Elapsed.Truncate(time.Millisecond).String(),
			r.Mode,
			solution,
		)
	}
}
