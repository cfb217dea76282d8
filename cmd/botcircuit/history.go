package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"botcircuit/internal/storage"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history [bot]",
	Short: "Show archived runs",
	Long: `Without an argument, shows the most recent runs across all bots.
With a bot name, shows that bot's longest runs.

Examples:
  botcircuit history
  botcircuit history rusty --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Maximum number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) {
	db, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run archive: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	var records []storage.RunRecord
	if len(args) == 1 {
		records, err = db.TopRuns(args[0], flagHistoryLimit)
		if err == nil {
			fmt.Printf("Longest runs - %s\n", args[0])
		}
	} else {
		records, err = db.RecentRuns(flagHistoryLimit)
		if err == nil {
			fmt.Println("Recent runs")
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	if len(records) == 0 {
		fmt.Println("No runs archived yet.")
		fmt.Println()
		fmt.Println("Run 'botcircuit run' to send a bot out!")
		return
	}

	fmt.Printf("  %-12s  %-10s  %-10s  %-9s  %-20s  %s\n",
		"Bot", "Archetype", "Distance", "Survival", "Outcome", "Date")
	fmt.Printf("  %-12s  %-10s  %-10s  %-9s  %-20s  %s\n",
		"---", "---------", "--------", "--------", "-------", "----")

	for _, r := range records {
		fmt.Printf("  %-12s  %-10s  %-10.1f  %-8.1fs  %-20s  %s\n",
			r.BotName, r.Archetype, r.Distance, r.SurvivalSecs,
			r.Reason, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
