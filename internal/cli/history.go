package cli

import (
	"fmt"
	"time"

	"github.com/lazypower/frecd/internal/config"
	"github.com/lazypower/frecd/internal/history"
	"github.com/spf13/cobra"
)

var (
	historyDays        int
	historyTopLimit    int
	historyRecentLimit int
	pruneDays          int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query the raw invocation journal",
}

var historyTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Most-used items within a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()

		since := time.Now().Add(-time.Duration(historyDays) * 24 * time.Hour).Unix()
		top, err := db.TopSince(since, historyTopLimit)
		if err != nil {
			return err
		}
		if len(top) == 0 {
			fmt.Printf("no uses recorded in the last %d days\n", historyDays)
			return nil
		}
		for i, kc := range top {
			fmt.Printf("%3d. %-50s %d\n", i+1, kc.Key, kc.Count)
		}
		return nil
	},
}

var historyRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Newest journal entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()

		uses, err := db.Recent(historyRecentLimit)
		if err != nil {
			return err
		}
		for _, u := range uses {
			fmt.Printf("%s  %s\n", time.Unix(u.UsedAt, 0).Format(time.RFC3339), u.Key)
		}
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete journal entries older than --days",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()

		before := time.Now().Add(-time.Duration(pruneDays) * 24 * time.Hour).Unix()
		n, err := db.Prune(before)
		if err != nil {
			return err
		}
		fmt.Printf("pruned %d entries\n", n)
		return nil
	},
}

func init() {
	historyTopCmd.Flags().IntVar(&historyDays, "days", 7, "Window size in days")
	historyTopCmd.Flags().IntVar(&historyTopLimit, "limit", 10, "Number of items to show")
	historyRecentCmd.Flags().IntVar(&historyRecentLimit, "limit", 20, "Number of entries to show")
	historyPruneCmd.Flags().IntVar(&pruneDays, "days", 90, "Keep entries newer than this many days")

	historyCmd.AddCommand(historyTopCmd)
	historyCmd.AddCommand(historyRecentCmd)
	historyCmd.AddCommand(historyPruneCmd)
}

func openHistory() (*history.DB, error) {
	cfg := config.Default()
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("history is disabled")
	}
	path := cfg.History.Path
	if path == "" {
		var err error
		path, err = history.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve history path: %w", err)
		}
	}
	return history.Open(path)
}
