package cli

import (
	"fmt"

	"github.com/lazypower/frecd/internal/config"
	"github.com/lazypower/frecd/internal/frecency"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "frecd",
	Short: "Frecency rankings for your scripts, files, and commands",
	Long:  "frecd ranks the things you invoke by frequency and recency of use. Single Go binary, one JSON file of state.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(historyCmd)
}

// openStore loads the rankings file for a one-shot command. Unlike serve,
// one-shots surface a malformed file instead of starting empty — a lone
// `frecd record` must never silently overwrite a file it could not read.
func openStore() (*frecency.Store, error) {
	cfg := config.Default()
	path := cfg.Store.Path
	if path == "" {
		var err error
		path, err = frecency.DefaultStorePath()
		if err != nil {
			return nil, fmt.Errorf("resolve store path: %w", err)
		}
	}

	s := frecency.WithPath(path)
	s.SetHalfLifeDays(cfg.Store.HalfLifeDays)
	if err := s.Load(); err != nil {
		return nil, fmt.Errorf("load rankings: %w", err)
	}
	return s, nil
}
