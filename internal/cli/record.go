package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/lazypower/frecd/internal/config"
	"github.com/spf13/cobra"
)

var recordAt uint64

var recordCmd = &cobra.Command{
	Use:   "record <key>",
	Short: "Record a use of an item",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecord,
}

func init() {
	recordCmd.Flags().Uint64Var(&recordAt, "at", 0, "Unix timestamp of the use (default: now)")
}

func runRecord(cmd *cobra.Command, args []string) error {
	key := args[0]

	s, err := openStore()
	if err != nil {
		return err
	}

	now := recordAt
	if now == 0 {
		now = uint64(time.Now().Unix())
	}

	s.RecordUseAt(key, now)
	if err := s.Save(); err != nil {
		return fmt.Errorf("save rankings: %w", err)
	}

	// Journal is best-effort here too.
	cfg := config.Default()
	if cfg.History.Enabled {
		if db, herr := openHistory(); herr == nil {
			if aerr := db.Append(key, int64(now)); aerr != nil {
				fmt.Fprintf(os.Stderr, "warning: history append failed: %v\n", aerr)
			}
			db.Close()
		} else {
			fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", herr)
		}
	}

	e, _ := s.Entry(key)
	fmt.Printf("%s  score %.4f  count %d\n", key, s.ScoreAt(key, now), e.Count)
	return nil
}
