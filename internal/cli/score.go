package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score <key>",
	Short: "Show the live score for an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		fmt.Printf("%.6f\n", s.Score(args[0]))
		return nil
	},
}
