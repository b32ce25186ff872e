package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var topN int

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the highest-ranked items",
	RunE:  runTop,
}

func init() {
	topCmd.Flags().IntVarP(&topN, "limit", "n", 10, "Number of items to show")
}

func runTop(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	items := s.RecentItems(topN)
	if len(items) == 0 {
		fmt.Println("no items recorded yet")
		return nil
	}

	for i, item := range items {
		fmt.Printf("%3d. %-50s %.4f\n", i+1, item.Key, item.Score)
	}
	return nil
}
