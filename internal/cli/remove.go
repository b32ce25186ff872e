package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <key>",
	Short: "Reset an item's ranking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		s.Remove(args[0])
		if err := s.Save(); err != nil {
			return fmt.Errorf("save rankings: %w", err)
		}
		fmt.Printf("removed %s\n", args[0])
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all rankings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		s.Clear()
		if err := s.Save(); err != nil {
			return fmt.Errorf("save rankings: %w", err)
		}
		fmt.Println("rankings cleared")
		return nil
	},
}
