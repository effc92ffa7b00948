/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/smarttask/internal/app"
	"github.com/spf13/cobra"
)

var clearForce bool

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every task",
	Long: `Delete every task and the last analysis results. This cannot be undone.

On a terminal you are asked to confirm. Without a terminal (or with --json)
--force is required.

Examples:
  smarttask clear            # Asks for confirmation
  smarttask clear --force    # No prompt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(s *session) error {
			confirmed := clearForce
			if n := len(s.app.Tasks()); !confirmed && n > 0 && canPrompt() {
				if err := confirm(fmt.Sprintf("Delete all %d tasks", n)); err != nil {
					return err
				}
				confirmed = true
			}

			res, err := s.app.Dispatch(cmd.Context(), app.ClearAll{Confirmed: confirmed})
			if err != nil {
				return err
			}
			return printResult(res)
		})
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip the confirmation prompt")
}
