/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"os"

	"github.com/josephgoksu/smarttask/internal/app"
	"github.com/josephgoksu/smarttask/internal/ui"
	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank tasks with the scoring service",
	Long: `Submit every task to the scoring service and print the prioritized list
and the suggested tasks. Completed tasks are left out of the priority list.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(s *session) error {
			var spinner *ui.Spinner
			if !isJSON() && !isQuiet() && ui.IsInteractive() {
				spinner = ui.NewSpinner("Analyzing tasks...")
				spinner.Start()
			}
			res, err := s.app.Dispatch(cmd.Context(), app.Analyze{})
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				return err
			}

			view := ui.ProjectResults(res.Analysis)
			if isJSON() {
				return printJSON(view)
			}
			if !isQuiet() {
				ui.RenderResults(os.Stdout, view)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
