/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"os"

	"github.com/josephgoksu/smarttask/internal/ui"
	"github.com/spf13/cobra"
)

var listPending bool

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks with urgency, importance and effort",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(s *session) error {
			tasks := s.app.Tasks()
			if listPending {
				pending := tasks[:0:0]
				for _, t := range tasks {
					if !t.Completed {
						pending = append(pending, t)
					}
				}
				tasks = pending
			}

			view := ui.ProjectTaskList(tasks, s.app.Today())
			if isJSON() {
				return printJSON(view)
			}
			ui.RenderTaskList(os.Stdout, view)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listPending, "pending", false, "hide completed tasks")
}
