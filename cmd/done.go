/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"github.com/josephgoksu/smarttask/internal/app"
	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/spf13/cobra"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done <id>",
	Aliases: []string{"toggle"},
	Short:   "Toggle a task between completed and pending",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(s *session) error {
			res, err := s.app.Dispatch(cmd.Context(), app.ToggleComplete{ID: task.ID(args[0])})
			if err != nil {
				return err
			}
			return printResult(res)
		})
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
